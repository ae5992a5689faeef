// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package router decodes inbound frames into envelopes and applies them to
// the local cache according to a type → category table.
package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/models"
)

// Cache is the subset of the local cache the router writes to.
type Cache interface {
	Set(key models.CacheKey, value any)
	Merge(key models.CacheKey, partial any)
	Invalidate(key models.CacheKey)
	InvalidateAll()
}

// HandlerFunc is a typed per-type hook run after the cache update.
type HandlerFunc func(env models.Envelope) error

// Result describes what Dispatch did with an envelope.
type Result struct {
	Category Category
	// Known is false for types that fell into the fallback bucket.
	Known bool
	// Applied is the number of entries written to or invalidated in the cache.
	Applied int
}

// Router dispatches envelopes by type.
type Router struct {
	cache  Cache
	logger *logger.Logger

	mu       sync.RWMutex
	table    map[string]Category
	handlers map[string][]HandlerFunc
}

// New returns a Router using table, or DefaultTable when table is nil.
func New(cache Cache, table map[string]Category, log *logger.Logger) *Router {
	if table == nil {
		table = DefaultTable()
	}
	return &Router{
		cache:    cache,
		logger:   log.ForComponent("router"),
		table:    table,
		handlers: make(map[string][]HandlerFunc),
	}
}

// Register maps an envelope type to a category, replacing any previous
// mapping.
func (r *Router) Register(envelopeType string, category Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[envelopeType] = category
}

// Handle adds a hook for envelopeType. Hooks run in registration order.
func (r *Router) Handle(envelopeType string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[envelopeType] = append(r.handlers[envelopeType], h)
}

// CategoryOf returns the category registered for envelopeType.
func (r *Router) CategoryOf(envelopeType string) (Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.table[envelopeType]
	return c, ok
}

// Decode parses a raw frame into an Envelope.
func Decode(raw []byte) (models.Envelope, error) {
	var env models.Envelope

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&env); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if dec.More() {
		return models.Envelope{}, fmt.Errorf("%w: trailing data", ErrMalformedFrame)
	}
	if env.Type == "" {
		return models.Envelope{}, fmt.Errorf("%w: missing type", ErrMalformedFrame)
	}

	return env, nil
}

// Dispatch applies env to the cache according to its category and then runs
// the hooks registered for its type. Unknown types are left untouched.
func (r *Router) Dispatch(env models.Envelope) (Result, error) {
	category, known := r.CategoryOf(env.Type)
	if !known {
		r.logger.Debug().Str("func", "Router.Dispatch").Str("type", env.Type).Msg("unknown envelope type")
		return Result{Category: CategoryUnknown}, nil
	}

	res := Result{Category: category, Known: true}
	applied, err := r.apply(category, env)
	res.Applied = applied
	if err != nil {
		r.logger.Err(err).
			Str("func", "Router.Dispatch").
			Str("type", env.Type).
			Str("category", category.String()).
			Msg("failed to apply envelope to cache")
		return res, err
	}

	r.mu.RLock()
	hooks := append([]HandlerFunc(nil), r.handlers[env.Type]...)
	r.mu.RUnlock()

	for _, h := range hooks {
		if err = h(env); err != nil {
			return res, fmt.Errorf("handler for %s: %w", env.Type, err)
		}
	}

	return res, nil
}

func (r *Router) apply(category Category, env models.Envelope) (int, error) {
	if category == CategoryControl {
		return 0, nil
	}

	var payload models.SyncPayload
	if err := env.DecodePayload(&payload); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	values := make([]any, len(payload.Entries))
	for i, entry := range payload.Entries {
		if !hasValue(entry.Value) {
			continue
		}
		if err := json.Unmarshal(entry.Value, &values[i]); err != nil {
			return 0, fmt.Errorf("%w: entry %d: %v", ErrMalformedPayload, i, err)
		}
	}

	if category == CategoryFullSync {
		r.cache.InvalidateAll()
	}

	applied := 0
	for i, entry := range payload.Entries {
		if !entry.Key.Valid() {
			r.logger.Warn().Str("func", "Router.apply").Int("index", i).Msg("skipping entry with invalid key")
			continue
		}

		switch category {
		case CategoryInitialSync, CategoryFullSync:
			r.cache.Set(entry.Key, values[i])
		case CategoryPeriodicSync, CategorySuggestion:
			if !hasValue(entry.Value) {
				r.logger.Warn().Str("func", "Router.apply").
					Str("key", entry.Key.String()).
					Str("category", category.String()).
					Msg("skipping merge entry without value")
				continue
			}
			r.cache.Merge(entry.Key, values[i])
		case CategoryTargeted:
			if hasValue(entry.Value) {
				r.cache.Merge(entry.Key, values[i])
			} else {
				r.cache.Invalidate(entry.Key)
			}
		}
		applied++
	}

	return applied, nil
}

// hasValue reports whether raw carries a value. An absent value and a JSON
// null are treated alike.
func hasValue(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

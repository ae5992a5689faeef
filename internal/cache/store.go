// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache implements the local read cache shared by the sync client
// and the REST layer. Values are decoded JSON; entries carry a stale mark
// that tells readers to refetch while the last value is still served.
package cache

import (
	"maps"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/models"
)

// Entry is a cached value with its freshness metadata.
type Entry struct {
	Key       models.CacheKey
	Value     any
	Stale     bool
	UpdatedAt time.Time
}

// Store is an in-memory keyed cache. All operations are no-ops for an invalid
// key and never report errors to the caller.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
	logger  *logger.Logger
}

// NewStore returns an empty Store.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		entries: make(map[string]*Entry),
		now:     time.Now,
		logger:  log.ForComponent("cache"),
	}
}

// Set overwrites the value at key unconditionally and clears its stale mark.
func (s *Store) Set(key models.CacheKey, value any) {
	if !s.validKey(key, "Store.Set") {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key.String()] = &Entry{Key: key, Value: value, UpdatedAt: s.now()}
}

// Merge shallow-merges partial over the existing value at key and clears the
// stale mark.
//
// When no entry exists, or when either side is not a JSON object, Merge
// behaves as Set. This is the only way an entry can appear without a prior
// Set.
func (s *Store) Merge(key models.CacheKey, partial any) {
	if !s.validKey(key, "Store.Merge") {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key.String()
	existing, ok := s.entries[k]
	if ok {
		base, baseIsObject := existing.Value.(map[string]any)
		patch, patchIsObject := partial.(map[string]any)
		if baseIsObject && patchIsObject {
			merged := maps.Clone(base)
			maps.Copy(merged, patch)
			partial = merged
		}
	}

	s.entries[k] = &Entry{Key: key, Value: partial, UpdatedAt: s.now()}
}

// Invalidate marks the entry at key stale. Missing keys are ignored.
func (s *Store) Invalidate(key models.CacheKey) {
	if !s.validKey(key, "Store.Invalidate") {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key.String()]; ok {
		e.Stale = true
	}
}

// InvalidateAll marks every entry stale. Values stay readable until the next
// Set.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		e.Stale = true
	}
}

// Get returns a copy of the entry at key.
func (s *Store) Get(key models.CacheKey) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key.String()]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// StaleKeys returns the keys of every stale entry.
func (s *Store) StaleKeys() []models.CacheKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []models.CacheKey
	for _, e := range s.entries {
		if e.Stale {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Len returns the number of entries, stale ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) validKey(key models.CacheKey, fn string) bool {
	if !key.Valid() {
		s.logger.Warn().Str("func", fn).Str("key", key.String()).Msg("ignoring cache operation with invalid key")
		return false
	}
	return true
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package state holds the optimistic client-local state mirrored to the sync
// server: UI selections, active workflows, active subjects and preferences.
//
// The state changes only through explicit local calls. Inbound server events
// never touch it; a full sync from the server is the reconciliation point.
package state

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/internal/store"
	"github.com/MKhiriev/go-sync-client/models"
)

// Interaction actions that change the active subject set. Other actions are
// reported to the server without a local effect.
const (
	ActionActivate   = "activate"
	ActionOpen       = "open"
	ActionDeactivate = "deactivate"
	ActionClose      = "close"
	ActionComplete   = "complete"
)

// Repository persists the state snapshot. [store.ClientStateRepository]
// satisfies it.
type Repository interface {
	LoadClientState(ctx context.Context) (models.ClientState, string, error)
	SaveClientState(ctx context.Context, sessionID string, state models.ClientState) error
}

// IDGenerator produces unique identifiers.
type IDGenerator interface {
	Generate() string
}

// Store owns the client state. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     models.ClientState
	sessionID string

	repo   Repository
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewStore returns an empty Store with a fresh session id. repo may be nil,
// in which case nothing is persisted.
func NewStore(repo Repository, ids IDGenerator, log *logger.Logger) *Store {
	return &Store{
		sessionID: ids.Generate(),
		repo:      repo,
		ids:       ids,
		now:       time.Now,
		logger:    log,
	}
}

// Restore loads the last persisted snapshot. A missing snapshot or a nil
// repository is not an error.
func (s *Store) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	snapshot, previousSession, err := s.repo.LoadClientState(ctx)
	if errors.Is(err, store.ErrClientStateNotFound) {
		s.logger.Debug().Str("func", "Store.Restore").Msg("no persisted client state")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error restoring client state: %w", err)
	}

	s.mu.Lock()
	s.state = snapshot.Clone()
	s.mu.Unlock()

	s.logger.Info().Str("func", "Store.Restore").
		Str("previous_session_id", previousSession).
		Int("active_subjects", len(snapshot.ActiveSubjects)).
		Msg("client state restored")
	return nil
}

// SessionID identifies this client session.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.ClientState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// replaceNonNil makes a non-nil slice or map in the partial state replace the
// current field as a whole, so an empty one clears it. Nil fields are left to
// mergo and keep the current value.
type replaceNonNil struct{}

func (replaceNonNil) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Map {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && !src.IsNil() {
			dst.Set(src)
		}
		return nil
	}
}

// Update merges partial into the state field by field. A nil field of
// partial keeps the current value; a non-nil slice or map, empty ones
// included, replaces it. It returns the full new state.
func (s *Store) Update(ctx context.Context, partial models.ClientState) (models.ClientState, error) {
	s.mu.Lock()
	next := s.state.Clone()
	if err := mergo.Merge(&next, partial.Clone(), mergo.WithOverride, mergo.WithTransformers(replaceNonNil{})); err != nil {
		s.mu.Unlock()
		return models.ClientState{}, fmt.Errorf("error merging client state: %w", err)
	}
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return snapshot, nil
}

// RecordInteraction applies the optimistic effect of action on subjectID and
// returns the interaction to mirror to the server. There is no rollback; the
// next full sync reconciles.
func (s *Store) RecordInteraction(ctx context.Context, subjectID, action string, data map[string]any) (models.Interaction, error) {
	if subjectID == "" || action == "" {
		return models.Interaction{}, fmt.Errorf("%w: subject id and action are required", ErrInvalidArgument)
	}

	s.mu.Lock()
	changed := applyInteraction(&s.state, subjectID, action)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	if changed {
		s.persist(ctx, snapshot)
	}

	return models.Interaction{
		ID:        s.ids.Generate(),
		SubjectID: subjectID,
		Action:    action,
		Data:      data,
		At:        s.now().UTC(),
	}, nil
}

func applyInteraction(state *models.ClientState, subjectID, action string) bool {
	switch action {
	case ActionActivate, ActionOpen:
		if slices.Contains(state.ActiveSubjects, subjectID) {
			return false
		}
		state.ActiveSubjects = append(state.ActiveSubjects, subjectID)
		return true
	case ActionDeactivate, ActionClose, ActionComplete:
		before := len(state.ActiveSubjects)
		state.ActiveSubjects = slices.DeleteFunc(state.ActiveSubjects, func(id string) bool {
			return id == subjectID
		})
		return len(state.ActiveSubjects) != before
	default:
		return false
	}
}

func (s *Store) persist(ctx context.Context, snapshot models.ClientState) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveClientState(ctx, s.sessionID, snapshot); err != nil {
		s.logger.Warn().Str("func", "Store.persist").Err(err).Msg("failed to persist client state")
	}
}

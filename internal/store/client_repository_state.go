package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/models"
)

const (
	clientStateTable = "client_state"
	clientStateRowID = 1
)

type clientStateRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewClientStateRepository returns a SQLite-backed [ClientStateRepository].
func NewClientStateRepository(db *DB, logger *logger.Logger) ClientStateRepository {
	return &clientStateRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *clientStateRepository) LoadClientState(ctx context.Context) (models.ClientState, string, error) {
	query, args, err := sq.Select("session_id", "payload").
		From(clientStateTable).
		Where(sq.Eq{"id": clientStateRowID}).
		ToSql()
	if err != nil {
		return models.ClientState{}, "", fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var (
		sessionID string
		payload   string
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&sessionID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ClientState{}, "", ErrClientStateNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "clientStateRepository.LoadClientState").Msg("failed to query client state")
		return models.ClientState{}, "", fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	var state models.ClientState
	if err = json.Unmarshal([]byte(payload), &state); err != nil {
		return models.ClientState{}, "", fmt.Errorf("%w: %v", ErrEncodingState, err)
	}

	return state, sessionID, nil
}

func (r *clientStateRepository) SaveClientState(ctx context.Context, sessionID string, state models.ClientState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingState, err)
	}

	query, args, err := sq.Insert(clientStateTable).
		Columns("id", "session_id", "payload", "updated_at").
		Values(clientStateRowID, sessionID, string(payload), r.now().UTC()).
		Suffix("ON CONFLICT(id) DO UPDATE SET session_id = excluded.session_id, payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "clientStateRepository.SaveClientState").
			Str("session_id", sessionID).
			Msg("failed to upsert client state")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

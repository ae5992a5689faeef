package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-client/internal/config"
	"github.com/MKhiriev/go-sync-client/internal/logger"
)

// ClientStorages groups the client-side repositories.
type ClientStorages struct {
	// ClientState persists the optimistic local state snapshot. Nil when
	// persistence is disabled.
	ClientState ClientStateRepository

	db *DB
}

// NewClientStorages opens the local SQLite database named by cfg.DB.DSN and
// runs migrations. An empty DSN disables persistence and returns storages
// with a nil ClientState repository.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	if cfg.DB.DSN == "" {
		logger.Info().Msg("client state persistence disabled")
		return &ClientStorages{}, nil
	}

	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		ClientState: NewClientStateRepository(db, logger),
		db:          db,
	}, nil
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

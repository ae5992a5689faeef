package store

import (
	"context"

	"github.com/MKhiriev/go-sync-client/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// ClientStateRepository persists the single client-state snapshot of this
// device so that selections and preferences survive restarts.
type ClientStateRepository interface {
	// LoadClientState returns the stored snapshot and the session id it was
	// saved under. Returns [ErrClientStateNotFound] when nothing was saved yet.
	LoadClientState(ctx context.Context) (models.ClientState, string, error)

	// SaveClientState upserts the snapshot.
	SaveClientState(ctx context.Context, sessionID string, state models.ClientState) error
}

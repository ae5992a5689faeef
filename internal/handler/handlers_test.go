package handler

import (
	"testing"

	"github.com/MKhiriev/go-sync-client/internal/config"
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopClient struct{}

func (nopClient) ConnectionStatus() models.ConnectionStatus { return models.ConnectionStatus{} }
func (nopClient) ClientState() models.ClientState           { return models.ClientState{} }
func (nopClient) RequestFullSync() error                    { return nil }

func TestNewHandlers_WithAddress(t *testing.T) {
	h, err := NewHandlers(nopClient{}, prometheus.NewRegistry(), config.ClientStatus{HTTPAddress: ":8081"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(nopClient{}, nil, config.ClientStatus{}, logger.Nop())

	assert.Nil(t, h)
	assert.ErrorIs(t, err, errNoHandlersAreCreated)
}

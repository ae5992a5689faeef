package http

import (
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/models"
	"github.com/prometheus/client_golang/prometheus"
)

// SyncClient is the part of the sync client exposed over HTTP.
type SyncClient interface {
	ConnectionStatus() models.ConnectionStatus
	ClientState() models.ClientState
	RequestFullSync() error
}

type Handler struct {
	client   SyncClient
	gatherer prometheus.Gatherer

	logger *logger.Logger
}

// NewHandler returns a Handler serving client. A nil gatherer serves the
// default Prometheus registry on /metrics.
func NewHandler(client SyncClient, gatherer prometheus.Gatherer, logger *logger.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	logger.Info().Msg("http handler created")
	return &Handler{
		client:   client,
		gatherer: gatherer,
		logger:   logger,
	}
}

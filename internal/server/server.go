package server

import (
	"net/http"

	"github.com/MKhiriev/go-sync-client/internal/config"
	"github.com/MKhiriev/go-sync-client/internal/logger"
)

// NewServer returns the status server for handler, or errNoServersAreCreated
// when no address is configured.
func NewServer(handler http.Handler, cfg config.ClientStatus, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" || handler == nil {
		return nil, errNoServersAreCreated
	}

	return newHTTPServer(handler, cfg, logger), nil
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/app"
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/internal/syncclient"
	"github.com/MKhiriev/go-sync-client/internal/utils"
	"github.com/MKhiriev/go-sync-client/models"
)

// statusResponse is the JSON form of models.ConnectionStatus.
type statusResponse struct {
	State        models.ConnectionState `json:"state"`
	SessionID    string                 `json:"session_id"`
	RetryCount   int                    `json:"retry_count"`
	LastActivity *time.Time             `json:"last_activity,omitempty"`
	HasToken     bool                   `json:"has_token"`
}

// getStatus handles GET /api/sync/status. The identity token itself is never
// exposed.
func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status := h.client.ConnectionStatus()

	resp := statusResponse{
		State:      status.State,
		SessionID:  status.SessionID,
		RetryCount: status.RetryCount,
		HasToken:   status.Token != "",
	}
	if !status.LastActivity.IsZero() {
		resp.LastActivity = &status.LastActivity
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

// getState handles GET /api/sync/state.
func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, h.client.ClientState(), http.StatusOK)
}

// requestFullSync handles POST /api/sync/full-sync. It answers 202 once the
// request is on the wire and 503 while the connection is down.
func (h *Handler) requestFullSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.client.RequestFullSync(); err != nil {
		if errors.Is(err, syncclient.ErrNotConnected) {
			log.Warn().Str("func", "*Handler.requestFullSync").Msg("full sync requested while not connected")
			utils.WriteError(w, r, app.MsgNotConnected, http.StatusServiceUnavailable)
			return
		}

		log.Err(err).Str("func", "*Handler.requestFullSync").Msg("failed to request full sync")
		utils.WriteError(w, r, app.MsgFullSyncFailed, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

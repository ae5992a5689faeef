package models

import (
	"encoding/json"
	"fmt"
)

// Envelope is the unit of wire communication in both directions.
//
// Outbound envelopes carry client intents (heartbeat, client_state,
// interaction, request_full_sync); inbound envelopes carry server sync events.
// An Envelope has no identity beyond its position in the stream and must not
// be modified once constructed.
type Envelope struct {
	// Type is the discriminator used by the router to pick a handler.
	Type string `json:"type"`

	// Payload is the opaque structured body. It is kept raw so that the
	// router decodes it only for the categories that need it.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload and wraps it into an Envelope of the given
// type. A nil payload produces an envelope without a payload field.
func NewEnvelope(envelopeType string, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Type: envelopeType}, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", envelopeType, err)
	}

	return Envelope{Type: envelopeType, Payload: raw}, nil
}

// DecodePayload unmarshals the envelope payload into v.
func (e Envelope) DecodePayload(v any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload, v)
}

// Outbound envelope types.
const (
	TypeHeartbeat       = "heartbeat"
	TypeClientState     = "client_state"
	TypeInteraction     = "interaction"
	TypeRequestFullSync = "request_full_sync"
)

// Inbound envelope types known to the default routing table.
const (
	TypeInitialSync   = "initial_sync"
	TypePeriodicSync  = "periodic_sync"
	TypeFullSync      = "full_sync"
	TypeEntityEvent   = "entity_event"
	TypeStatusChanged = "status_changed"
	TypeSuggestion    = "suggestion"
	TypeHeartbeatAck  = "heartbeat_ack"
	TypeIdentity      = "identity"
)

// SyncEntry is one keyed update inside a sync payload.
type SyncEntry struct {
	Key   CacheKey        `json:"key"`
	Value json.RawMessage `json:"value,omitempty"`
}

// SyncPayload is the batched payload shape of every cache-affecting inbound
// envelope. Entries are applied in array order.
type SyncPayload struct {
	Entries []SyncEntry `json:"entries"`
}

// IdentityPayload is sent by the server to assign an identity token to the
// connection.
type IdentityPayload struct {
	Token string `json:"token"`
}

// HeartbeatPayload is the body of an outbound heartbeat.
type HeartbeatPayload struct {
	// TS is the client send time in unix milliseconds.
	TS int64 `json:"ts"`
}

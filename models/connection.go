package models

import "time"

// ConnectionState is the lifecycle state of a sync connection.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
	StateReconnecting ConnectionState = "reconnecting"
)

// ConnectionStatus is a point-in-time snapshot of the connection returned by
// the sync client status accessor.
type ConnectionStatus struct {
	State        ConnectionState `json:"state"`
	Token        string          `json:"token,omitempty"`
	SessionID    string          `json:"session_id"`
	RetryCount   int             `json:"retry_count"`
	LastActivity time.Time       `json:"last_activity"`
}

// EventName identifies a subscription channel on the sync client: either a
// lifecycle event or an inbound envelope type passed through verbatim.
type EventName string

// Lifecycle and synthetic events.
const (
	EventConnected    EventName = "connected"
	EventDisconnected EventName = "disconnected"
	EventReconnecting EventName = "reconnecting"
	EventError        EventName = "error"
	EventMessage      EventName = "message"
)

// Disconnect reasons attached to EventDisconnected.
const (
	ReasonClientDisconnect      = "client_disconnect"
	ReasonTransportClosed       = "transport_closed"
	ReasonRetriesExhausted      = "retries_exhausted"
	ReasonAutoReconnectDisabled = "auto_reconnect_disabled"
)

// Event is delivered to subscription handlers.
type Event struct {
	Name EventName

	// Envelope is set for inbound envelope events and for EventMessage.
	Envelope *Envelope

	// Err is set for EventError.
	Err error

	// Reason is set for EventDisconnected. Terminal disconnects carry
	// ReasonRetriesExhausted, ReasonAutoReconnectDisabled or
	// ReasonClientDisconnect.
	Reason string

	// Delay and Attempt are set for EventReconnecting.
	Delay   time.Duration
	Attempt int
}

// Terminal reports whether a disconnected event ends the connection for good,
// as opposed to a transient close followed by a reconnect.
func (e Event) Terminal() bool {
	return e.Name == EventDisconnected && e.Reason != ReasonTransportClosed
}

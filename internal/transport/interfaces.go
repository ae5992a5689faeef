// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

import (
	"context"
)

// Handler receives the callbacks of a single Transport.
//
// All callbacks of one Transport are invoked from one goroutine, in the
// order the events happened. OnClose is the last callback and is invoked
// exactly once per opened Transport.
type Handler interface {
	OnOpen()
	OnMessage(data []byte)
	OnError(err error)
	OnClose(code int, reason string)
}

// Transport is a bidirectional message channel to the sync server.
type Transport interface {
	// Open starts connecting in the background and returns immediately.
	// The outcome is reported through the Handler.
	Open(ctx context.Context) error
	// Send writes one text frame. It fails with ErrNotOpen unless the
	// connection is established.
	Send(data []byte) error
	// Close closes the connection. It is safe to call more than once and
	// never blocks on Handler callbacks.
	Close() error
}

// Factory constructs transports bound to a token and a handler.
type Factory interface {
	New(token string, h Handler) (Transport, error)
}

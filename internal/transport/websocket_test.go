// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

type recordedEvent struct {
	kind   string
	data   string
	err    error
	code   int
	reason string
}

// recordingHandler forwards every callback to a channel.
type recordingHandler struct {
	events chan recordedEvent
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{events: make(chan recordedEvent, 32)}
}

func (h *recordingHandler) OnOpen()               { h.events <- recordedEvent{kind: "open"} }
func (h *recordingHandler) OnMessage(data []byte) { h.events <- recordedEvent{kind: "message", data: string(data)} }
func (h *recordingHandler) OnError(err error)     { h.events <- recordedEvent{kind: "error", err: err} }
func (h *recordingHandler) OnClose(code int, reason string) {
	h.events <- recordedEvent{kind: "close", code: code, reason: reason}
}

func (h *recordingHandler) next(t *testing.T) recordedEvent {
	t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for transport callback")
		return recordedEvent{}
	}
}

// newEchoServer starts a websocket server that records the token, sends
// greeting frames and echoes every text frame back.
func newEchoServer(t *testing.T, greeting ...string) (*httptest.Server, chan string) {
	t.Helper()
	tokens := make(chan string, 4)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultPath {
			http.NotFound(w, r)
			return
		}
		tokens <- r.URL.Query().Get("token")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, g := range greeting {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(g)); err != nil {
				return
			}
		}
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, tokens
}

func TestFactory_MissingToken(t *testing.T) {
	f := NewWebsocketFactory(Config{Origin: "http://localhost", RequireToken: true}, logger.Nop())

	tr, err := f.New("", newRecordingHandler())

	assert.Nil(t, tr)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestFactory_InvalidOrigin(t *testing.T) {
	f := NewWebsocketFactory(Config{Origin: "not a url"}, logger.Nop())

	_, err := f.New("tok", newRecordingHandler())

	assert.ErrorIs(t, err, ErrInvalidOrigin)
}

func TestWebsocketTransport_OpenReceiveSendClose(t *testing.T) {
	// Arrange
	srv, tokens := newEchoServer(t, `{"type":"initial_sync"}`)
	h := newRecordingHandler()
	f := NewWebsocketFactory(Config{Origin: srv.URL}, logger.Nop())

	tr, err := f.New("secret", h)
	require.NoError(t, err)
	require.ErrorIs(t, tr.Send([]byte("early")), ErrNotOpen)

	// Act
	require.NoError(t, tr.Open(context.Background()))

	// Assert
	assert.Equal(t, "open", h.next(t).kind)
	assert.Equal(t, "secret", <-tokens)

	ev := h.next(t)
	assert.Equal(t, "message", ev.kind)
	assert.Equal(t, `{"type":"initial_sync"}`, ev.data)

	require.NoError(t, tr.Send([]byte(`{"type":"heartbeat"}`)))
	ev = h.next(t)
	assert.Equal(t, "message", ev.kind)
	assert.Equal(t, `{"type":"heartbeat"}`, ev.data)

	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())

	ev = h.next(t)
	assert.Equal(t, "close", ev.kind)
	assert.ErrorIs(t, tr.Send([]byte("late")), ErrNotOpen)
	assert.ErrorIs(t, tr.Open(context.Background()), ErrAlreadyOpened)
}

func TestWebsocketTransport_DialFailure(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	h := newRecordingHandler()
	tr, err := NewWebsocketFactory(Config{Origin: srv.URL}, logger.Nop()).New("", h)
	require.NoError(t, err)

	// Act
	require.NoError(t, tr.Open(context.Background()))

	// Assert
	ev := h.next(t)
	assert.Equal(t, "error", ev.kind)
	assert.ErrorIs(t, ev.err, ErrDial)
	ev = h.next(t)
	assert.Equal(t, "close", ev.kind)
	assert.Equal(t, websocket.CloseAbnormalClosure, ev.code)
}

func TestWebsocketTransport_ServerClose(t *testing.T) {
	// Arrange
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "restart")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)
	h := newRecordingHandler()
	tr, err := NewWebsocketFactory(Config{Origin: srv.URL}, logger.Nop()).New("", h)
	require.NoError(t, err)

	// Act
	require.NoError(t, tr.Open(context.Background()))

	// Assert
	assert.Equal(t, "open", h.next(t).kind)
	ev := h.next(t)
	assert.Equal(t, "close", ev.kind)
	assert.Equal(t, websocket.CloseGoingAway, ev.code)
	assert.Equal(t, "restart", ev.reason)
}

func TestWebsocketTransport_CloseBeforeOpen(t *testing.T) {
	h := newRecordingHandler()
	tr, err := NewWebsocketFactory(Config{Origin: "http://127.0.0.1:1"}, logger.Nop()).New("", h)
	require.NoError(t, err)

	require.NoError(t, tr.Close())

	assert.ErrorIs(t, tr.Open(context.Background()), ErrNotOpen)
	assert.Empty(t, h.events)
}

func TestCloseDetails(t *testing.T) {
	code, reason := closeDetails(&websocket.CloseError{Code: websocket.CloseGoingAway, Text: "bye"})
	assert.Equal(t, websocket.CloseGoingAway, code)
	assert.Equal(t, "bye", reason)

	code, reason = closeDetails(assert.AnError)
	assert.Equal(t, websocket.CloseAbnormalClosure, code)
	assert.True(t, strings.Contains(reason, assert.AnError.Error()))
}

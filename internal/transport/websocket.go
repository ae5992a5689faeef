// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	closeWriteTimeout       = time.Second
)

// Config describes how websocket transports are built.
type Config struct {
	// Origin is the page origin the socket URL is derived from.
	Origin string
	// Path is the endpoint path, DefaultPath when empty.
	Path string
	// RequireToken turns an empty token into ErrMissingToken.
	RequireToken bool
	// HandshakeTimeout bounds the opening handshake.
	HandshakeTimeout time.Duration
}

type websocketFactory struct {
	cfg    Config
	dialer *websocket.Dialer
	logger *logger.Logger
}

// NewWebsocketFactory returns a Factory producing gorilla/websocket
// transports.
func NewWebsocketFactory(cfg Config, log *logger.Logger) Factory {
	timeout := cfg.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}

	return &websocketFactory{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
		logger: log,
	}
}

func (f *websocketFactory) New(token string, h Handler) (Transport, error) {
	if h == nil {
		return nil, errors.New("transport handler is nil")
	}
	if f.cfg.RequireToken && token == "" {
		return nil, ErrMissingToken
	}

	target, err := BuildURL(f.cfg.Origin, f.cfg.Path, token)
	if err != nil {
		return nil, err
	}

	return &websocketTransport{
		url:     target,
		dialer:  f.dialer,
		handler: h,
		logger:  f.logger,
	}, nil
}

type websocketTransport struct {
	url     string
	dialer  *websocket.Dialer
	handler Handler
	logger  *logger.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	started bool
	closed  bool
	cancel  context.CancelFunc

	writeMu sync.Mutex
}

func (t *websocketTransport) Open(ctx context.Context) error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return ErrAlreadyOpened
	}
	t.started = true
	if t.closed {
		t.mu.Unlock()
		return ErrNotOpen
	}
	dialCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.mu.Unlock()

	go t.run(dialCtx)
	return nil
}

// run dials and then reads until the connection ends. It is the only
// goroutine invoking the handler.
func (t *websocketTransport) run(ctx context.Context) {
	conn, resp, err := t.dialer.DialContext(ctx, t.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if t.isClosed() {
			t.handler.OnClose(websocket.CloseNormalClosure, "closed before open")
			return
		}
		t.logger.Warn().Str("func", "websocketTransport.run").Err(err).Msg("dial failed")
		t.handler.OnError(fmt.Errorf("%w: %w", ErrDial, err))
		t.handler.OnClose(websocket.CloseAbnormalClosure, err.Error())
		return
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		_ = conn.Close()
		t.handler.OnClose(websocket.CloseNormalClosure, "closed before open")
		return
	}
	t.conn = conn
	t.mu.Unlock()

	t.handler.OnOpen()

	for {
		messageType, data, readErr := conn.ReadMessage()
		if readErr != nil {
			code, reason := closeDetails(readErr)
			if !t.isClosed() && !websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				t.handler.OnError(readErr)
			}
			t.handler.OnClose(code, reason)
			return
		}

		if messageType != websocket.TextMessage {
			t.logger.Debug().Str("func", "websocketTransport.run").
				Int("message_type", messageType).
				Msg("skipping non-text frame")
			continue
		}
		t.handler.OnMessage(data)
	}
}

func (t *websocketTransport) Send(data []byte) error {
	t.mu.Lock()
	conn, closed := t.conn, t.closed
	t.mu.Unlock()
	if conn == nil || closed {
		return ErrNotOpen
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("error writing frame: %w", err)
	}
	return nil
}

func (t *websocketTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	conn, cancel := t.conn, t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn == nil {
		return nil
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client closed")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteTimeout))
	return conn.Close()
}

func (t *websocketTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func closeDetails(err error) (int, string) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code, closeErr.Text
	}
	return websocket.CloseAbnormalClosure, err.Error()
}

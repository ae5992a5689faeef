// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncclient is the facade of the real-time sync connection. It owns
// the lifecycle state machine, the heartbeat, the reconnection policy and the
// subscription registry, and it routes inbound envelopes into the local
// cache.
//
// Every lifecycle transition happens under one mutex. Transport callbacks
// carry the generation of the transport that produced them, and timer
// callbacks carry the generation of the timer that armed them, so a callback
// that arrives after the state moved on is ignored. Events are queued in the
// same critical section as the transition that raised them and delivered in
// that order by a single drainer, without the mutex held.
package syncclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/backoff"
	"github.com/MKhiriev/go-sync-client/internal/cache"
	"github.com/MKhiriev/go-sync-client/internal/heartbeat"
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/internal/metrics"
	"github.com/MKhiriev/go-sync-client/internal/router"
	"github.com/MKhiriev/go-sync-client/internal/state"
	"github.com/MKhiriev/go-sync-client/internal/timers"
	"github.com/MKhiriev/go-sync-client/internal/transport"
	"github.com/MKhiriev/go-sync-client/models"
)

// Client is one sync connection with its cache and local state.
type Client struct {
	cfg       Config
	factory   transport.Factory
	cache     *cache.Store
	state     *state.Store
	router    *router.Router
	heartbeat *heartbeat.Monitor
	scheduler timers.Scheduler
	metrics   *metrics.Metrics
	table     map[string]router.Category
	logger    *logger.Logger

	mu            sync.Mutex
	status        models.ConnectionState
	token         string
	autoReconnect bool
	policy        *backoff.Policy
	transport     transport.Transport
	gen           uint64
	retryTimer    timers.Timer
	retryGen      uint64
	lastActivity  time.Time
	connCtx       context.Context
	cancel        context.CancelFunc
	pending       []models.Event
	draining      bool

	subMu     sync.RWMutex
	subs      map[models.EventName][]subscriber
	nextSubID uint64
}

// New returns a disconnected Client.
func New(cfg Config, factory transport.Factory, cacheStore *cache.Store, stateStore *state.Store, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:           cfg,
		factory:       factory,
		cache:         cacheStore,
		state:         stateStore,
		scheduler:     timers.NewRealScheduler(),
		logger:        log.ForComponent("sync"),
		status:        models.StateDisconnected,
		token:         cfg.Token,
		autoReconnect: cfg.AutoReconnect,
		policy:        backoff.New(cfg.Backoff),
		subs:          make(map[models.EventName][]subscriber),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.router = router.New(cacheStore, c.table, log)
	c.heartbeat = heartbeat.NewMonitor(cfg.HeartbeatInterval, c.scheduler, log)
	c.metrics.ConnectionState(models.StateDisconnected)
	return c
}

// Connect opens the connection. It returns immediately; subscribe to the
// connected event to learn when the connection is ready. Calling Connect in
// any state other than disconnected is a no-op.
//
// A transport that cannot be constructed (for example a missing token)
// leaves the client disconnected, emits an error event and returns the
// error. ctx bounds every connection attempt of this session.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.status != models.StateDisconnected {
		status := c.status
		c.mu.Unlock()
		c.logger.Debug().Str("func", "Client.Connect").Str("state", string(status)).Msg("connect ignored")
		return nil
	}

	c.connCtx, c.cancel = context.WithCancel(ctx)
	c.autoReconnect = c.cfg.AutoReconnect
	c.status = models.StateConnecting

	tr, gen, err := c.openLocked()
	if err != nil {
		c.status = models.StateDisconnected
		c.cancel()
		c.metrics.ConnectionState(models.StateDisconnected)
		c.queueLocked(models.Event{Name: models.EventError, Err: err})
		c.mu.Unlock()

		c.logger.Err(err).Str("func", "Client.Connect").Msg("failed to construct transport")
		c.flush()
		return fmt.Errorf("error creating transport: %w", err)
	}
	connCtx := c.connCtx
	c.metrics.ConnectionState(models.StateConnecting)
	c.mu.Unlock()

	c.start(connCtx, tr, gen)
	return nil
}

// Disconnect closes the connection for good: the pending retry and the
// heartbeat are cancelled before it returns, the transport is closed and
// auto-reconnect is disabled until the next Connect.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.autoReconnect = false
	c.stopRetryLocked()
	c.heartbeat.Stop()
	tr := c.transport
	c.transport = nil
	c.gen++
	wasDisconnected := c.status == models.StateDisconnected
	c.status = models.StateDisconnected
	c.policy.Reset()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if !wasDisconnected {
		c.metrics.ConnectionState(models.StateDisconnected)
		c.queueLocked(models.Event{Name: models.EventDisconnected, Reason: models.ReasonClientDisconnect})
	}
	c.mu.Unlock()

	if tr != nil {
		if err := tr.Close(); err != nil {
			c.logger.Warn().Err(err).Str("func", "Client.Disconnect").Msg("error closing transport")
		}
	}
	if !wasDisconnected {
		c.logger.Info().Str("func", "Client.Disconnect").Msg("disconnected by client")
	}
	c.flush()
}

// ConnectionStatus returns a snapshot of the connection.
func (c *Client) ConnectionStatus() models.ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.ConnectionStatus{
		State:        c.status,
		Token:        c.token,
		SessionID:    c.state.SessionID(),
		RetryCount:   c.policy.Attempts(),
		LastActivity: c.lastActivity,
	}
}

// ClientState returns a copy of the local state.
func (c *Client) ClientState() models.ClientState {
	return c.state.Snapshot()
}

// Cache returns the local cache kept in sync by this client.
func (c *Client) Cache() *cache.Store {
	return c.cache
}

// Router returns the message router, for registering new envelope types
// and per-type hooks.
func (c *Client) Router() *router.Router {
	return c.router
}

// openLocked retires the current transport generation and constructs a new
// transport bound to the next one.
func (c *Client) openLocked() (transport.Transport, uint64, error) {
	c.gen++
	gen := c.gen

	tr, err := c.factory.New(c.token, &connHandler{client: c, gen: gen})
	if err != nil {
		return nil, 0, err
	}
	c.transport = tr
	return tr, gen, nil
}

// start opens tr outside the lock; the transport reports back through its
// handler.
func (c *Client) start(ctx context.Context, tr transport.Transport, gen uint64) {
	if err := tr.Open(ctx); err != nil {
		c.logger.Err(err).Str("func", "Client.start").Msg("failed to open transport")
		c.fail(gen, models.Event{Name: models.EventError, Err: err})
	}
}

func (c *Client) handleOpen(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.status != models.StateConnecting {
		c.mu.Unlock()
		return
	}
	c.status = models.StateConnected
	c.policy.Reset()
	c.lastActivity = c.scheduler.Now()
	c.heartbeat.Start(c.sendEnvelope)
	c.metrics.ConnectionState(models.StateConnected)
	c.queueLocked(models.Event{Name: models.EventConnected})
	c.mu.Unlock()

	c.logger.Info().Str("func", "Client.handleOpen").Msg("connected")
	c.flush()
}

func (c *Client) handleError(gen uint64, err error) {
	c.mu.Lock()
	current := gen == c.gen
	c.mu.Unlock()
	if !current {
		return
	}

	c.logger.Warn().Err(err).Str("func", "Client.handleError").Msg("transport error")
	c.fail(gen, models.Event{Name: models.EventError, Err: err})
}

func (c *Client) handleClose(gen uint64, code int, reason string) {
	c.logger.Info().Str("func", "Client.handleClose").
		Int("code", code).
		Str("reason", reason).
		Msg("transport closed")
	c.fail(gen)
}

// fail handles the loss of the transport of generation gen. cause, if any,
// is delivered before the events describing the outcome. Nothing is delivered
// for a generation that is no longer current.
func (c *Client) fail(gen uint64, cause ...models.Event) {
	c.mu.Lock()
	if gen != c.gen || (c.status != models.StateConnecting && c.status != models.StateConnected) {
		c.mu.Unlock()
		return
	}

	c.gen++
	tr := c.transport
	c.transport = nil
	c.heartbeat.Stop()
	c.queueLocked(cause...)
	c.queueLocked(c.recoverLocked(true)...)
	c.metrics.ConnectionState(c.status)
	c.mu.Unlock()

	if tr != nil {
		_ = tr.Close()
	}
	c.flush()
}

// recoverLocked either schedules the next attempt or gives up, and returns
// the events describing the outcome. transient adds the disconnected event
// for a connection that was lost.
func (c *Client) recoverLocked(transient bool) []models.Event {
	if !c.autoReconnect {
		c.status = models.StateDisconnected
		c.logger.Info().Str("func", "Client.recoverLocked").Msg("auto-reconnect disabled, giving up")
		return []models.Event{{Name: models.EventDisconnected, Reason: models.ReasonAutoReconnectDisabled}}
	}

	if c.policy.Exhausted() {
		c.status = models.StateDisconnected
		c.logger.Warn().Str("func", "Client.recoverLocked").
			Int("attempts", c.policy.Attempts()).
			Msg("retry budget exhausted, giving up")
		return []models.Event{{Name: models.EventDisconnected, Reason: models.ReasonRetriesExhausted}}
	}
	delay, _ := c.policy.Next()

	c.status = models.StateReconnecting
	c.stopRetryLocked()
	retryGen := c.retryGen
	c.retryTimer = c.scheduler.AfterFunc(delay, func() { c.retry(retryGen) })
	c.metrics.ReconnectScheduled()

	attempt := c.policy.Attempts()
	c.logger.Info().Str("func", "Client.recoverLocked").
		Dur("delay", delay).
		Int("attempt", attempt).
		Msg("reconnect scheduled")

	events := make([]models.Event, 0, 2)
	if transient {
		events = append(events, models.Event{Name: models.EventDisconnected, Reason: models.ReasonTransportClosed})
	}
	return append(events, models.Event{Name: models.EventReconnecting, Delay: delay, Attempt: attempt})
}

// stopRetryLocked cancels the pending retry and invalidates any callback
// already in flight.
func (c *Client) stopRetryLocked() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	c.retryGen++
}

func (c *Client) retry(retryGen uint64) {
	c.mu.Lock()
	if retryGen != c.retryGen || c.status != models.StateReconnecting {
		c.mu.Unlock()
		return
	}
	c.retryTimer = nil
	c.status = models.StateConnecting

	tr, gen, err := c.openLocked()
	if err != nil {
		c.logger.Err(err).Str("func", "Client.retry").Msg("failed to construct transport")
		c.queueLocked(models.Event{Name: models.EventError, Err: err})
		c.queueLocked(c.recoverLocked(false)...)
		c.metrics.ConnectionState(c.status)
		c.mu.Unlock()

		c.flush()
		return
	}
	ctx := c.connCtx
	c.metrics.ConnectionState(models.StateConnecting)
	c.mu.Unlock()

	c.start(ctx, tr, gen)
}

// connHandler binds transport callbacks to one transport generation.
type connHandler struct {
	client *Client
	gen    uint64
}

func (h *connHandler) OnOpen() {
	h.client.handleOpen(h.gen)
}

func (h *connHandler) OnMessage(data []byte) {
	h.client.handleMessage(h.gen, data)
}

func (h *connHandler) OnError(err error) {
	h.client.handleError(h.gen, err)
}

func (h *connHandler) OnClose(code int, reason string) {
	h.client.handleClose(h.gen, code, reason)
}

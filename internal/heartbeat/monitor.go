// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package heartbeat sends periodic liveness envelopes over an established
// connection. The policy is send-don't-verify: the server closes stale
// connections and any reply is routed like any other inbound envelope.
package heartbeat

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/internal/timers"
	"github.com/MKhiriev/go-sync-client/models"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 30 * time.Second

// SendFunc delivers one heartbeat envelope.
type SendFunc func(models.Envelope) error

// Monitor emits one heartbeat per interval between Start and Stop.
type Monitor struct {
	interval  time.Duration
	scheduler timers.Scheduler
	logger    *logger.Logger

	mu    sync.Mutex
	timer timers.Timer
	gen   uint64
	send  SendFunc
}

// NewMonitor creates an idle Monitor.
func NewMonitor(interval time.Duration, scheduler timers.Scheduler, log *logger.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		interval:  interval,
		scheduler: scheduler,
		logger:    log.ForComponent("heartbeat"),
	}
}

// Start cancels any pending heartbeat and arms a new one that calls send
// every interval until Stop.
func (m *Monitor) Start(send SendFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	m.gen++
	m.send = send
	m.armLocked(m.gen)
}

// Stop cancels the pending heartbeat. Calling Stop on an idle monitor is a
// no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Active reports whether a heartbeat timer is armed.
func (m *Monitor) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer != nil
}

// Interval returns the heartbeat period.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

func (m *Monitor) stopLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.send = nil
}

func (m *Monitor) armLocked(gen uint64) {
	m.timer = m.scheduler.AfterFunc(m.interval, func() { m.beat(gen) })
}

func (m *Monitor) beat(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.send == nil {
		m.mu.Unlock()
		return
	}
	send := m.send
	m.armLocked(gen)
	now := m.scheduler.Now()
	m.mu.Unlock()

	env, err := models.NewEnvelope(models.TypeHeartbeat, models.HeartbeatPayload{TS: now.UnixMilli()})
	if err != nil {
		m.logger.Err(err).Str("func", "Monitor.beat").Msg("failed to build heartbeat")
		return
	}
	if err = send(env); err != nil {
		m.logger.Warn().Err(err).Str("func", "Monitor.beat").Msg("heartbeat not sent")
	}
}

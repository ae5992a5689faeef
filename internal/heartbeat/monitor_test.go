// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package heartbeat

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/MKhiriev/go-sync-client/internal/timers"
	"github.com/MKhiriev/go-sync-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	sent []models.Envelope
	err  error
}

func (r *recorder) send(env models.Envelope) error {
	r.sent = append(r.sent, env)
	return r.err
}

func newTestMonitor(interval time.Duration) (*Monitor, *timers.FakeScheduler) {
	s := timers.NewFakeScheduler(time.Unix(1_700_000_000, 0))
	return NewMonitor(interval, s, logger.Nop()), s
}

func TestMonitor_SendsEveryInterval(t *testing.T) {
	m, s := newTestMonitor(10 * time.Second)
	rec := &recorder{}

	m.Start(rec.send)
	assert.True(t, m.Active())

	s.Advance(35 * time.Second)

	require.Len(t, rec.sent, 3)
	assert.Equal(t, models.TypeHeartbeat, rec.sent[0].Type)

	var payload models.HeartbeatPayload
	require.NoError(t, rec.sent[0].DecodePayload(&payload))
	assert.Equal(t, time.Unix(1_700_000_010, 0).UnixMilli(), payload.TS)
}

func TestMonitor_StopCancelsTimer(t *testing.T) {
	m, s := newTestMonitor(10 * time.Second)
	rec := &recorder{}

	m.Start(rec.send)
	s.Advance(10 * time.Second)
	m.Stop()

	assert.False(t, m.Active())
	assert.Zero(t, s.Pending())

	s.Advance(time.Minute)
	assert.Len(t, rec.sent, 1)
}

func TestMonitor_RestartDoesNotLeakTimers(t *testing.T) {
	m, s := newTestMonitor(10 * time.Second)
	rec := &recorder{}

	m.Start(rec.send)
	m.Start(rec.send)
	m.Start(rec.send)

	assert.Equal(t, 1, s.Pending())

	s.Advance(10 * time.Second)
	assert.Len(t, rec.sent, 1)
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	m, _ := newTestMonitor(time.Second)

	assert.NotPanics(t, func() {
		m.Stop()
		m.Stop()
	})
	assert.False(t, m.Active())
}

func TestMonitor_SendErrorKeepsBeating(t *testing.T) {
	m, s := newTestMonitor(time.Second)
	rec := &recorder{err: errors.New("socket closed")}

	m.Start(rec.send)
	s.Advance(3 * time.Second)

	assert.Len(t, rec.sent, 3)
	assert.True(t, m.Active())
}

func TestMonitor_DefaultInterval(t *testing.T) {
	m, _ := newTestMonitor(0)
	assert.Equal(t, DefaultInterval, m.Interval())
}

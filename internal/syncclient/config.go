// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncclient

import (
	"time"

	"github.com/MKhiriev/go-sync-client/internal/backoff"
	"github.com/MKhiriev/go-sync-client/internal/metrics"
	"github.com/MKhiriev/go-sync-client/internal/router"
	"github.com/MKhiriev/go-sync-client/internal/timers"
)

// Config holds the connection settings of a Client.
type Config struct {
	// Token is the initial identity token. The server may replace it with
	// an identity envelope.
	Token string
	// AutoReconnect enables reconnection after unexpected closes.
	AutoReconnect bool
	// Backoff configures the reconnection delays and budget.
	Backoff backoff.Config
	// HeartbeatInterval is the liveness period while connected.
	HeartbeatInterval time.Duration
}

// Option customizes Client dependencies.
type Option func(*Client)

// WithScheduler replaces the real-time scheduler used for heartbeat and
// reconnection timers.
func WithScheduler(s timers.Scheduler) Option {
	return func(c *Client) {
		c.scheduler = s
	}
}

// WithMetrics instruments the client.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithRouterTable replaces the default type → category table.
func WithRouterTable(table map[string]router.Category) Option {
	return func(c *Client) {
		c.table = table
	}
}

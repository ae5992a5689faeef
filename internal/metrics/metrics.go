// Package metrics exposes Prometheus instrumentation for the sync client.
//
// All methods are safe on a nil *Metrics, so components can run
// uninstrumented in tests.
package metrics

import (
	"github.com/MKhiriev/go-sync-client/models"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "sync_client"
	Subsystem = "connection"
)

var connectionStates = []models.ConnectionState{
	models.StateDisconnected,
	models.StateConnecting,
	models.StateConnected,
	models.StateReconnecting,
}

// Metrics holds the collectors of one sync client.
type Metrics struct {
	state           *prometheus.GaugeVec
	reconnects      prometheus.Counter
	framesReceived  *prometheus.CounterVec
	framesSent      *prometheus.CounterVec
	malformedFrames prometheus.Counter
	droppedSends    prometheus.Counter
	cacheEntries    prometheus.Gauge
	staleRefetches  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "state",
			Help:      "Current lifecycle state of the sync connection (1 for the active state).",
		}, []string{"state"}),

		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "reconnects_total",
			Help:      "Number of scheduled reconnection attempts.",
		}),

		framesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "frames_received_total",
			Help:      "Number of inbound envelopes by routing category.",
		}, []string{"category"}),

		framesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "frames_sent_total",
			Help:      "Number of outbound envelopes by type.",
		}, []string{"type"}),

		malformedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "malformed_frames_total",
			Help:      "Number of inbound frames dropped because they could not be decoded.",
		}),

		droppedSends: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "dropped_sends_total",
			Help:      "Number of outbound envelopes dropped while not connected.",
		}),

		cacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Number of entries in the local cache.",
		}),

		staleRefetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "stale_refetches_total",
			Help:      "Number of stale cache entries refetched over REST, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.state,
		m.reconnects,
		m.framesReceived,
		m.framesSent,
		m.malformedFrames,
		m.droppedSends,
		m.cacheEntries,
		m.staleRefetches,
	)

	m.ConnectionState(models.StateDisconnected)
	return m
}

// ConnectionState marks s as the active lifecycle state.
func (m *Metrics) ConnectionState(s models.ConnectionState) {
	if m == nil {
		return
	}
	for _, st := range connectionStates {
		v := 0.0
		if st == s {
			v = 1
		}
		m.state.WithLabelValues(string(st)).Set(v)
	}
}

func (m *Metrics) ReconnectScheduled() {
	if m == nil {
		return
	}
	m.reconnects.Inc()
}

func (m *Metrics) FrameReceived(category string) {
	if m == nil {
		return
	}
	m.framesReceived.WithLabelValues(category).Inc()
}

func (m *Metrics) FrameSent(envelopeType string) {
	if m == nil {
		return
	}
	m.framesSent.WithLabelValues(envelopeType).Inc()
}

func (m *Metrics) MalformedFrame() {
	if m == nil {
		return
	}
	m.malformedFrames.Inc()
}

func (m *Metrics) SendDropped() {
	if m == nil {
		return
	}
	m.droppedSends.Inc()
}

func (m *Metrics) CacheEntries(n int) {
	if m == nil {
		return
	}
	m.cacheEntries.Set(float64(n))
}

// StaleRefetch counts one refetch attempt.
func (m *Metrics) StaleRefetch(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.staleRefetches.WithLabelValues(result).Inc()
}

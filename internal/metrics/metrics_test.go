package metrics

import (
	"testing"

	"github.com/MKhiriev/go-sync-client/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew_RegistersAndStartsDisconnected(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.state.WithLabelValues(string(models.StateDisconnected))))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.state.WithLabelValues(string(models.StateConnected))))

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}

func TestConnectionState_OneHot(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ConnectionState(models.StateReconnecting)

	for _, s := range connectionStates {
		want := 0.0
		if s == models.StateReconnecting {
			want = 1
		}
		assert.Equal(t, want, testutil.ToFloat64(m.state.WithLabelValues(string(s))), s)
	}
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ReconnectScheduled()
	m.ReconnectScheduled()
	m.FrameReceived("full_sync")
	m.FrameSent(models.TypeHeartbeat)
	m.MalformedFrame()
	m.SendDropped()
	m.CacheEntries(12)
	m.StaleRefetch(true)
	m.StaleRefetch(false)
	m.StaleRefetch(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reconnects))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.framesReceived.WithLabelValues("full_sync")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.framesSent.WithLabelValues(models.TypeHeartbeat)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.malformedFrames))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.droppedSends))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.cacheEntries))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.staleRefetches.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.staleRefetches.WithLabelValues("error")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ConnectionState(models.StateConnected)
		m.ReconnectScheduled()
		m.FrameReceived("x")
		m.FrameSent("y")
		m.MalformedFrame()
		m.SendDropped()
		m.CacheEntries(1)
		m.StaleRefetch(true)
	})
}

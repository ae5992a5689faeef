package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-sync-client/internal/config"
	"github.com/MKhiriev/go-sync-client/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_NoAddress(t *testing.T) {
	s, err := NewServer(http.NotFoundHandler(), config.ClientStatus{}, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_NoHandler(t *testing.T) {
	_, err := NewServer(nil, config.ClientStatus{HTTPAddress: ":0"}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestHTTPServer_ShutdownStopsRun(t *testing.T) {
	s, err := NewServer(http.NotFoundHandler(), config.ClientStatus{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.RunServer() }()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunServer did not return after Shutdown")
	}
}

func TestHTTPServer_ListenError(t *testing.T) {
	s, err := NewServer(http.NotFoundHandler(), config.ClientStatus{HTTPAddress: "256.0.0.1:bad"}, logger.Nop())
	require.NoError(t, err)

	assert.Error(t, s.RunServer())
}

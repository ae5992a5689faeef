// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validClientConfig() *ClientConfig {
	return newClientConfig(&StructuredConfig{
		Sync: Sync{
			Origin:            "https://app.example.com",
			Path:              DefaultSyncPath,
			HeartbeatInterval: DefaultHeartbeatInterval,
			BaseDelay:         DefaultBaseDelay,
			MaxRetries:        intPtr(DefaultMaxRetries),
		},
		API: API{
			Address:        "https://api.example.com",
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{RefreshInterval: DefaultRefreshInterval},
	})
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *ClientConfig)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(cfg *ClientConfig) {},
		},
		{
			name:   "ws origin accepted",
			mutate: func(cfg *ClientConfig) { cfg.Sync.Origin = "ws://localhost:8080" },
		},
		{
			name:   "api disabled skips api checks",
			mutate: func(cfg *ClientConfig) { cfg.API = ClientAPI{}; cfg.Workers = ClientWorkers{} },
		},
		{
			name:    "missing origin",
			mutate:  func(cfg *ClientConfig) { cfg.Sync.Origin = "" },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "origin without host",
			mutate:  func(cfg *ClientConfig) { cfg.Sync.Origin = "https://" },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "unsupported scheme",
			mutate:  func(cfg *ClientConfig) { cfg.Sync.Origin = "ftp://app.example.com" },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "negative retries",
			mutate:  func(cfg *ClientConfig) { cfg.Sync.MaxRetries = -1 },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "negative max delay",
			mutate:  func(cfg *ClientConfig) { cfg.Sync.MaxDelay = -time.Second },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "api without timeout",
			mutate:  func(cfg *ClientConfig) { cfg.API.RequestTimeout = 0 },
			wantErr: ErrInvalidAPIConfigs,
		},
		{
			name:    "api without refresh interval",
			mutate:  func(cfg *ClientConfig) { cfg.Workers.RefreshInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewClientConfig_AutoReconnectInverted(t *testing.T) {
	assert.True(t, newClientConfig(&StructuredConfig{}).Sync.AutoReconnect)
	assert.False(t, newClientConfig(&StructuredConfig{Sync: Sync{DisableAutoReconnect: true}}).Sync.AutoReconnect)
}

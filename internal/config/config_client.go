// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientSync holds the connection settings consumed by the sync client.
type ClientSync struct {
	Origin            string
	Path              string
	Token             string
	RequireToken      bool
	HeartbeatInterval time.Duration
	BaseDelay         time.Duration
	MaxRetries        int
	MaxDelay          time.Duration
	AutoReconnect     bool
}

// ClientAPI holds the REST collaborator settings.
type ClientAPI struct {
	Address        string
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite file path; empty disables persistence.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientStatus holds the status endpoint settings.
type ClientStatus struct {
	HTTPAddress string
}

// ClientWorkers contains background worker settings.
type ClientWorkers struct {
	RefreshInterval time.Duration
}

// ClientConfig is the validated runtime view assembled from
// [StructuredConfig].
type ClientConfig struct {
	Sync    ClientSync
	API     ClientAPI
	Storage ClientStorage
	Status  ClientStatus
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config from the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	maxRetries := DefaultMaxRetries
	if cfg.Sync.MaxRetries != nil {
		maxRetries = *cfg.Sync.MaxRetries
	}

	return &ClientConfig{
		Sync: ClientSync{
			Origin:            cfg.Sync.Origin,
			Path:              cfg.Sync.Path,
			Token:             cfg.Sync.Token,
			RequireToken:      cfg.Sync.RequireToken,
			HeartbeatInterval: cfg.Sync.HeartbeatInterval,
			BaseDelay:         cfg.Sync.BaseDelay,
			MaxRetries:        maxRetries,
			MaxDelay:          cfg.Sync.MaxDelay,
			AutoReconnect:     !cfg.Sync.DisableAutoReconnect,
		},
		API: ClientAPI{
			Address:        cfg.API.Address,
			RequestTimeout: cfg.API.RequestTimeout,
		},
		Storage: ClientStorage{DB: ClientDB{DSN: cfg.Storage.DB.DSN}},
		Status:  ClientStatus{HTTPAddress: cfg.Status.HTTPAddress},
		Workers: ClientWorkers{RefreshInterval: cfg.Workers.RefreshInterval},
	}
}

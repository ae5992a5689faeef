// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging environment variables, command-line flags, an optional JSON file
// and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Sync holds the real-time connection settings.
	Sync Sync `envPrefix:"SYNC_"`

	// API holds the REST collaborator settings used to refetch stale cache
	// entries.
	API API `envPrefix:"API_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Status holds the local status endpoint settings.
	Status Status `envPrefix:"STATUS_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Sync configures the websocket connection and its recovery policy.
type Sync struct {
	// Origin is the page origin the socket URL is derived from
	// (e.g. "https://app.example.com"). https selects wss, http selects ws.
	// Env: SYNC_ORIGIN
	Origin string `env:"ORIGIN"`

	// Path is the socket endpoint path. Defaults to "/ws".
	// Env: SYNC_PATH
	Path string `env:"PATH"`

	// Token is the identity token sent as the "token" query parameter.
	// Env: SYNC_TOKEN
	Token string `env:"TOKEN"`

	// RequireToken makes a missing token a connection construction failure.
	// Env: SYNC_REQUIRE_TOKEN
	RequireToken bool `env:"REQUIRE_TOKEN"`

	// HeartbeatInterval is the liveness envelope period.
	// Env: SYNC_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`

	// BaseDelay is the delay before the first reconnection attempt.
	// Env: SYNC_BASE_DELAY
	BaseDelay time.Duration `env:"BASE_DELAY"`

	// MaxRetries is the reconnection budget. Nil means unset; zero disables
	// reconnection attempts.
	// Env: SYNC_MAX_RETRIES
	MaxRetries *int `env:"MAX_RETRIES"`

	// MaxDelay caps a single reconnection delay; zero means uncapped.
	// Env: SYNC_MAX_DELAY
	MaxDelay time.Duration `env:"MAX_DELAY"`

	// DisableAutoReconnect turns reconnection off entirely.
	// Env: SYNC_DISABLE_AUTO_RECONNECT
	DisableAutoReconnect bool `env:"DISABLE_AUTO_RECONNECT"`
}

// API configures the REST collaborator.
type API struct {
	// Address is the REST base URL. Empty disables stale refetching.
	// Env: API_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single REST request.
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the persistence backends.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path. Empty disables persistence.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Status configures the local status endpoint.
type Status struct {
	// HTTPAddress is the "host:port" the status endpoint listens on.
	// Empty disables the endpoint.
	// Env: STATUS_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Workers holds configuration for background workers.
type Workers struct {
	// RefreshInterval is how often stale cache entries are refetched.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Defaults applied to fields left empty by every source.
const (
	DefaultSyncPath          = "/ws"
	DefaultHeartbeatInterval = 30 * time.Second
	DefaultBaseDelay         = time.Second
	DefaultMaxRetries        = 5
	DefaultRequestTimeout    = 15 * time.Second
	DefaultRefreshInterval   = time.Minute
)

func defaultConfig() *StructuredConfig {
	maxRetries := DefaultMaxRetries
	return &StructuredConfig{
		Sync: Sync{
			Path:              DefaultSyncPath,
			HeartbeatInterval: DefaultHeartbeatInterval,
			BaseDelay:         DefaultBaseDelay,
			MaxRetries:        &maxRetries,
		},
		API:     API{RequestTimeout: DefaultRequestTimeout},
		Workers: Workers{RefreshInterval: DefaultRefreshInterval},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// sources. For every field the first source providing a non-zero value wins
// (for pointer fields, a non-nil one):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

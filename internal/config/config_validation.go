// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
)

// validate checks the merged [StructuredConfig]. Source-level checks are left
// to [ClientConfig.validate], which sees the final values.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	u, err := url.Parse(cfg.Sync.Origin)
	if cfg.Sync.Origin == "" || err != nil || u.Host == "" {
		return ErrInvalidSyncConfigs
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.MaxRetries < 0 || cfg.Sync.BaseDelay < 0 || cfg.Sync.MaxDelay < 0 || cfg.Sync.HeartbeatInterval < 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.API.Address != "" {
		if _, err = url.Parse(cfg.API.Address); err != nil || cfg.API.RequestTimeout <= 0 {
			return ErrInvalidAPIConfigs
		}
		if cfg.Workers.RefreshInterval <= 0 {
			return ErrInvalidWorkerConfigs
		}
	}

	return nil
}

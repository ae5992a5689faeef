// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON config files.
type StructuredJSONConfig struct {
	Sync struct {
		Origin               string   `json:"origin"`
		Path                 string   `json:"path"`
		Token                string   `json:"token"`
		RequireToken         bool     `json:"require_token"`
		HeartbeatInterval    Duration `json:"heartbeat_interval"`
		BaseDelay            Duration `json:"base_delay"`
		MaxRetries           *int     `json:"max_retries"`
		MaxDelay             Duration `json:"max_delay"`
		DisableAutoReconnect bool     `json:"disable_auto_reconnect"`
	} `json:"sync,omitempty"`

	API struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"api,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Status struct {
		HTTPAddress string `json:"http_address"`
	} `json:"status,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Sync: Sync{
			Origin:               jsonCfg.Sync.Origin,
			Path:                 jsonCfg.Sync.Path,
			Token:                jsonCfg.Sync.Token,
			RequireToken:         jsonCfg.Sync.RequireToken,
			HeartbeatInterval:    time.Duration(jsonCfg.Sync.HeartbeatInterval),
			BaseDelay:            time.Duration(jsonCfg.Sync.BaseDelay),
			MaxRetries:           jsonCfg.Sync.MaxRetries,
			MaxDelay:             time.Duration(jsonCfg.Sync.MaxDelay),
			DisableAutoReconnect: jsonCfg.Sync.DisableAutoReconnect,
		},
		API: API{
			Address:        jsonCfg.API.Address,
			RequestTimeout: time.Duration(jsonCfg.API.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Status: Status{
			HTTPAddress: jsonCfg.Status.HTTPAddress,
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

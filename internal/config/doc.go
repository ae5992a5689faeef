// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the sync client.
//
// Configuration is assembled from environment variables, command-line flags,
// an optional JSON config file and built-in defaults; for each field the
// first source that sets it wins.
//
// The main entry points are [GetStructuredConfig] for the raw merged
// configuration and [GetClientConfig] for the validated runtime view.
package config

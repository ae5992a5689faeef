// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate].
var (
	// ErrInvalidSyncConfigs indicates a missing or unparsable origin, or
	// negative timings/budget.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidAPIConfigs indicates an unparsable REST address or a
	// non-positive request timeout.
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive refresh interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

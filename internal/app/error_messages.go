// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// status endpoint handlers.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies to describe the outcome of an operation.
package app

const (
	// MsgNotConnected is returned when an operation needs an open sync
	// connection and there is none.
	MsgNotConnected = "sync connection is not established"

	// MsgFullSyncFailed is returned when the full sync request could not be
	// written to an open connection.
	MsgFullSyncFailed = "failed to request full sync"
)

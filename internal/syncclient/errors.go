// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncclient

import "errors"

var (
	// ErrNotConnected is returned by outbound calls made while the
	// connection is not established. The envelope is dropped.
	ErrNotConnected = errors.New("sync client is not connected")

	// ErrInvalidArgument reports a programmer error such as a nil handler.
	ErrInvalidArgument = errors.New("invalid argument")
)

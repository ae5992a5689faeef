// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import "errors"

var (
	// ErrMissingToken is returned by a Factory that requires an identity
	// token when none is available.
	ErrMissingToken = errors.New("identity token is missing")
	// ErrInvalidOrigin is returned when the socket URL cannot be derived.
	ErrInvalidOrigin = errors.New("invalid origin")
	// ErrNotOpen is returned by Send before open or after close.
	ErrNotOpen = errors.New("transport is not open")
	// ErrAlreadyOpened is returned by a second Open call.
	ErrAlreadyOpened = errors.New("transport already opened")
	// ErrDial wraps a failed connection attempt.
	ErrDial = errors.New("dial failed")
)

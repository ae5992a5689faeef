// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import "errors"

var (
	// ErrMalformedFrame is returned by Decode when a frame is not a JSON
	// envelope with a non-empty type.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrMalformedPayload is returned by Dispatch when a known envelope type
	// carries a payload that does not match the sync payload shape.
	ErrMalformedPayload = errors.New("malformed sync payload")
)

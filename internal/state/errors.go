// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import "errors"

// ErrInvalidArgument is returned for programmer errors such as an empty
// subject id.
var ErrInvalidArgument = errors.New("invalid argument")

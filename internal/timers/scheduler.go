// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package timers abstracts one-shot timers so that the heartbeat monitor and
// the reconnection logic can run against a real clock in production and a
// manually advanced clock in tests.
package timers

import "time"

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from running.
	Stop() bool
}

// Scheduler arms one-shot timers.
type Scheduler interface {
	// AfterFunc runs f in its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer

	// Now returns the current time of the scheduler's clock.
	Now() time.Time
}

type realScheduler struct{}

// NewRealScheduler returns a Scheduler backed by the time package.
func NewRealScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realScheduler) Now() time.Time {
	return time.Now()
}

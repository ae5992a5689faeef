// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package backoff implements the reconnection policy of the sync client:
// exponential retry delays bounded by a retry budget and an optional delay
// ceiling.
package backoff

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultBaseDelay is used when Config.BaseDelay is not positive.
const DefaultBaseDelay = time.Second

// Config describes a reconnection policy.
type Config struct {
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxRetries is the retry budget. Zero disables retries.
	MaxRetries int
	// MaxDelay caps a single delay. Zero leaves delays uncapped, so the only
	// bound is the retry budget.
	MaxDelay time.Duration
}

// Policy computes retry delays. Attempt i (1-based) waits BaseDelay*2^(i-1),
// capped at MaxDelay when set.
//
// Policy is not safe for concurrent use; the sync client guards it with its
// own lock.
type Policy struct {
	cfg      Config
	attempts int
	exp      *backoff.ExponentialBackOff
}

// New returns a Policy with no attempts recorded.
func New(cfg Config) *Policy {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.BaseDelay
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxElapsedTime = 0
	exp.MaxInterval = time.Duration(math.MaxInt64)
	if cfg.MaxDelay > 0 {
		exp.MaxInterval = cfg.MaxDelay
	}
	exp.Reset()

	return &Policy{cfg: cfg, exp: exp}
}

// Next records a new attempt and returns the delay to wait before it. The
// second result is false once the retry budget is spent; the attempt counter
// is left unchanged in that case.
func (p *Policy) Next() (time.Duration, bool) {
	if p.attempts >= p.cfg.MaxRetries {
		return 0, false
	}
	p.attempts++

	delay := p.exp.NextBackOff()
	if delay == backoff.Stop {
		return 0, false
	}
	if p.cfg.MaxDelay > 0 && delay > p.cfg.MaxDelay {
		delay = p.cfg.MaxDelay
	}
	return delay, true
}

// Reset clears the attempt counter. It must only be called after a
// successful open.
func (p *Policy) Reset() {
	p.attempts = 0
	p.exp.Reset()
}

// Attempts returns the number of retries scheduled since the last Reset.
func (p *Policy) Attempts() int {
	return p.attempts
}

// Exhausted reports whether another call to Next would give up.
func (p *Policy) Exhausted() bool {
	return p.attempts >= p.cfg.MaxRetries
}


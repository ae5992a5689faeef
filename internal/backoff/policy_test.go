// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_ExponentialDelays(t *testing.T) {
	const base = 250 * time.Millisecond
	p := New(Config{BaseDelay: base, MaxRetries: 6})

	for i := 1; i <= 6; i++ {
		delay, ok := p.Next()
		require.True(t, ok, "attempt %d", i)
		assert.Equal(t, base*time.Duration(1<<(i-1)), delay, "attempt %d", i)
		assert.Equal(t, i, p.Attempts())
	}

	_, ok := p.Next()
	assert.False(t, ok)
	assert.Equal(t, 6, p.Attempts())
	assert.True(t, p.Exhausted())
}

func TestPolicy_ResetRestartsSequence(t *testing.T) {
	p := New(Config{BaseDelay: time.Second, MaxRetries: 3})

	_, _ = p.Next()
	_, _ = p.Next()
	p.Reset()

	assert.Zero(t, p.Attempts())
	delay, ok := p.Next()
	require.True(t, ok)
	assert.Equal(t, time.Second, delay)
}

func TestPolicy_MaxDelayCap(t *testing.T) {
	p := New(Config{BaseDelay: time.Second, MaxRetries: 10, MaxDelay: 5 * time.Second})

	var got []time.Duration
	for i := 0; i < 5; i++ {
		d, ok := p.Next()
		require.True(t, ok)
		got = append(got, d)
	}

	assert.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second,
	}, got)
}

func TestPolicy_ZeroBudget(t *testing.T) {
	p := New(Config{BaseDelay: time.Second})

	_, ok := p.Next()
	assert.False(t, ok)
	assert.True(t, p.Exhausted())
}

func TestPolicy_Defaults(t *testing.T) {
	p := New(Config{MaxRetries: -3})

	_, ok := p.Next()
	assert.False(t, ok, "negative budget disables retries")

	p = New(Config{MaxRetries: 1})
	delay, ok := p.Next()
	assert.True(t, ok)
	assert.Equal(t, DefaultBaseDelay, delay)
}

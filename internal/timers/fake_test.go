// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package timers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeScheduler_FiresInDeadlineOrder(t *testing.T) {
	s := NewFakeScheduler(time.Unix(0, 0))
	var order []int

	s.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	s.AfterFunc(time.Second, func() { order = append(order, 1) })
	s.AfterFunc(2*time.Second, func() { order = append(order, 2) })
	assert.Equal(t, 3, s.Pending())

	s.Advance(2 * time.Second)
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, s.Pending())

	s.Advance(time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Zero(t, s.Pending())
}

func TestFakeScheduler_Stop(t *testing.T) {
	s := NewFakeScheduler(time.Unix(0, 0))
	fired := false

	timer := s.AfterFunc(time.Second, func() { fired = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	s.Advance(time.Minute)
	assert.False(t, fired)
}

func TestFakeScheduler_RearmDuringAdvance(t *testing.T) {
	s := NewFakeScheduler(time.Unix(0, 0))
	ticks := 0

	var tick func()
	tick = func() {
		ticks++
		s.AfterFunc(10*time.Second, tick)
	}
	s.AfterFunc(10*time.Second, tick)

	s.Advance(35 * time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, time.Unix(35, 0), s.Now())
}

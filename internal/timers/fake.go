// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package timers

import (
	"sort"
	"sync"
	"time"
)

// FakeScheduler is a Scheduler driven by Advance. Callbacks run synchronously
// on the goroutine calling Advance, in deadline order, which makes timer-based
// behaviour deterministic in tests.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	owner    *FakeScheduler
	seq      int
	deadline time.Time
	delay    time.Duration
	f        func()
}

// NewFakeScheduler returns a FakeScheduler whose clock starts at start.
func NewFakeScheduler(start time.Time) *FakeScheduler {
	return &FakeScheduler{now: start}
}

// AfterFunc implements Scheduler.
func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &fakeTimer{owner: s, seq: s.seq, deadline: s.now.Add(d), delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Now implements Scheduler.
func (s *FakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of armed timers.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Delays returns the requested delays of the armed timers in arming order.
func (s *FakeScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]time.Duration, 0, len(s.timers))
	for _, t := range s.timers {
		out = append(out, t.delay)
	}
	return out
}

// Advance moves the clock forward by d and fires every timer whose deadline
// is reached, including timers armed by callbacks during the advance.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.popDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.deadline
		s.mu.Unlock()

		next.f()
	}
}

func (s *FakeScheduler) popDueLocked(target time.Time) *fakeTimer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].deadline.Equal(s.timers[j].deadline) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].deadline.Before(s.timers[j].deadline)
	})
	first := s.timers[0]
	if first.deadline.After(target) {
		return nil
	}
	s.timers = s.timers[1:]
	return first
}

func (t *fakeTimer) Stop() bool {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

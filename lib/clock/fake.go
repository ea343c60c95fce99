// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// FakeClock is a Clock whose time moves only when Advance is called.
// It is safe for concurrent use.
type FakeClock struct {
	mutex   sync.Mutex
	changed *sync.Cond
	now     time.Time
	pending []*fakeTimer
}

// fakeTimer is one registered After channel or ticker.
type fakeTimer struct {
	deadline time.Time
	channel  chan time.Time

	// period is zero for one-shot After timers.
	period  time.Duration
	stopped bool
}

// Fake returns a FakeClock reading initial until advanced.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{now: initial}
	clock.changed = sync.NewCond(&clock.mutex)
	return clock
}

// Now returns the fake time.
func (clock *FakeClock) Now() time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.now
}

// After registers a one-shot timer. A non-positive d delivers
// immediately without registering anything.
func (clock *FakeClock) After(d time.Duration) <-chan time.Time {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- clock.now
		return channel
	}
	clock.register(&fakeTimer{deadline: clock.now.Add(d), channel: channel})
	return channel
}

// NewTicker registers a periodic timer.
func (clock *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	clock.mutex.Lock()
	defer clock.mutex.Unlock()

	timer := &fakeTimer{
		deadline: clock.now.Add(d),
		channel:  make(chan time.Time, 1),
		period:   d,
	}
	clock.register(timer)
	return &Ticker{
		C: timer.channel,
		stop: func() {
			clock.mutex.Lock()
			defer clock.mutex.Unlock()
			timer.stopped = true
			clock.changed.Broadcast()
		},
	}
}

// register must be called with the mutex held.
func (clock *FakeClock) register(timer *fakeTimer) {
	clock.pending = append(clock.pending, timer)
	clock.changed.Broadcast()
}

// Advance moves time forward by d and fires every timer whose deadline
// is not after the new time, in deadline order. A ticker spanning
// several periods fires once per period; sends never block, so a full
// channel drops the tick.
func (clock *FakeClock) Advance(d time.Duration) {
	clock.mutex.Lock()
	clock.now = clock.now.Add(d)
	target := clock.now

	var due []*fakeTimer
	for {
		next := clock.nextDue(target)
		if next == nil {
			break
		}
		due = append(due, next)
		if next.period > 0 {
			next.deadline = next.deadline.Add(next.period)
		} else {
			next.stopped = true
		}
	}
	clock.pending = slices.DeleteFunc(clock.pending, func(timer *fakeTimer) bool {
		return timer.stopped
	})
	clock.changed.Broadcast()
	clock.mutex.Unlock()

	for _, timer := range due {
		select {
		case timer.channel <- target:
		default:
		}
	}
}

// nextDue returns the live timer with the earliest deadline at or
// before target, or nil. Called with the mutex held.
func (clock *FakeClock) nextDue(target time.Time) *fakeTimer {
	var earliest *fakeTimer
	for _, timer := range clock.pending {
		if timer.stopped || timer.deadline.After(target) {
			continue
		}
		if earliest == nil || timer.deadline.Before(earliest.deadline) {
			earliest = timer
		}
	}
	return earliest
}

// WaitForTimers blocks until at least n timers are pending. Tests call
// it before Advance so a goroutine that has not yet reached its
// NewTicker or After call does not miss the advance.
func (clock *FakeClock) WaitForTimers(n int) {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	for clock.pendingLocked() < n {
		clock.changed.Wait()
	}
}

// PendingCount returns the number of registered timers that have not
// fired (one-shot) or been stopped.
func (clock *FakeClock) PendingCount() int {
	clock.mutex.Lock()
	defer clock.mutex.Unlock()
	return clock.pendingLocked()
}

func (clock *FakeClock) pendingLocked() int {
	count := 0
	for _, timer := range clock.pending {
		if !timer.stopped {
			count++
		}
	}
	return count
}

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sync"
	"time"
)

// FakeTerminal is a Terminal driven by tests: events are injected with
// Send and drawn frames are recorded.
type FakeTerminal struct {
	events  chan Event
	release bool

	mutex    sync.Mutex
	frames   []string
	consumed int
	drawn    chan struct{}
	drawErr  error
	err      error
	stopped  bool
}

// NewFakeTerminal returns a running FakeTerminal. supportsRelease is
// what SupportsKeyRelease reports.
func NewFakeTerminal(supportsRelease bool) *FakeTerminal {
	return &FakeTerminal{
		events:  make(chan Event),
		release: supportsRelease,
		drawn:   make(chan struct{}),
	}
}

// Events implements Terminal.
func (terminal *FakeTerminal) Events() <-chan Event { return terminal.events }

// SupportsKeyRelease implements Terminal.
func (terminal *FakeTerminal) SupportsKeyRelease() bool { return terminal.release }

// Err implements Terminal.
func (terminal *FakeTerminal) Err() error {
	terminal.mutex.Lock()
	defer terminal.mutex.Unlock()
	return terminal.err
}

// Draw implements Terminal. It records frame, or fails with the error
// set by FailDraws.
func (terminal *FakeTerminal) Draw(frame string) error {
	terminal.mutex.Lock()
	defer terminal.mutex.Unlock()
	if terminal.drawErr != nil {
		return terminal.drawErr
	}
	terminal.frames = append(terminal.frames, frame)
	close(terminal.drawn)
	terminal.drawn = make(chan struct{})
	return nil
}

// Send delivers event to the consumer, blocking until it is read.
func (terminal *FakeTerminal) Send(event Event) {
	terminal.events <- event
}

// Stop closes the event stream. err is what Err reports afterwards.
func (terminal *FakeTerminal) Stop(err error) {
	terminal.mutex.Lock()
	defer terminal.mutex.Unlock()
	if terminal.stopped {
		return
	}
	terminal.stopped = true
	terminal.err = err
	close(terminal.events)
}

// FailDraws makes every later Draw return err.
func (terminal *FakeTerminal) FailDraws(err error) {
	terminal.mutex.Lock()
	defer terminal.mutex.Unlock()
	terminal.drawErr = err
}

// FrameCount returns the number of frames drawn so far.
func (terminal *FakeTerminal) FrameCount() int {
	terminal.mutex.Lock()
	defer terminal.mutex.Unlock()
	return len(terminal.frames)
}

// LastFrame returns the most recent frame, or "" before the first.
func (terminal *FakeTerminal) LastFrame() string {
	terminal.mutex.Lock()
	defer terminal.mutex.Unlock()
	if len(terminal.frames) == 0 {
		return ""
	}
	return terminal.frames[len(terminal.frames)-1]
}

// WaitForFrame returns the first frame satisfying match that was drawn
// after the frame returned by the previous successful WaitForFrame.
// It gives up after timeout and returns false.
func (terminal *FakeTerminal) WaitForFrame(timeout time.Duration, match func(frame string) bool) (string, bool) {
	deadline := time.After(timeout) //nolint:realclock test hang prevention
	for {
		terminal.mutex.Lock()
		for index := terminal.consumed; index < len(terminal.frames); index++ {
			if match(terminal.frames[index]) {
				terminal.consumed = index + 1
				frame := terminal.frames[index]
				terminal.mutex.Unlock()
				return frame, true
			}
		}
		drawn := terminal.drawn
		terminal.mutex.Unlock()

		select {
		case <-drawn:
		case <-deadline:
			return "", false
		}
	}
}

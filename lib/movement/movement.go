// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package movement turns discrete key-press and key-repeat signals into
// continuous paddle motion.
//
// Terminals without key-release reporting deliver a press, a pause of
// roughly the keyboard's repeat delay, and then a stream of repeats for
// as long as the key is held. A Movement keeps the paddle moving across
// that initial pause (HoldThreshold) and stops it quickly once repeats
// cease (RepeatThreshold). A single tap therefore nudges the paddle
// for up to HoldThreshold, and a held key moves it continuously.
package movement

import (
	"time"

	"github.com/mxmxmx333/ft-transcendence/lib/clock"
	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
)

const (
	// HoldThreshold is how long a direction stays active after the
	// key press that started it with no further repeats.
	HoldThreshold = 500 * time.Millisecond

	// RepeatThreshold is how long a direction stays active after a
	// key repeat.
	RepeatThreshold = 30 * time.Millisecond
)

// Movement tracks one paddle's direction. The zero value is not
// usable; call New. A Movement is owned by a single goroutine.
type Movement struct {
	clock          clock.Clock
	direction      socketio.Direction
	firstKeystroke bool

	// since is the time of the last Update with a direction. It is
	// zero exactly when direction is DirectionNone.
	since time.Time
}

// New returns a stopped Movement.
func New(clock clock.Clock) *Movement {
	return &Movement{clock: clock}
}

// Update records a key event for direction. DirectionNone stops the
// paddle. A direction different from the current one starts a new
// keystroke; the same direction again is a repeat. Either way the
// timestamp moves to now.
func (movement *Movement) Update(direction socketio.Direction) {
	if direction == socketio.DirectionNone {
		movement.reset()
		return
	}
	movement.firstKeystroke = movement.direction != direction
	movement.since = movement.clock.Now()
	movement.direction = direction
}

// Direction returns the current direction.
func (movement *Movement) Direction() socketio.Direction {
	return movement.direction
}

// FirstKeystroke reports whether the current direction has seen only
// its initial key press, with no repeats yet.
func (movement *Movement) FirstKeystroke() bool {
	return movement.firstKeystroke
}

// Stopped reports whether the current direction has just expired, and
// if so reverts it to DirectionNone. It returns true once per expiry
// and false while the paddle is idle or the direction is still live.
func (movement *Movement) Stopped() bool {
	if movement.direction == socketio.DirectionNone {
		return false
	}
	elapsed := movement.clock.Now().Sub(movement.since)
	if elapsed >= HoldThreshold || (!movement.firstKeystroke && elapsed >= RepeatThreshold) {
		movement.reset()
		return true
	}
	return false
}

func (movement *Movement) reset() {
	movement.direction = socketio.DirectionNone
	movement.firstKeystroke = false
	movement.since = time.Time{}
}

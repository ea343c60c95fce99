// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// FlashDuration is how long an item glows after it changes. Intensity
// starts at 1.0 and decays linearly to 0.0 over this duration.
const FlashDuration = 800 * time.Millisecond

// FlashTracker maps item keys to ignition times for change
// highlighting, such as a score that just went up. The render loop
// redraws at the tick rate, so decay needs no timer of its own.
type FlashTracker struct {
	ignitions map[string]time.Time
}

// NewFlashTracker creates an empty tracker.
func NewFlashTracker() *FlashTracker {
	return &FlashTracker{ignitions: make(map[string]time.Time)}
}

// Ignite records a change of key at now, restarting the decay if key
// was already glowing.
func (tracker *FlashTracker) Ignite(key string, now time.Time) {
	tracker.ignitions[key] = now
}

// Intensity returns 1.0 at ignition decaying linearly to 0.0 over
// FlashDuration, and 0.0 for keys never ignited or fully decayed.
// Decayed keys are forgotten.
func (tracker *FlashTracker) Intensity(key string, now time.Time) float64 {
	ignition, exists := tracker.ignitions[key]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(ignition)
	if elapsed >= FlashDuration {
		delete(tracker.ignitions, key)
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(FlashDuration)
}

// Active reports whether key still glows at now.
func (tracker *FlashTracker) Active(key string, now time.Time) bool {
	return tracker.Intensity(key, now) > 0
}

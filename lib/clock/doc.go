// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the injectable time source for the pong client.
//
// The paddle debouncer measures key-repeat gaps, the orchestrator
// drives its 60 Hz game tick, and the GameOver page measures match
// length. All three take a Clock instead of calling the time package,
// so tests can step time exactly:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go application.Run(ctx)
//	fake.WaitForTimers(1)           // the run loop registered its ticker
//	fake.Advance(time.Second / 60)  // exactly one tick
//
// Real() is the production implementation.
package clock

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the pong client
// packages.
//
// [RequireReceive], [RequireSend] and [RequireClosed] wrap the select
// with a wall-clock fallback that keeps a broken test from hanging the
// suite. They are the only place tests wait on real time; everything
// that measures time (debouncer thresholds, the game tick) runs on
// clock.Fake.
//
// [Logger] returns a *slog.Logger whose records go to t.Log, so
// transport and orchestrator debug output shows up next to the failing
// test instead of on stderr.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil

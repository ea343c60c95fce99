// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui is the terminal surface of the pong client: an input
// event stream and a frame sink behind the Terminal interface, the
// colour theme, overlay splicing for modal boxes drawn over the game
// field, and a slog handler that surfaces warnings in a status line.
//
// The client's control loop owns all state and produces whole frames
// as strings. Program adapts that model to bubbletea, which owns raw
// mode, the alternate screen, key decoding and diffed output. Tests
// substitute their own Terminal.
package tui

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Terminal is an input event stream plus a frame sink.
type Terminal interface {
	// Events delivers key and resize events. The channel is closed
	// when the terminal stops, after which Err reports why.
	Events() <-chan Event

	// Draw replaces the screen contents with frame. It must not block
	// on terminal output.
	Draw(frame string) error

	// SupportsKeyRelease reports whether KeyEvents with KeyRelease
	// and KeyRepeat phases are delivered. Without it every key event
	// is a KeyPress, including auto-repeats.
	SupportsKeyRelease() bool

	// Err returns the error that stopped the terminal, or nil if it
	// stopped cleanly or is still running.
	Err() error
}

// Event is a KeyEvent or a ResizeEvent.
type Event interface {
	terminalEvent()
}

// KeyPhase distinguishes the initial press of a key from auto-repeat
// and release.
type KeyPhase int

const (
	KeyPress KeyPhase = iota
	KeyRepeat
	KeyRelease
)

// String returns "press", "repeat" or "release".
func (phase KeyPhase) String() string {
	switch phase {
	case KeyRepeat:
		return "repeat"
	case KeyRelease:
		return "release"
	default:
		return "press"
	}
}

// KeyEvent is one decoded key. Key is the bubbletea representation so
// pages can feed it straight into bubbles components.
type KeyEvent struct {
	Key   tea.KeyMsg
	Phase KeyPhase
}

// ResizeEvent reports the new terminal size in cells.
type ResizeEvent struct {
	Width  int
	Height int
}

func (KeyEvent) terminalEvent()    {}
func (ResizeEvent) terminalEvent() {}

// Press returns a KeyPress event for the named key as spelled by
// tea.KeyMsg.String: "enter", "up", "ctrl+c", or a single character
// such as "w". Tests and scripted input use it.
func Press(name string) KeyEvent {
	return KeyEvent{Key: keyMsg(name), Phase: KeyPress}
}

// Release returns a KeyRelease event for the named key.
func Release(name string) KeyEvent {
	return KeyEvent{Key: keyMsg(name), Phase: KeyRelease}
}

// Type returns one KeyPress event per rune of text.
func Type(text string) []KeyEvent {
	events := make([]KeyEvent, 0, len(text))
	for _, character := range text {
		events = append(events, KeyEvent{
			Key:   tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}},
			Phase: KeyPress,
		})
	}
	return events
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+c":    tea.KeyCtrlC,
	" ":         tea.KeySpace,
	"space":     tea.KeySpace,
}

func keyMsg(name string) tea.KeyMsg {
	if keyType, ok := namedKeys[name]; ok {
		if keyType == tea.KeySpace {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: keyType}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

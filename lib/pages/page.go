// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package pages implements the screens of the pong client. Each page
// owns its display and input state and nothing else: key handling
// returns a Result that the control loop acts on, and the loop pushes
// network outcomes back through page-specific setters such as
// (*Login).SetError.
package pages

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// Page is one screen. Exactly one page is active at a time.
type Page interface {
	// HandleKey applies a key event and returns what the control loop
	// should do about it, or nil.
	HandleKey(event tui.KeyEvent) Result

	// Render draws the page into a width x height area and clears the
	// pending-redraw flag.
	Render(width, height int) string

	// NeedsRedraw reports whether the page changed since the last
	// Render.
	NeedsRedraw() bool
}

// Result is what a key event asks of the control loop. The set is
// closed; switch on the concrete type.
type Result interface {
	pageResult()
}

// HostSelected carries the chosen server and login method.
type HostSelected struct {
	Host   string
	Remote bool
}

// LoginSubmitted carries email and password credentials.
type LoginSubmitted struct {
	Email    string
	Password string
}

// TwoFactorSubmitted carries a six-digit one-time code.
type TwoFactorSubmitted struct {
	Code string
}

// NicknameSubmitted carries the nickname chosen after a first remote
// login.
type NicknameSubmitted struct {
	Nickname string
}

// ModeChosen carries the selected game mode.
type ModeChosen struct {
	Mode GameMode
}

// JoinRoomSubmitted carries the id of the room to join.
type JoinRoomSubmitted struct {
	RoomID string
}

// PaddleMoved carries paddle directions to send immediately. Only
// produced when the terminal reports key releases.
type PaddleMoved struct {
	Move socketio.PaddleMove
}

// PauseRequested asks the server to pause or resume the match.
type PauseRequested struct {
	Paused bool
}

// BackToMenu leaves the current room or flow for mode selection.
type BackToMenu struct{}

// Exit ends the program.
type Exit struct{}

func (HostSelected) pageResult()       {}
func (LoginSubmitted) pageResult()     {}
func (TwoFactorSubmitted) pageResult() {}
func (NicknameSubmitted) pageResult()  {}
func (ModeChosen) pageResult()         {}
func (JoinRoomSubmitted) pageResult()  {}
func (PaddleMoved) pageResult()        {}
func (PauseRequested) pageResult()     {}
func (BackToMenu) pageResult()         {}
func (Exit) pageResult()               {}

// GameMode is an entry of the mode selection menu.
type GameMode int

const (
	SinglePlayer GameMode = iota
	CreateRoom
	JoinRoom
	LocalMatch
)

var gameModeLabels = []string{
	SinglePlayer: "Single Player",
	CreateRoom:   "Create Room",
	JoinRoom:     "Join Room",
	LocalMatch:   "Local Match",
}

// String returns the menu label.
func (mode GameMode) String() string {
	if mode < 0 || int(mode) >= len(gameModeLabels) {
		return "unknown"
	}
	return gameModeLabels[mode]
}

// Request returns the create_room request that starts mode. JoinRoom
// has none; it joins an existing room instead.
func (mode GameMode) Request() (socketio.CreateRoom, bool) {
	switch mode {
	case SinglePlayer:
		return socketio.SinglePlayerRoom(), true
	case CreateRoom:
		return socketio.MultiplayerRoom(), true
	case LocalMatch:
		return socketio.LocalRoom(), true
	default:
		return socketio.CreateRoom{}, false
	}
}

// columnWidth is the width of the centred form column on menu and
// input pages.
const columnWidth = 42

// dirty tracks the pending-redraw flag shared by every page. Pages
// start dirty so their first frame is drawn.
type dirty struct {
	clean bool
}

func (flag *dirty) mark()             { flag.clean = false }
func (flag *dirty) rendered()         { flag.clean = true }
func (flag *dirty) NeedsRedraw() bool { return !flag.clean }

// placeColumn centres parts as a column 30% down a width x height
// area.
func placeColumn(styles *tui.Styles, width, height int, parts ...string) string {
	column := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return styles.Renderer.Place(width, height, lipgloss.Center, 0.3, column)
}

// errorBox renders message in the error style, or "" when there is
// none.
func errorBox(styles *tui.Styles, message string) string {
	if message == "" {
		return ""
	}
	lines := tui.FirstLines(message, columnWidth-4, 3)
	return styles.ErrorBox.Width(columnWidth - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

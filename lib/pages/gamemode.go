// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// GameModeSelection is the main menu reached after login.
type GameModeSelection struct {
	dirty
	styles       *tui.Styles
	menu         tui.Menu
	errorMessage string

	// pending is the mode whose room request is in flight.
	pending *GameMode
}

// NewGameModeSelection returns the menu with Single Player selected.
func NewGameModeSelection(styles *tui.Styles) *GameModeSelection {
	return &GameModeSelection{
		styles: styles,
		menu:   tui.Menu{Labels: gameModeLabels, Width: columnWidth},
	}
}

// HandleKey implements Page.
func (page *GameModeSelection) HandleKey(event tui.KeyEvent) Result {
	if event.Phase == tui.KeyRelease {
		return nil
	}
	keys := DefaultKeyMap
	switch {
	case key.Matches(event.Key, keys.Back):
		return Exit{}
	case key.Matches(event.Key, keys.Up):
		page.menu.MoveUp()
	case key.Matches(event.Key, keys.Down):
		page.menu.MoveDown()
	case key.Matches(event.Key, keys.Next):
		page.menu.Cycle()
	case key.Matches(event.Key, keys.Submit):
		mode := GameMode(page.menu.Cursor)
		page.errorMessage = ""
		if mode != JoinRoom {
			page.pending = &mode
		}
		page.mark()
		return ModeChosen{Mode: mode}
	default:
		return nil
	}
	page.mark()
	return nil
}

// Selected returns the highlighted mode.
func (page *GameModeSelection) Selected() GameMode {
	return GameMode(page.menu.Cursor)
}

// SetError shows a failed room request.
func (page *GameModeSelection) SetError(message string) {
	page.errorMessage = message
	page.pending = nil
	page.mark()
}

// Render implements Page.
func (page *GameModeSelection) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	status := ""
	if page.pending != nil {
		status = styles.Faint.Render("Connecting: " + page.pending.String() + "…")
	}
	return placeColumn(styles, width, height,
		styles.Title.Render("Game mode"),
		"",
		page.menu.Render(styles),
		status,
		errorBox(styles, page.errorMessage),
		helpLine(styles, DefaultKeyMap.Up, DefaultKeyMap.Down, withHelp(DefaultKeyMap.Submit, "enter", "play"), withHelp(DefaultKeyMap.Back, "esc", "quit")),
	)
}

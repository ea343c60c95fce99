// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// RoomIDLength is the number of characters in a room id.
const RoomIDLength = 6

// JoinRoomEntry asks for the id of a room created by another player.
type JoinRoomEntry struct {
	dirty
	styles       *tui.Styles
	roomID       field
	errorMessage string
	pending      bool
}

// NewJoinRoomEntry returns the page with an empty room id.
func NewJoinRoomEntry(styles *tui.Styles) *JoinRoomEntry {
	page := &JoinRoomEntry{
		styles: styles,
		roomID: newField("Room ID", RoomIDLength, asciiAlphanumeric),
	}
	page.roomID.focus()
	return page
}

// HandleKey implements Page. Escape returns to the menu.
func (page *JoinRoomEntry) HandleKey(event tui.KeyEvent) Result {
	if event.Phase == tui.KeyRelease {
		return nil
	}
	keys := DefaultKeyMap
	switch {
	case key.Matches(event.Key, keys.Back):
		return BackToMenu{}
	case key.Matches(event.Key, keys.Submit):
		if len(page.roomID.value()) != RoomIDLength {
			page.SetError("Room ID must be 6 characters")
			return nil
		}
		page.errorMessage = ""
		page.pending = true
		page.mark()
		return JoinRoomSubmitted{RoomID: page.roomID.value()}
	default:
		if !page.roomID.handle(event.Key) {
			return nil
		}
	}
	page.mark()
	return nil
}

// SetError shows a failed join.
func (page *JoinRoomEntry) SetError(message string) {
	page.errorMessage = message
	page.pending = false
	page.mark()
}

// Render implements Page.
func (page *JoinRoomEntry) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	status := ""
	if page.pending {
		status = styles.Faint.Render("Joining…")
	}
	return placeColumn(styles, width, height,
		styles.Title.Render("Join room"),
		"",
		page.roomID.render(styles, true),
		status,
		errorBox(styles, page.errorMessage),
		helpLine(styles, withHelp(DefaultKeyMap.Submit, "enter", "join"), withHelp(DefaultKeyMap.Back, "esc", "menu")),
	)
}

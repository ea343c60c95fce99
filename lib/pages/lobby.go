// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// GameLobby shows the id of a freshly created room while waiting for
// the second player.
type GameLobby struct {
	dirty
	styles *tui.Styles
	roomID string
}

// NewGameLobby returns the lobby of roomID.
func NewGameLobby(styles *tui.Styles, roomID string) *GameLobby {
	return &GameLobby{styles: styles, roomID: roomID}
}

// RoomID returns the id shown on the page.
func (page *GameLobby) RoomID() string { return page.roomID }

// HandleKey implements Page. Escape leaves the room.
func (page *GameLobby) HandleKey(event tui.KeyEvent) Result {
	if event.Phase != tui.KeyRelease && key.Matches(event.Key, DefaultKeyMap.Back) {
		return BackToMenu{}
	}
	return nil
}

// Render implements Page.
func (page *GameLobby) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	return placeColumn(styles, width, height,
		styles.Title.Render("Waiting for an opponent"),
		"",
		styles.Box.Width(columnWidth-2).Render("Room ID: "+styles.Focused.Render(page.roomID)),
		styles.Faint.Render("Share the room id with the other player."),
		helpLine(styles, withHelp(DefaultKeyMap.Back, "esc", "leave")),
	)
}

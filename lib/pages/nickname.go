// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// nicknameLimit bounds the nickname field.
const nicknameLimit = 20

// NicknameEntry asks a player who signed in through the browser for
// the first time to pick a nickname.
type NicknameEntry struct {
	dirty
	styles       *tui.Styles
	nickname     field
	errorMessage string
}

// NewNicknameEntry returns the page with an empty nickname.
func NewNicknameEntry(styles *tui.Styles) *NicknameEntry {
	page := &NicknameEntry{
		styles:   styles,
		nickname: newField("Nickname", nicknameLimit, anyPrintable),
	}
	page.nickname.focus()
	return page
}

// HandleKey implements Page.
func (page *NicknameEntry) HandleKey(event tui.KeyEvent) Result {
	if event.Phase == tui.KeyRelease {
		return nil
	}
	keys := DefaultKeyMap
	switch {
	case key.Matches(event.Key, keys.Back):
		return Exit{}
	case key.Matches(event.Key, keys.Submit):
		nickname := strings.TrimSpace(page.nickname.value())
		if nickname == "" {
			page.SetError("Nickname can't be empty")
			return nil
		}
		page.errorMessage = ""
		page.mark()
		return NicknameSubmitted{Nickname: nickname}
	default:
		if !page.nickname.handle(event.Key) {
			return nil
		}
	}
	page.mark()
	return nil
}

// SetError shows a rejected nickname. The text stays for editing.
func (page *NicknameEntry) SetError(message string) {
	page.errorMessage = message
	page.mark()
}

// Render implements Page.
func (page *NicknameEntry) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	return placeColumn(styles, width, height,
		styles.Title.Render("Choose a nickname"),
		"",
		page.nickname.render(styles, true),
		errorBox(styles, page.errorMessage),
		helpLine(styles, withHelp(DefaultKeyMap.Submit, "enter", "save"), withHelp(DefaultKeyMap.Back, "esc", "quit")),
	)
}

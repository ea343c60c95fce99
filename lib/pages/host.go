// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// hostLimit is the longest host name the field accepts.
const hostLimit = 32

const (
	loginLocal = iota
	loginRemote
)

// HostSelection is the first page: a server host name and the choice
// between email/password login and the browser-based remote login.
type HostSelection struct {
	dirty
	styles *tui.Styles
	host   field
	menu   tui.Menu

	errorMessage string

	// waitingURL is set while a remote login waits for the browser.
	waitingURL string
}

// NewHostSelection returns the page with host pre-filled.
func NewHostSelection(styles *tui.Styles, host string) *HostSelection {
	page := &HostSelection{
		styles: styles,
		host:   newField("Hostname", hostLimit, asciiGraphic),
		menu: tui.Menu{
			Labels: []string{"Local Login", "Remote Login through 42"},
			Width:  columnWidth,
		},
	}
	page.host.setValue(host)
	page.host.focus()
	return page
}

// HandleKey implements Page.
func (page *HostSelection) HandleKey(event tui.KeyEvent) Result {
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
		if page.host.value() == "" {
			page.SetError("Host can't be empty")
			return nil
		}
		page.errorMessage = ""
		page.mark()
		return HostSelected{Host: page.host.value(), Remote: page.menu.Cursor == loginRemote}
	default:
		if !page.host.handle(event.Key) {
			return nil
		}
	}
	page.mark()
	return nil
}

// SetError shows message below the menu and ends any wait for the
// browser.
func (page *HostSelection) SetError(message string) {
	page.errorMessage = message
	page.waitingURL = ""
	page.mark()
}

// SetWaiting shows that a remote login is waiting for the browser to
// complete at url.
func (page *HostSelection) SetWaiting(url string) {
	page.waitingURL = url
	page.errorMessage = ""
	page.mark()
}

// Render implements Page.
func (page *HostSelection) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	parts := []string{
		styles.Title.Render("Pong CLI"),
		"",
		page.host.render(styles, true),
		page.menu.Render(styles),
	}
	if page.waitingURL != "" {
		parts = append(parts,
			styles.Text.Render("Finish the login in your browser:"),
			styles.Faint.Render(tui.FitLine(page.waitingURL, columnWidth)),
		)
	}
	parts = append(parts,
		errorBox(styles, page.errorMessage),
		helpLine(styles, DefaultKeyMap.Up, DefaultKeyMap.Down, DefaultKeyMap.Submit, withHelp(DefaultKeyMap.Back, "esc", "quit")),
	)
	return placeColumn(styles, width, height, parts...)
}

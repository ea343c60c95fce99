// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// CodeLength is the number of digits in a one-time code.
const CodeLength = 6

// TwoFactor asks for the one-time code of an account with a second
// factor.
type TwoFactor struct {
	dirty
	styles       *tui.Styles
	code         field
	errorMessage string
}

// NewTwoFactor returns the page with an empty code.
func NewTwoFactor(styles *tui.Styles) *TwoFactor {
	page := &TwoFactor{
		styles: styles,
		code:   newField("Authenticator code", CodeLength, asciiDigit),
	}
	page.code.focus()
	return page
}

// HandleKey implements Page. Only digits are accepted and only a full
// code is submitted.
func (page *TwoFactor) HandleKey(event tui.KeyEvent) Result {
	if event.Phase == tui.KeyRelease {
		return nil
	}
	keys := DefaultKeyMap
	switch {
	case key.Matches(event.Key, keys.Back):
		return Exit{}
	case key.Matches(event.Key, keys.Submit):
		if len(page.code.value()) != CodeLength {
			page.SetError("Code must be 6 digits")
			return nil
		}
		page.errorMessage = ""
		page.mark()
		return TwoFactorSubmitted{Code: page.code.value()}
	default:
		if !page.code.handle(event.Key) {
			return nil
		}
	}
	page.mark()
	return nil
}

// SetError shows a rejected code and clears the field.
func (page *TwoFactor) SetError(message string) {
	page.code.reset()
	page.errorMessage = message
	page.mark()
}

// Render implements Page.
func (page *TwoFactor) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	return placeColumn(styles, width, height,
		styles.Title.Render("Two-factor authentication"),
		"",
		page.code.render(styles, true),
		errorBox(styles, page.errorMessage),
		helpLine(styles, withHelp(DefaultKeyMap.Submit, "enter", "verify"), withHelp(DefaultKeyMap.Back, "esc", "quit")),
	)
}

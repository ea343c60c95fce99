// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// credentialLimit bounds the email and password fields.
const credentialLimit = 32

// Login asks for email and password.
type Login struct {
	dirty
	styles   *tui.Styles
	email    field
	password field

	// onPassword is true when the password field has focus.
	onPassword   bool
	errorMessage string
	pending      bool
}

// NewLogin returns the page with the email field focused.
func NewLogin(styles *tui.Styles) *Login {
	page := &Login{
		styles:   styles,
		email:    newField("Email", credentialLimit, asciiGraphic),
		password: newSecretField("Password", credentialLimit, asciiGraphic),
	}
	page.email.focus()
	return page
}

// HandleKey implements Page. Enter on the email field moves to the
// password; enter on the password submits.
func (page *Login) HandleKey(event tui.KeyEvent) Result {
	if event.Phase == tui.KeyRelease {
		return nil
	}
	keys := DefaultKeyMap
	switch {
	case key.Matches(event.Key, keys.Back):
		return Exit{}
	case key.Matches(event.Key, keys.Next):
		page.focusPassword(!page.onPassword)
	case key.Matches(event.Key, keys.Submit):
		if !page.onPassword {
			page.focusPassword(true)
			break
		}
		if page.email.value() == "" || page.password.value() == "" {
			page.SetError("Email and password are required")
			return nil
		}
		page.errorMessage = ""
		page.pending = true
		page.mark()
		return LoginSubmitted{Email: page.email.value(), Password: page.password.value()}
	default:
		current := &page.email
		if page.onPassword {
			current = &page.password
		}
		if !current.handle(event.Key) {
			return nil
		}
	}
	page.mark()
	return nil
}

func (page *Login) focusPassword(onPassword bool) {
	page.onPassword = onPassword
	if onPassword {
		page.email.blur()
		page.password.focus()
	} else {
		page.password.blur()
		page.email.focus()
	}
}

// SetError shows a failed login. The password is cleared and focused
// for the retry.
func (page *Login) SetError(message string) {
	page.password.reset()
	page.focusPassword(true)
	page.errorMessage = message
	page.pending = false
	page.mark()
}

// Render implements Page.
func (page *Login) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	status := ""
	if page.pending {
		status = styles.Faint.Render("Signing in…")
	}
	return placeColumn(styles, width, height,
		styles.Title.Render("Login"),
		"",
		page.email.render(styles, !page.onPassword),
		page.password.render(styles, page.onPassword),
		status,
		errorBox(styles, page.errorMessage),
		helpLine(styles, DefaultKeyMap.Next, withHelp(DefaultKeyMap.Submit, "enter", "login"), withHelp(DefaultKeyMap.Back, "esc", "quit")),
	)
}

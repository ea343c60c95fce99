// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// field is a titled single-line text input. Only runes accepted by
// accept are inserted, up to limit of them.
type field struct {
	title  string
	input  textinput.Model
	accept func(rune) bool
}

func newField(title string, limit int, accept func(rune) bool) field {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = limit
	input.Cursor.SetMode(cursor.CursorStatic)
	return field{title: title, input: input, accept: accept}
}

func newSecretField(title string, limit int, accept func(rune) bool) field {
	secret := newField(title, limit, accept)
	secret.input.EchoMode = textinput.EchoPassword
	secret.input.EchoCharacter = '*'
	return secret
}

// asciiGraphic accepts printable ASCII other than space.
func asciiGraphic(character rune) bool {
	return character > ' ' && character < unicode.MaxASCII
}

func asciiDigit(character rune) bool {
	return character >= '0' && character <= '9'
}

func asciiAlphanumeric(character rune) bool {
	return asciiDigit(character) ||
		(character >= 'a' && character <= 'z') ||
		(character >= 'A' && character <= 'Z')
}

// anyPrintable accepts everything a nickname may contain.
func anyPrintable(character rune) bool {
	return unicode.IsPrint(character)
}

func (f *field) value() string { return f.input.Value() }

func (f *field) setValue(value string) { f.input.SetValue(value) }

func (f *field) reset() { f.input.Reset() }

func (f *field) focus() { f.input.Focus() }

func (f *field) blur() { f.input.Blur() }

// handle applies an editing key and reports whether the key was
// consumed. Enter, tab and escape are left to the page.
func (f *field) handle(message tea.KeyMsg) bool {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			if !f.accept(character) {
				return false
			}
		}
		if len([]rune(f.input.Value()))+len(message.Runes) > f.input.CharLimit {
			return false
		}
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlW:
	default:
		return false
	}
	f.input, _ = f.input.Update(message)
	return true
}

// render draws the field as a bordered box titled above the content.
func (f *field) render(styles *tui.Styles, focused bool) string {
	box := styles.Box
	title := styles.Faint
	if focused {
		box = styles.FocusedBox
		title = styles.Focused
	}
	return title.Render(f.title) + "\n" + box.Width(columnWidth-2).Render(f.input.View())
}

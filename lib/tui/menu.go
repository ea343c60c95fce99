// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Menu is a vertical list of boxed entries with one highlighted. The
// owning page routes navigation keys to it.
type Menu struct {
	Labels []string
	Cursor int

	// Width is the outer width of every entry box.
	Width int
}

// MoveUp moves the cursor up by one, stopping at the first entry.
func (menu *Menu) MoveUp() {
	if menu.Cursor > 0 {
		menu.Cursor--
	}
}

// MoveDown moves the cursor down by one, stopping at the last entry.
func (menu *Menu) MoveDown() {
	if menu.Cursor < len(menu.Labels)-1 {
		menu.Cursor++
	}
}

// Cycle moves the cursor down by one, wrapping to the top.
func (menu *Menu) Cycle() {
	menu.Cursor++
	if menu.Cursor >= len(menu.Labels) {
		menu.Cursor = 0
	}
}

// Render draws each entry as a bordered box, the highlighted one in
// the focused style.
func (menu *Menu) Render(styles *Styles) string {
	boxes := make([]string, 0, len(menu.Labels))
	for index, label := range menu.Labels {
		style := styles.Box
		if index == menu.Cursor {
			style = styles.FocusedBox
		}
		// Width excludes the border.
		boxes = append(boxes, style.Width(max(0, menu.Width-2)).Render(label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

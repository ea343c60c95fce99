// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// KeyMap defines the key bindings shared by all pages.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding // Cycle focus between fields or menu entries.
	Submit key.Binding
	Back   key.Binding // Exit on entry pages, back to the menu elsewhere.

	// In game. Player one uses W/S in a local match; in every other
	// mode both sets steer the player's own paddle.
	Pause    key.Binding
	P1Up     key.Binding
	P1Down   key.Binding
	ArrowUp  key.Binding
	ArrowDn  key.Binding
	Continue key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p/space", "pause"),
	),
	P1Up: key.NewBinding(
		key.WithKeys("w", "W"),
		key.WithHelp("w", "up"),
	),
	P1Down: key.NewBinding(
		key.WithKeys("s", "S"),
		key.WithHelp("s", "down"),
	),
	ArrowUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	ArrowDn: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Continue: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("enter", "menu"),
	),
}

// helpLine renders bindings as a one-line key legend.
func helpLine(styles *tui.Styles, bindings ...key.Binding) string {
	model := help.New()
	model.Styles.ShortKey = styles.Help.Bold(true)
	model.Styles.ShortDesc = styles.Help
	model.Styles.ShortSeparator = styles.Help
	return model.ShortHelpView(bindings)
}

// withHelp returns binding with a different help text.
func withHelp(binding key.Binding, keys, description string) key.Binding {
	binding.SetHelp(keys, description)
	return binding
}

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the color palette of the client. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility;
// lipgloss degrades them further on ANSI-only terminals.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Focused widget (selected menu entry, active input field).
	Focused lipgloss.Color

	// Inline error messages and error-level status records.
	Error   lipgloss.Color
	Warning lipgloss.Color

	// Game field.
	OwnerPaddle lipgloss.Color
	GuestPaddle lipgloss.Color
	Ball        lipgloss.Color
	Nickname    lipgloss.Color
	Score       lipgloss.Color

	// Recently changed scores glow in this background.
	ScoreFlash lipgloss.Color

	// UI chrome.
	BorderColor       lipgloss.Color
	OverlayBackground lipgloss.Color
	HelpText          lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Focused: lipgloss.Color("201"), // magenta

	Error:   lipgloss.Color("196"),
	Warning: lipgloss.Color("220"),

	OwnerPaddle: lipgloss.Color("201"), // magenta
	GuestPaddle: lipgloss.Color("51"),  // cyan
	Ball:        lipgloss.Color("226"), // yellow
	Nickname:    lipgloss.Color("44"),
	Score:       lipgloss.Color("221"),

	ScoreFlash: lipgloss.Color("58"), // dark amber

	BorderColor:       lipgloss.Color("240"),
	OverlayBackground: lipgloss.Color("237"),
	HelpText:          lipgloss.Color("241"),
}

// Styles are the lipgloss styles every page draws with, bound to one
// renderer so the colour profile is decided once.
type Styles struct {
	Theme    Theme
	Renderer *lipgloss.Renderer

	Text     lipgloss.Style
	Faint    lipgloss.Style
	Title    lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Focused  lipgloss.Style
	Nickname lipgloss.Style
	Score    lipgloss.Style

	// Box is an unfocused bordered box; FocusedBox its focused form.
	Box        lipgloss.Style
	FocusedBox lipgloss.Style
	ErrorBox   lipgloss.Style

	Overlay lipgloss.Style
}

// NewStyles builds the styles of theme for renderer.
func NewStyles(theme Theme, renderer *lipgloss.Renderer) *Styles {
	box := renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Foreground(theme.FaintText).
		Padding(0, 1)
	return &Styles{
		Theme:    theme,
		Renderer: renderer,

		Text:     renderer.NewStyle().Foreground(theme.NormalText),
		Faint:    renderer.NewStyle().Foreground(theme.FaintText),
		Title:    renderer.NewStyle().Foreground(theme.NormalText).Bold(true),
		Help:     renderer.NewStyle().Foreground(theme.HelpText),
		Error:    renderer.NewStyle().Foreground(theme.Error),
		Warning:  renderer.NewStyle().Foreground(theme.Warning),
		Focused:  renderer.NewStyle().Foreground(theme.Focused).Bold(true),
		Nickname: renderer.NewStyle().Foreground(theme.Nickname).Bold(true),
		Score:    renderer.NewStyle().Foreground(theme.Score).Bold(true),

		Box:        box,
		FocusedBox: box.BorderForeground(theme.Focused).Foreground(theme.Focused),
		ErrorBox:   box.BorderForeground(theme.Error).Foreground(theme.Error),

		Overlay: renderer.NewStyle().
			Background(theme.OverlayBackground).
			Foreground(theme.NormalText),
	}
}

// PlainStyles returns DefaultTheme styles that emit no escape
// sequences. Tests compare rendered text against it.
func PlainStyles() *Styles {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.Ascii)
	return NewStyles(DefaultTheme, renderer)
}

// NewRenderer returns a lipgloss renderer for output with the colour
// profile named by profile: "auto" detects it from output, and
// "truecolor", "ansi256", "ansi" or "none" force it.
func NewRenderer(output io.Writer, profile string, logger *slog.Logger) (*lipgloss.Renderer, error) {
	renderer := lipgloss.NewRenderer(output)
	switch profile {
	case "", "auto":
		logger.Debug("detected colour profile", "profile", profileName(renderer.ColorProfile()))
		return renderer, nil
	case "truecolor":
		renderer.SetColorProfile(termenv.TrueColor)
	case "ansi256":
		renderer.SetColorProfile(termenv.ANSI256)
	case "ansi":
		renderer.SetColorProfile(termenv.ANSI)
	case "none":
		renderer.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("unknown colour profile %q", profile)
	}
	return renderer, nil
}

func profileName(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "none"
	}
}

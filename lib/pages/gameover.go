// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"

	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// shortUnits abbreviates durafmt's unit names.
var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// GameResult is the outcome of a finished match.
type GameResult struct {
	// Won is from this client's point of view. Meaningless in a local
	// match, where Winner is shown instead.
	Won   bool
	Local bool

	Owner      socketio.Player
	Guest      socketio.Player
	OwnerScore int
	GuestScore int

	// Winner and Message are free text from the server.
	Winner  string
	Message string

	Duration time.Duration
}

// GameOver shows the result of the last match.
type GameOver struct {
	dirty
	styles *tui.Styles
	result GameResult
}

// NewGameOver returns the page for result.
func NewGameOver(styles *tui.Styles, result GameResult) *GameOver {
	return &GameOver{styles: styles, result: result}
}

// Result returns the result shown on the page.
func (page *GameOver) Result() GameResult { return page.result }

// HandleKey implements Page. Enter or escape returns to the menu.
func (page *GameOver) HandleKey(event tui.KeyEvent) Result {
	if event.Phase != tui.KeyRelease && key.Matches(event.Key, DefaultKeyMap.Continue) {
		return BackToMenu{}
	}
	return nil
}

// Headline is "You won", "You lost" or, in a local match, the winner.
func (result GameResult) Headline() string {
	switch {
	case result.Local && result.Winner != "":
		return result.Winner + " won"
	case result.Local:
		return "Game over"
	case result.Won:
		return "You won"
	default:
		return "You lost"
	}
}

// Render implements Page.
func (page *GameOver) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	result := page.result

	scores := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s: %s", styles.Nickname.Render(result.Owner.Nickname), styles.Score.Render(fmt.Sprint(result.OwnerScore))),
		fmt.Sprintf("%s: %s", styles.Nickname.Render(result.Guest.Nickname), styles.Score.Render(fmt.Sprint(result.GuestScore))),
		styles.Faint.Render("Duration: "+durafmt.Parse(result.Duration.Truncate(time.Second)).LimitFirstN(2).Format(shortUnits)),
	)
	headline := styles.Title
	if !result.Local && !result.Won {
		headline = styles.Error.Bold(true)
	}

	parts := []string{
		headline.Render(result.Headline()),
		"",
		styles.Box.Width(columnWidth - 2).Render(scores),
	}
	for _, line := range tui.FirstLines(result.Message, columnWidth, 2) {
		parts = append(parts, styles.Faint.Render(line))
	}
	parts = append(parts, helpLine(styles, DefaultKeyMap.Continue))
	return placeColumn(styles, width, height, parts...)
}

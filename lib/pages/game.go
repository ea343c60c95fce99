// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mxmxmx333/ft-transcendence/lib/clock"
	"github.com/mxmxmx333/ft-transcendence/lib/movement"
	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// Server field geometry. Positions are in field units with the origin
// at the top left; a paddle's y is its top edge.
const (
	FieldWidth   = 800.0
	FieldHeight  = 600.0
	PaddleHeight = 100.0

	// cellAspect is the height of a terminal cell over its width.
	cellAspect = 1.9
)

// Paddle slots in a PaddleMove. The room owner plays slot one.
const (
	slotP1 = iota
	slotP2
)

// GameOptions selects how the game page reads the keyboard.
type GameOptions struct {
	// Local puts both paddles on this keyboard: W/S for the left,
	// arrows for the right.
	Local bool

	// KeyRelease means the terminal reports releases, so key events
	// map straight to PaddleMoved results. Otherwise directions are
	// debounced and collected by Tick.
	KeyRelease bool
}

// ActiveGame draws a running match and turns paddle keys into
// movement.
type ActiveGame struct {
	dirty
	styles  *tui.Styles
	clock   clock.Clock
	options GameOptions

	owner   socketio.Player
	guest   socketio.Player
	isOwner bool

	ballX, ballY           float64
	paddle1Y, paddle2Y     float64
	ownerScore, guestScore int
	paused                 bool

	// debounced per slot, used without key release reporting.
	debounced [2]*movement.Movement
	// held per slot, used with key release reporting.
	held     [2]socketio.Direction
	lastSent socketio.PaddleMove

	startedAt time.Time
	flashes   *tui.FlashTracker

	ownerPaddle lipgloss.Style
	guestPaddle lipgloss.Style
	ball        lipgloss.Style
}

// NewActiveGame starts the page from the game_start event.
func NewActiveGame(styles *tui.Styles, gameClock clock.Clock, start socketio.GameStart, options GameOptions) *ActiveGame {
	theme := styles.Theme
	return &ActiveGame{
		styles:     styles,
		clock:      gameClock,
		options:    options,
		owner:      start.Owner,
		guest:      start.Guest,
		isOwner:    start.IsOwner,
		ballX:      start.BallX,
		ballY:      start.BallY,
		paddle1Y:   start.Paddle1Y,
		paddle2Y:   start.Paddle2Y,
		ownerScore: start.OwnerScore,
		guestScore: start.GuestScore,
		debounced: [2]*movement.Movement{
			movement.New(gameClock),
			movement.New(gameClock),
		},
		startedAt:   gameClock.Now(),
		flashes:     tui.NewFlashTracker(),
		ownerPaddle: styles.Renderer.NewStyle().Foreground(theme.OwnerPaddle),
		guestPaddle: styles.Renderer.NewStyle().Foreground(theme.GuestPaddle),
		ball:        styles.Renderer.NewStyle().Foreground(theme.Ball),
	}
}

// ownSlot is the paddle this client steers outside a local match.
func (page *ActiveGame) ownSlot() int {
	if page.isOwner {
		return slotP1
	}
	return slotP2
}

// HandleKey implements Page.
func (page *ActiveGame) HandleKey(event tui.KeyEvent) Result {
	keys := DefaultKeyMap
	if event.Phase != tui.KeyRelease {
		switch {
		case key.Matches(event.Key, keys.Back):
			return BackToMenu{}
		case key.Matches(event.Key, keys.Pause):
			return PauseRequested{Paused: !page.paused}
		}
	}

	slot, direction, ok := page.paddleKey(event)
	if !ok {
		return nil
	}
	if !page.options.KeyRelease {
		if event.Phase != tui.KeyRelease {
			page.debounced[slot].Update(direction)
		}
		return nil
	}

	switch event.Phase {
	case tui.KeyRelease:
		if page.held[slot] == direction {
			page.held[slot] = socketio.DirectionNone
		}
	default:
		page.held[slot] = direction
	}
	move := socketio.PaddleMove{P1: page.held[slotP1], P2: page.held[slotP2]}
	if move == page.lastSent {
		return nil
	}
	page.lastSent = move
	return PaddleMoved{Move: move}
}

// paddleKey maps a key to a paddle slot and direction.
func (page *ActiveGame) paddleKey(event tui.KeyEvent) (int, socketio.Direction, bool) {
	keys := DefaultKeyMap
	wasd, arrows := page.ownSlot(), page.ownSlot()
	if page.options.Local {
		wasd, arrows = slotP1, slotP2
	}
	switch {
	case key.Matches(event.Key, keys.P1Up):
		return wasd, socketio.DirectionUp, true
	case key.Matches(event.Key, keys.P1Down):
		return wasd, socketio.DirectionDown, true
	case key.Matches(event.Key, keys.ArrowUp):
		return arrows, socketio.DirectionUp, true
	case key.Matches(event.Key, keys.ArrowDn):
		return arrows, socketio.DirectionDown, true
	}
	return 0, socketio.DirectionNone, false
}

// Tick expires debounced directions and returns the paddle move to
// send, if the directions changed since the last one sent.
func (page *ActiveGame) Tick() (socketio.PaddleMove, bool) {
	for _, debounced := range page.debounced {
		debounced.Stopped()
	}
	move := socketio.PaddleMove{
		P1: page.debounced[slotP1].Direction(),
		P2: page.debounced[slotP2].Direction(),
	}
	if move == page.lastSent {
		return move, false
	}
	page.lastSent = move
	return move, true
}

// Apply updates the field from a game_state snapshot.
func (page *ActiveGame) Apply(state socketio.GameState) {
	now := page.clock.Now()
	if state.OwnerScore != page.ownerScore {
		page.flashes.Ignite("owner", now)
	}
	if state.GuestScore != page.guestScore {
		page.flashes.Ignite("guest", now)
	}
	page.ballX, page.ballY = state.BallX, state.BallY
	page.paddle1Y, page.paddle2Y = state.Paddle1Y, state.Paddle2Y
	page.ownerScore, page.guestScore = state.OwnerScore, state.GuestScore
	page.mark()
}

// SetPaused shows or hides the pause overlay.
func (page *ActiveGame) SetPaused(paused bool) {
	page.paused = paused
	page.mark()
}

// Paused reports the last pause state the server sent.
func (page *ActiveGame) Paused() bool { return page.paused }

// Finish turns the game_over event into the result shown next.
func (page *ActiveGame) Finish(over socketio.GameOver) GameResult {
	won := over.FinalScore.Owner > over.FinalScore.Guest
	if !page.isOwner {
		won = over.FinalScore.Guest > over.FinalScore.Owner
	}
	return GameResult{
		Won:        won,
		Local:      page.options.Local,
		Owner:      page.owner,
		Guest:      page.guest,
		OwnerScore: over.FinalScore.Owner,
		GuestScore: over.FinalScore.Guest,
		Winner:     over.Winner,
		Message:    over.Message,
		Duration:   page.clock.Now().Sub(page.startedAt),
	}
}

// Render implements Page: a score line above the field, scaled to the
// largest area with the field's aspect ratio.
func (page *ActiveGame) Render(width, height int) string {
	page.rendered()
	styles := page.styles
	now := page.clock.Now()

	scoreLine := page.renderScores(width, now)
	help := helpLine(styles, withHelp(DefaultKeyMap.ArrowUp, "↑/↓ w/s", "move"), DefaultKeyMap.Pause, withHelp(DefaultKeyMap.Back, "esc", "leave"))

	columns, rows := fieldSize(width-2, height-4)
	if columns < 8 || rows < 4 {
		return styles.Renderer.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.Warning.Render("Terminal too small"))
	}

	field := styles.Box.Padding(0).Render(page.renderField(columns, rows))
	view := styles.Renderer.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Center, scoreLine, field, help))

	if page.paused {
		box := styles.Overlay.Padding(1, 3).Render("PAUSED\n" + styles.Help.Render("p to resume"))
		view = tui.CenterOverlay(view, box, width, height)
	}
	return view
}

func (page *ActiveGame) renderScores(width int, now time.Time) string {
	styles := page.styles
	score := func(flashKey string, value int) string {
		style := styles.Score
		if page.flashes.Active(flashKey, now) {
			style = style.Background(styles.Theme.ScoreFlash)
		}
		return style.Render(fmt.Sprintf(" %d ", value))
	}
	left := "Player 1: " + styles.Nickname.Render(page.owner.Nickname) + "  " + score("owner", page.ownerScore)
	right := score("guest", page.guestScore) + "  " + "Player 2: " + styles.Nickname.Render(page.guest.Nickname)
	return tui.FitLine(left+styles.Faint.Render("  :  ")+right, width)
}

// fieldSize returns the largest columns x rows area inside the
// available cells with the field's aspect ratio.
func fieldSize(availableColumns, availableRows int) (int, int) {
	ratio := FieldWidth / FieldHeight * cellAspect
	if float64(availableColumns) >= float64(availableRows)*ratio {
		return int(math.Round(float64(availableRows) * ratio)), availableRows
	}
	return availableColumns, int(float64(availableColumns) / ratio)
}

// renderField draws paddles, ball and the centre line into a
// columns x rows grid.
func (page *ActiveGame) renderField(columns, rows int) string {
	const (
		empty = iota
		centre
		ownerPaddle
		guestPaddle
		ball
	)
	grid := make([][]int, rows)
	for row := range grid {
		grid[row] = make([]int, columns)
		if row%2 == 0 {
			grid[row][columns/2] = centre
		}
	}

	paintPaddle := func(column int, top float64, kind int) {
		first := scale(top, FieldHeight, rows)
		last := scale(top+PaddleHeight, FieldHeight, rows)
		for row := first; row <= last && row < rows; row++ {
			grid[row][column] = kind
		}
	}
	paintPaddle(0, page.paddle1Y, ownerPaddle)
	paintPaddle(columns-1, page.paddle2Y, guestPaddle)
	grid[scale(page.ballY, FieldHeight, rows)][scale(page.ballX, FieldWidth, columns)] = ball

	var builder strings.Builder
	for row, cells := range grid {
		if row > 0 {
			builder.WriteByte('\n')
		}
		for _, cell := range cells {
			switch cell {
			case centre:
				builder.WriteString(page.styles.Faint.Render("┊"))
			case ownerPaddle:
				builder.WriteString(page.ownerPaddle.Render("█"))
			case guestPaddle:
				builder.WriteString(page.guestPaddle.Render("█"))
			case ball:
				builder.WriteString(page.ball.Render("●"))
			default:
				builder.WriteByte(' ')
			}
		}
	}
	return builder.String()
}

// scale maps a field coordinate onto one of cells cells, clamped.
func scale(value, extent float64, cells int) int {
	cell := int(value / extent * float64(cells))
	return min(max(cell, 0), cells-1)
}

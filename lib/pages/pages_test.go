// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/mxmxmx333/ft-transcendence/lib/clock"
	"github.com/mxmxmx333/ft-transcendence/lib/movement"
	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// typeText feeds text to page one rune at a time and fails if any key
// produced a result.
func typeText(t *testing.T, page Page, text string) {
	t.Helper()
	for _, event := range tui.Type(text) {
		if result := page.HandleKey(event); result != nil {
			t.Fatalf("typing %q produced %#v", event.Key.String(), result)
		}
	}
}

func press(page Page, name string) Result {
	return page.HandleKey(tui.Press(name))
}

func renderPlain(page Page) string {
	return ansi.Strip(page.Render(100, 30))
}

func TestHostSelection(t *testing.T) {
	t.Parallel()

	t.Run("local login", func(t *testing.T) {
		t.Parallel()
		page := NewHostSelection(tui.PlainStyles(), "localhost")
		result := press(page, "enter")
		if result != (HostSelected{Host: "localhost", Remote: false}) {
			t.Errorf("enter = %#v", result)
		}
	})

	t.Run("remote login", func(t *testing.T) {
		t.Parallel()
		page := NewHostSelection(tui.PlainStyles(), "pong.example")
		press(page, "down")
		if result := press(page, "enter"); result != (HostSelected{Host: "pong.example", Remote: true}) {
			t.Errorf("enter = %#v", result)
		}
	})

	t.Run("empty host rejected inline", func(t *testing.T) {
		t.Parallel()
		page := NewHostSelection(tui.PlainStyles(), "")
		if result := press(page, "enter"); result != nil {
			t.Errorf("enter with empty host = %#v", result)
		}
		if !strings.Contains(renderPlain(page), "Host can't be empty") {
			t.Error("error message not rendered")
		}
	})

	t.Run("host limited to printable ascii", func(t *testing.T) {
		t.Parallel()
		page := NewHostSelection(tui.PlainStyles(), "")
		typeText(t, page, strings.Repeat("a", 40)+" é")
		result := press(page, "enter")
		selected, ok := result.(HostSelected)
		if !ok || selected.Host != strings.Repeat("a", hostLimit) {
			t.Errorf("enter = %#v, want %d a's", result, hostLimit)
		}
	})

	t.Run("escape exits", func(t *testing.T) {
		t.Parallel()
		page := NewHostSelection(tui.PlainStyles(), "localhost")
		if result := press(page, "esc"); result != (Exit{}) {
			t.Errorf("esc = %#v", result)
		}
	})

	t.Run("waiting and error", func(t *testing.T) {
		t.Parallel()
		page := NewHostSelection(tui.PlainStyles(), "localhost")
		page.SetWaiting("https://auth.example/authorize")
		if !strings.Contains(renderPlain(page), "https://auth.example/authorize") {
			t.Error("redirect url not rendered")
		}
		page.SetError("Unable to open browser")
		rendered := renderPlain(page)
		if strings.Contains(rendered, "auth.example") || !strings.Contains(rendered, "Unable to open browser") {
			t.Errorf("after SetError:\n%s", rendered)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	page := NewLogin(tui.PlainStyles())
	typeText(t, page, "user@example.com")
	if result := press(page, "enter"); result != nil {
		t.Fatalf("enter on email = %#v, want focus move", result)
	}
	typeText(t, page, "hunter2")
	if strings.Contains(renderPlain(page), "hunter2") {
		t.Error("password rendered in clear text")
	}
	result := press(page, "enter")
	if result != (LoginSubmitted{Email: "user@example.com", Password: "hunter2"}) {
		t.Fatalf("enter on password = %#v", result)
	}

	page.SetError("Invalid credentials")
	if !strings.Contains(renderPlain(page), "Invalid credentials") {
		t.Error("error not rendered")
	}
	// The password was cleared; the email survives.
	if result := press(page, "enter"); result != nil {
		t.Errorf("enter with cleared password = %#v", result)
	}
	typeText(t, page, "hunter3")
	if result := press(page, "enter"); result != (LoginSubmitted{Email: "user@example.com", Password: "hunter3"}) {
		t.Errorf("retry = %#v", result)
	}
	if result := press(page, "esc"); result != (Exit{}) {
		t.Errorf("esc = %#v", result)
	}
}

func TestTwoFactor(t *testing.T) {
	t.Parallel()

	page := NewTwoFactor(tui.PlainStyles())
	typeText(t, page, "12ab3")
	if result := press(page, "enter"); result != nil {
		t.Fatalf("short code submitted: %#v", result)
	}
	if !strings.Contains(renderPlain(page), "Code must be 6 digits") {
		t.Error("length error not rendered")
	}
	page.SetError("")
	typeText(t, page, "1234567")
	if result := press(page, "enter"); result != (TwoFactorSubmitted{Code: "123456"}) {
		t.Errorf("enter = %#v", result)
	}
}

func TestNicknameEntry(t *testing.T) {
	t.Parallel()

	page := NewNicknameEntry(tui.PlainStyles())
	typeText(t, page, "   ")
	if result := press(page, "enter"); result != nil {
		t.Errorf("blank nickname submitted: %#v", result)
	}
	typeText(t, page, "paddle king")
	if result := press(page, "enter"); result != (NicknameSubmitted{Nickname: "paddle king"}) {
		t.Errorf("enter = %#v", result)
	}
	page.SetError("Nickname already taken")
	if !strings.Contains(renderPlain(page), "Nickname already taken") {
		t.Error("error not rendered")
	}
}

func TestGameModeSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keys []string
		want GameMode
	}{
		{nil, SinglePlayer},
		{[]string{"down"}, CreateRoom},
		{[]string{"down", "down"}, JoinRoom},
		{[]string{"down", "down", "down", "down"}, LocalMatch},
		{[]string{"tab", "tab", "tab", "tab"}, SinglePlayer},
		{[]string{"down", "up", "up"}, SinglePlayer},
	}
	for _, test := range tests {
		t.Run(strings.Join(test.keys, ","), func(t *testing.T) {
			t.Parallel()
			page := NewGameModeSelection(tui.PlainStyles())
			for _, name := range test.keys {
				if result := press(page, name); result != nil {
					t.Fatalf("%s = %#v", name, result)
				}
			}
			if result := press(page, "enter"); result != (ModeChosen{Mode: test.want}) {
				t.Errorf("enter = %#v, want %v", result, test.want)
			}
		})
	}
}

func TestGameModeRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode GameMode
		want socketio.CreateRoom
		ok   bool
	}{
		{SinglePlayer, socketio.CreateRoom{SinglePlayer: true, Remote: false}, true},
		{CreateRoom, socketio.CreateRoom{SinglePlayer: false, Remote: true}, true},
		{LocalMatch, socketio.CreateRoom{SinglePlayer: false, Remote: false}, true},
		{JoinRoom, socketio.CreateRoom{}, false},
	}
	for _, test := range tests {
		request, ok := test.mode.Request()
		if request != test.want || ok != test.ok {
			t.Errorf("%v.Request() = %+v, %v; want %+v, %v", test.mode, request, ok, test.want, test.ok)
		}
	}
}

func TestJoinRoomEntry(t *testing.T) {
	t.Parallel()

	page := NewJoinRoomEntry(tui.PlainStyles())
	typeText(t, page, "AB-12")
	if result := press(page, "enter"); result != nil {
		t.Fatalf("short room id submitted: %#v", result)
	}
	typeText(t, page, "34x")
	if result := press(page, "enter"); result != (JoinRoomSubmitted{RoomID: "AB1234"}) {
		t.Errorf("enter = %#v", result)
	}
	page.SetError("Room not found")
	if !strings.Contains(renderPlain(page), "Room not found") {
		t.Error("error not rendered")
	}
	if result := press(page, "esc"); result != (BackToMenu{}) {
		t.Errorf("esc = %#v", result)
	}
}

func TestGameLobby(t *testing.T) {
	t.Parallel()

	page := NewGameLobby(tui.PlainStyles(), "R1X2Y3")
	if !page.NeedsRedraw() {
		t.Error("new page should need a redraw")
	}
	if !strings.Contains(renderPlain(page), "R1X2Y3") {
		t.Error("room id not rendered")
	}
	if page.NeedsRedraw() {
		t.Error("Render did not clear the redraw flag")
	}
	if result := press(page, "x"); result != nil {
		t.Errorf("x = %#v", result)
	}
	if result := press(page, "esc"); result != (BackToMenu{}) {
		t.Errorf("esc = %#v", result)
	}
}

func testGameStart(isOwner bool) socketio.GameStart {
	return socketio.GameStart{
		BallX: 400, BallY: 300,
		Paddle1Y: 250, Paddle2Y: 250,
		Owner:   socketio.Player{ID: "1", Nickname: "alice"},
		Guest:   socketio.Player{ID: "2", Nickname: "bob"},
		IsOwner: isOwner,
		Success: true,
	}
}

func TestActiveGameDebouncedMovement(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	page := NewActiveGame(tui.PlainStyles(), fake, testGameStart(true), GameOptions{})

	if _, send := page.Tick(); send {
		t.Fatal("idle tick produced a move")
	}
	if result := press(page, "up"); result != nil {
		t.Fatalf("up = %#v; debounced keys only move on tick", result)
	}
	move, send := page.Tick()
	if !send || move != (socketio.PaddleMove{P1: socketio.DirectionUp}) {
		t.Fatalf("tick after up = %+v, %v", move, send)
	}
	if _, send := page.Tick(); send {
		t.Error("unchanged direction sent twice")
	}

	fake.Advance(movement.HoldThreshold)
	move, send = page.Tick()
	if !send || move != (socketio.PaddleMove{}) {
		t.Errorf("tick after hold threshold = %+v, %v; want stop", move, send)
	}
}

func TestActiveGameGuestSteersSlotTwo(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	page := NewActiveGame(tui.PlainStyles(), fake, testGameStart(false), GameOptions{})
	press(page, "s")
	move, send := page.Tick()
	if !send || move != (socketio.PaddleMove{P2: socketio.DirectionDown}) {
		t.Errorf("guest s = %+v, %v", move, send)
	}
}

func TestActiveGameKeyRelease(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	page := NewActiveGame(tui.PlainStyles(), fake, testGameStart(true), GameOptions{Local: true, KeyRelease: true})

	steps := []struct {
		event tui.KeyEvent
		want  Result
	}{
		{tui.Press("w"), PaddleMoved{Move: socketio.PaddleMove{P1: socketio.DirectionUp}}},
		{tui.KeyEvent{Key: tui.Press("w").Key, Phase: tui.KeyRepeat}, nil},
		{tui.Press("down"), PaddleMoved{Move: socketio.PaddleMove{P1: socketio.DirectionUp, P2: socketio.DirectionDown}}},
		{tui.Release("s"), nil},
		{tui.Release("w"), PaddleMoved{Move: socketio.PaddleMove{P2: socketio.DirectionDown}}},
		{tui.Release("down"), PaddleMoved{Move: socketio.PaddleMove{}}},
	}
	for index, step := range steps {
		if got := page.HandleKey(step.event); got != step.want {
			t.Errorf("step %d (%s %v) = %#v, want %#v", index, step.event.Key.String(), step.event.Phase, got, step.want)
		}
	}
}

func TestActiveGamePauseAndLeave(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	page := NewActiveGame(tui.PlainStyles(), fake, testGameStart(true), GameOptions{})
	if result := press(page, "p"); result != (PauseRequested{Paused: true}) {
		t.Errorf("p = %#v", result)
	}
	page.SetPaused(true)
	if !strings.Contains(renderPlain(page), "PAUSED") {
		t.Error("pause overlay not rendered")
	}
	if result := press(page, " "); result != (PauseRequested{Paused: false}) {
		t.Errorf("space while paused = %#v", result)
	}
	if result := press(page, "esc"); result != (BackToMenu{}) {
		t.Errorf("esc = %#v", result)
	}
}

func TestActiveGameRenderAndFinish(t *testing.T) {
	t.Parallel()

	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	page := NewActiveGame(tui.PlainStyles(), fake, testGameStart(false), GameOptions{})
	page.Render(100, 30)

	page.Apply(socketio.GameState{BallX: 799, BallY: 599, Paddle1Y: 0, Paddle2Y: 500, OwnerScore: 2, GuestScore: 3})
	if !page.NeedsRedraw() {
		t.Error("Apply did not request a redraw")
	}
	rendered := renderPlain(page)
	for _, want := range []string{"alice", "bob", " 2 ", " 3 ", "●", "█"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("render is missing %q:\n%s", want, rendered)
		}
	}
	if small := ansi.Strip(page.Render(10, 5)); !strings.Contains(small, "too small") {
		t.Errorf("tiny terminal render:\n%s", small)
	}

	fake.Advance(95 * time.Second)
	result := page.Finish(socketio.GameOver{Winner: "bob", FinalScore: socketio.FinalScore{Owner: 2, Guest: 5}})
	if !result.Won {
		t.Error("guest with the higher score did not win")
	}
	if result.Duration != 95*time.Second {
		t.Errorf("Duration = %v", result.Duration)
	}
	if result.Headline() != "You won" {
		t.Errorf("Headline = %q", result.Headline())
	}
}

func TestFieldSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		columns, rows         int
		wantColumns, wantRows int
	}{
		{200, 20, 51, 20},  // height-bound
		{50, 100, 50, 19},  // width-bound
		{0, 0, 0, 0},
	}
	for _, test := range tests {
		columns, rows := fieldSize(test.columns, test.rows)
		if columns != test.wantColumns || rows != test.wantRows {
			t.Errorf("fieldSize(%d, %d) = %d, %d; want %d, %d",
				test.columns, test.rows, columns, rows, test.wantColumns, test.wantRows)
		}
	}
}

func TestGameOver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result GameResult
		want   string
	}{
		{"won", GameResult{Won: true}, "You won"},
		{"lost", GameResult{Won: false}, "You lost"},
		{"local with winner", GameResult{Local: true, Winner: "alice"}, "alice won"},
		{"local without winner", GameResult{Local: true}, "Game over"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			test.result.Owner = socketio.Player{Nickname: "alice"}
			test.result.Guest = socketio.Player{Nickname: "bob"}
			test.result.Duration = 65 * time.Second
			page := NewGameOver(tui.PlainStyles(), test.result)
			rendered := renderPlain(page)
			for _, want := range []string{test.want, "alice", "bob", "Duration"} {
				if !strings.Contains(rendered, want) {
					t.Errorf("render is missing %q:\n%s", want, rendered)
				}
			}
			if result := press(page, "enter"); result != (BackToMenu{}) {
				t.Errorf("enter = %#v", result)
			}
		})
	}
}

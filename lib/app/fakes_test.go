// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mxmxmx333/ft-transcendence/lib/auth"
	"github.com/mxmxmx333/ft-transcendence/lib/clock"
	"github.com/mxmxmx333/ft-transcendence/lib/config"
	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
	"github.com/mxmxmx333/ft-transcendence/lib/testutil"
	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

const testTimeout = 5 * time.Second

// fakeConnection is a scripted game connection. Events pushed with
// push are returned by WaitForEvent in order.
type fakeConnection struct {
	events    chan socketMessage
	closed    chan struct{}
	closeOnce sync.Once
	moved     chan socketio.PaddleMove

	roomID    string
	createErr error
	joinErr   error
	sendErr   error

	mutex   sync.Mutex
	created []socketio.CreateRoom
	joined  []string
	moves   []socketio.PaddleMove
	pauses  []bool
	leaves  int
}

func newFakeConnection() *fakeConnection {
	return &fakeConnection{
		events: make(chan socketMessage, 8),
		closed: make(chan struct{}),
		moved:  make(chan socketio.PaddleMove, 16),
		roomID: "R1",
	}
}

func (conn *fakeConnection) CreateRoom(_ context.Context, request socketio.CreateRoom) (string, error) {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.created = append(conn.created, request)
	if conn.createErr != nil {
		return "", conn.createErr
	}
	return conn.roomID, nil
}

func (conn *fakeConnection) JoinRoom(_ context.Context, roomID string) error {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.joined = append(conn.joined, roomID)
	return conn.joinErr
}

func (conn *fakeConnection) PaddleMove(move socketio.PaddleMove) error {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	if conn.sendErr != nil {
		return conn.sendErr
	}
	conn.moves = append(conn.moves, move)
	conn.moved <- move
	return nil
}

func (conn *fakeConnection) PauseGame(paused bool) error {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	if conn.sendErr != nil {
		return conn.sendErr
	}
	conn.pauses = append(conn.pauses, paused)
	return nil
}

func (conn *fakeConnection) LeaveRoom() error {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	conn.leaves++
	return conn.sendErr
}

func (conn *fakeConnection) WaitForEvent() (socketio.Event, error) {
	select {
	case message := <-conn.events:
		return message.event, message.err
	case <-conn.closed:
		return nil, socketio.ErrClosed
	}
}

func (conn *fakeConnection) Close() error {
	conn.closeOnce.Do(func() { close(conn.closed) })
	return nil
}

func (conn *fakeConnection) push(event socketio.Event) {
	conn.events <- socketMessage{event: event}
}

func (conn *fakeConnection) isClosed() bool {
	select {
	case <-conn.closed:
		return true
	default:
		return false
	}
}

func (conn *fakeConnection) recordedMoves() []socketio.PaddleMove {
	conn.mutex.Lock()
	defer conn.mutex.Unlock()
	return append([]socketio.PaddleMove(nil), conn.moves...)
}

// fakeAuthenticator answers every call with the configured function,
// or with a fixed success when it is nil.
type fakeAuthenticator struct {
	login     func(email, password string) (*auth.LoginResponse, error)
	twoFactor func(token, code string) (string, error)
	nickname  func(token, nickname string) (string, error)
	redirect  func(port int) (string, error)

	mutex    sync.Mutex
	baseURLs []string
	calls    []string
}

func (authenticator *fakeAuthenticator) record(call string) {
	authenticator.mutex.Lock()
	defer authenticator.mutex.Unlock()
	authenticator.calls = append(authenticator.calls, call)
}

func (authenticator *fakeAuthenticator) recordedCalls() []string {
	authenticator.mutex.Lock()
	defer authenticator.mutex.Unlock()
	return append([]string(nil), authenticator.calls...)
}

func (authenticator *fakeAuthenticator) Login(_ context.Context, email, password string) (*auth.LoginResponse, error) {
	authenticator.record("login " + email + " " + password)
	if authenticator.login != nil {
		return authenticator.login(email, password)
	}
	return &auth.LoginResponse{Success: true, Token: "session"}, nil
}

func (authenticator *fakeAuthenticator) LoginTwoFactor(_ context.Context, token, code string) (string, error) {
	authenticator.record("2fa " + token + " " + code)
	if authenticator.twoFactor != nil {
		return authenticator.twoFactor(token, code)
	}
	return "verified", nil
}

func (authenticator *fakeAuthenticator) SetNickname(_ context.Context, token, nickname string) (string, error) {
	authenticator.record("nickname " + token + " " + nickname)
	if authenticator.nickname != nil {
		return authenticator.nickname(token, nickname)
	}
	return "named", nil
}

func (authenticator *fakeAuthenticator) RemoteRedirect(_ context.Context, port int) (string, error) {
	authenticator.record("redirect")
	if authenticator.redirect != nil {
		return authenticator.redirect(port)
	}
	return "https://auth.example/authorize", nil
}

// fakeCallback is a callback listener whose deliver function is handed
// to the test through serving.
type fakeCallback struct {
	serving   chan func(auth.CallbackResult)
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeCallback() *fakeCallback {
	return &fakeCallback{
		serving: make(chan func(auth.CallbackResult), 1),
		closed:  make(chan struct{}),
	}
}

func (callback *fakeCallback) Port() int { return 41234 }

func (callback *fakeCallback) Serve(deliver func(auth.CallbackResult)) error {
	callback.serving <- deliver
	<-callback.closed
	return nil
}

func (callback *fakeCallback) Close() error {
	callback.closeOnce.Do(func() { close(callback.closed) })
	return nil
}

func (callback *fakeCallback) isClosed() bool {
	select {
	case <-callback.closed:
		return true
	default:
		return false
	}
}

type dialCall struct {
	endpoint, token string
}

// harness is an App wired to fakes. Tests that do not call Run drive
// the handlers directly from the test goroutine.
type harness struct {
	app      *App
	config   *config.Config
	terminal *tui.FakeTerminal
	clock    *clock.FakeClock
	status   *tui.StatusLine
	auth     *fakeAuthenticator
	callback *fakeCallback

	// conn is returned by the next dial; dialErr fails it instead.
	conn    *fakeConnection
	dialErr error
	dialed  chan dialCall

	browserErr error
	browsed    chan string
}

type harnessOptions struct {
	keyRelease bool
	configure  func(*config.Config)
}

func newHarness(t *testing.T, options harnessOptions) *harness {
	t.Helper()
	cfg := config.Default()
	if options.configure != nil {
		options.configure(cfg)
	}
	h := &harness{
		config:   cfg,
		terminal: tui.NewFakeTerminal(options.keyRelease),
		clock:    clock.Fake(time.Now()),
		status:   &tui.StatusLine{},
		auth:     &fakeAuthenticator{},
		callback: newFakeCallback(),
		conn:     newFakeConnection(),
		dialed:   make(chan dialCall, 8),
		browsed:  make(chan string, 8),
	}
	logger := slog.New(tui.NewLogHandler(slog.LevelInfo, h.status))
	h.app = New(Options{
		Config:   cfg,
		Terminal: h.terminal,
		Status:   h.status,
		Clock:    h.clock,
		Logger:   logger,
		Dial: func(_ context.Context, endpoint, token string) (Connection, error) {
			h.dialed <- dialCall{endpoint: endpoint, token: token}
			if h.dialErr != nil {
				return nil, h.dialErr
			}
			return h.conn, nil
		},
		NewAuthenticator: func(baseURL string) Authenticator {
			h.auth.mutex.Lock()
			h.auth.baseURLs = append(h.auth.baseURLs, baseURL)
			h.auth.mutex.Unlock()
			return h.auth
		},
		ListenCallback: func(context.Context) (CallbackServer, error) {
			return h.callback, nil
		},
		OpenBrowser: func(url string) error {
			h.browsed <- url
			return h.browserErr
		},
	})
	return h
}

// result waits for the next background task result.
func (h *harness) result(t *testing.T) taskResult {
	t.Helper()
	return testutil.RequireReceive(t, h.app.results, testTimeout, "waiting for task result")
}

// loggedIn puts the app on the mode selection as if login succeeded.
func (h *harness) loggedIn() {
	h.app.handleResult(loginSucceeded{host: "pong.example", token: "session"})
}

// inGame holds h.conn and starts a game on it.
func (h *harness) inGame(start socketio.GameStart) {
	h.loggedIn()
	h.app.handleResult(roomJoined{conn: h.conn})
	h.app.handleSocket(socketMessage{conn: h.conn, event: start})
}

func testGameStart() socketio.GameStart {
	return socketio.GameStart{
		BallX: 400, BallY: 300,
		Paddle1Y: 250, Paddle2Y: 250,
		Owner:   socketio.Player{ID: "1", Nickname: "alice"},
		Guest:   socketio.Player{ID: "2", Nickname: "bob"},
		IsOwner: true,
		Success: true,
	}
}

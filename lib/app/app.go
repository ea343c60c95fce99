// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package app drives the client: one control loop owns the current
// page, the session identity and the single network resource, and
// waits on four sources at a time. They are the game connection's next
// event, terminal input, results of background tasks and a 60 Hz
// ticker. Network and authentication calls never run on the loop;
// they are spawned as tasks that report back through a bounded
// channel, and results that no longer match the current page are
// dropped.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"golang.org/x/time/rate"

	"github.com/mxmxmx333/ft-transcendence/lib/auth"
	"github.com/mxmxmx333/ft-transcendence/lib/clock"
	"github.com/mxmxmx333/ft-transcendence/lib/config"
	"github.com/mxmxmx333/ft-transcendence/lib/pages"
	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
	"github.com/mxmxmx333/ft-transcendence/lib/tui"
)

// TickRate is how often the loop flushes paddle movement and redraws.
const TickRate = 60

const tickInterval = time.Second / TickRate

// taskResultBuffer is the depth of the background task result channel.
// Tasks block on a full channel.
const taskResultBuffer = 8

// Paddle sends are limited to one per tick with a small burst, so a key
// mash cannot flood the server. Moves over the limit are kept and
// flushed on a later tick.
const paddleSendBurst = 3

// Terminal size assumed until the first resize event.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

var (
	// ErrRender is returned by Run when a frame cannot be drawn.
	ErrRender = errors.New("unable to render frame on screen")

	// ErrTerminal is returned by Run when terminal input fails.
	ErrTerminal = errors.New("terminal input failed")
)

// Connection is a Ready game connection. *socketio.Client implements
// it.
type Connection interface {
	CreateRoom(ctx context.Context, request socketio.CreateRoom) (string, error)
	JoinRoom(ctx context.Context, roomID string) error
	PaddleMove(move socketio.PaddleMove) error
	PauseGame(paused bool) error
	LeaveRoom() error
	WaitForEvent() (socketio.Event, error)
	Close() error
}

// Authenticator is the authentication API. *auth.Client implements it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.LoginResponse, error)
	LoginTwoFactor(ctx context.Context, token, code string) (string, error)
	SetNickname(ctx context.Context, token, nickname string) (string, error)
	RemoteRedirect(ctx context.Context, callbackPort int) (string, error)
}

// CallbackServer is the local OAuth callback responder.
// *auth.CallbackListener implements it.
type CallbackServer interface {
	Port() int
	Serve(deliver func(auth.CallbackResult)) error
	Close() error
}

// Options configures an App. Config and Terminal are required; the
// remaining fields default to the production implementations.
type Options struct {
	Config   *config.Config
	Terminal tui.Terminal

	// Styles renders every page. Default: tui.PlainStyles.
	Styles *tui.Styles

	// Status, when set, is drawn as the last line of every frame.
	Status *tui.StatusLine

	// Clock drives the ticker, the debouncer and the send limiter.
	// Default: clock.Real.
	Clock clock.Clock

	// Logger receives task outcomes and connection loss. Nil discards.
	Logger *slog.Logger

	// Dial opens a game connection. Default: socketio.Dial.
	Dial func(ctx context.Context, endpoint, token string) (Connection, error)

	// NewAuthenticator returns the API client for baseURL.
	// Default: auth.NewClient.
	NewAuthenticator func(baseURL string) Authenticator

	// ListenCallback binds the OAuth callback responder.
	// Default: auth.ListenCallback.
	ListenCallback func(ctx context.Context) (CallbackServer, error)

	// OpenBrowser shows the OAuth authorization page.
	// Default: browser.OpenURL.
	OpenBrowser func(url string) error
}

// App is the client's control loop. All fields below the
// configuration are owned by the goroutine running Run.
type App struct {
	config     *config.Config
	terminal   tui.Terminal
	styles     *tui.Styles
	status     *tui.StatusLine
	clock      clock.Clock
	logger     *slog.Logger
	keyRelease bool

	dial             func(ctx context.Context, endpoint, token string) (Connection, error)
	newAuthenticator func(baseURL string) Authenticator
	listenCallback   func(ctx context.Context) (CallbackServer, error)
	openBrowser      func(url string) error

	// ctx parents every task. Run replaces it with a context that is
	// cancelled when Run returns.
	ctx     context.Context
	done    chan struct{}
	results chan taskResult
	tasks   sync.WaitGroup

	// received carries the game connection's events. At most one read
	// per connection is in flight; reading is the connection it is for.
	received chan socketMessage
	reading  Connection

	page  pages.Page
	slot  slot
	host  string
	token string
	mode  pages.GameMode

	limiter     *rate.Limiter
	pendingMove *socketio.PaddleMove

	width, height int
	exiting       bool
}

// New returns an App on the host selection page.
func New(options Options) *App {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	styles := options.Styles
	if styles == nil {
		styles = tui.PlainStyles()
	}
	appClock := options.Clock
	if appClock == nil {
		appClock = clock.Real()
	}
	cfg := options.Config

	app := &App{
		config:   cfg,
		terminal: options.Terminal,
		styles:   styles,
		status:   options.Status,
		clock:    appClock,
		logger:   logger,

		dial:             options.Dial,
		newAuthenticator: options.NewAuthenticator,
		listenCallback:   options.ListenCallback,
		openBrowser:      options.OpenBrowser,

		ctx:      context.Background(),
		done:     make(chan struct{}),
		results:  make(chan taskResult, taskResultBuffer),
		received: make(chan socketMessage, 1),

		page:    pages.NewHostSelection(styles, cfg.Server.Host),
		limiter: rate.NewLimiter(rate.Every(tickInterval), paddleSendBurst),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	if cfg.Input.KeyboardMode == config.KeyboardRelease {
		if options.Terminal.SupportsKeyRelease() {
			app.keyRelease = true
		} else {
			logger.Warn("terminal does not report key releases, using debounced input")
		}
	}

	if app.dial == nil {
		app.dial = func(ctx context.Context, endpoint, token string) (Connection, error) {
			client, err := socketio.Dial(ctx, endpoint, token, socketio.DialOptions{
				InsecureSkipVerify: cfg.Server.InsecureSkipVerify,
				Logger:             logger,
			})
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	}
	if app.newAuthenticator == nil {
		app.newAuthenticator = func(baseURL string) Authenticator {
			return auth.NewClient(baseURL, auth.Options{
				InsecureSkipVerify: cfg.Server.InsecureSkipVerify,
				Logger:             logger,
			})
		}
	}
	if app.listenCallback == nil {
		app.listenCallback = func(ctx context.Context) (CallbackServer, error) {
			listener, err := auth.ListenCallback(ctx, logger)
			if err != nil {
				return nil, err
			}
			return listener, nil
		}
	}
	if app.openBrowser == nil {
		app.openBrowser = browser.OpenURL
	}
	return app
}

// Run draws the first frame and loops until the player exits, ctx is
// cancelled, or a fatal terminal error occurs. The held connection or
// listener is closed on return. Run must be called at most once.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	app.ctx = ctx

	ticker := app.clock.NewTicker(tickInterval)
	defer ticker.Stop()
	defer func() {
		cancel()
		close(app.done)
		app.dropSlot()
		app.discardResults()
		// Tasks still running deliver into the buffer or discard on
		// done; sweep the buffer once they have all finished.
		go func() {
			app.tasks.Wait()
			app.discardResults()
		}()
	}()

	if err := app.render(true); err != nil {
		return err
	}

	events := app.terminal.Events()
	for !app.exiting {
		app.armReceive()

		var err error
		select {
		case <-ctx.Done():
			return nil

		case message := <-app.received:
			app.handleSocket(message)
			err = app.render(false)

		case event, ok := <-events:
			if !ok {
				if terminalErr := app.terminal.Err(); terminalErr != nil {
					return fmt.Errorf("%w: %w", ErrTerminal, terminalErr)
				}
				return fmt.Errorf("%w: input stream closed", ErrTerminal)
			}
			err = app.handleInput(event)

		case result := <-app.results:
			app.handleResult(result)
			err = app.render(false)

		case <-ticker.C:
			app.handleTick()
			err = app.render(true)
		}
		if err != nil {
			return err
		}
	}
	app.logger.Debug("exit requested")
	return nil
}

// handleInput routes one terminal event. Ctrl+C exits from any page.
func (app *App) handleInput(event tui.Event) error {
	switch event := event.(type) {
	case tui.ResizeEvent:
		app.width, app.height = event.Width, event.Height
		return app.render(true)
	case tui.KeyEvent:
		if event.Phase != tui.KeyRelease && event.Key.Type == tea.KeyCtrlC {
			app.exiting = true
			return nil
		}
		app.handlePageResult(app.page.HandleKey(event))
		if app.exiting {
			return nil
		}
		return app.render(false)
	}
	return nil
}

// render draws the page and the status line when forced or when the
// page has changes.
func (app *App) render(force bool) error {
	if !force && !app.page.NeedsRedraw() {
		return nil
	}
	frame := app.page.Render(app.width, max(app.height-1, 1)) + "\n" + app.statusLine()
	if err := app.terminal.Draw(frame); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func (app *App) statusLine() string {
	if app.status == nil {
		return ""
	}
	record, ok := app.status.Current(app.clock.Now())
	if !ok {
		return ""
	}
	style := app.styles.Faint
	switch {
	case record.Level >= slog.LevelError:
		style = app.styles.Error
	case record.Level >= slog.LevelWarn:
		style = app.styles.Warning
	}
	return style.Render(tui.FitLine(record.Summary, app.width))
}

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/mxmxmx333/ft-transcendence/lib/auth"
	"github.com/mxmxmx333/ft-transcendence/lib/pages"
	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
)

// taskResult is the single report of a background task. discard
// releases what the result carries when nobody will consume it.
type taskResult interface {
	discard()
}

type (
	loginSucceeded struct {
		host, token string
	}
	loginFailed struct {
		err error
	}
	twoFactorRequired struct {
		host, token string
	}
	twoFactorSucceeded struct {
		token string
	}
	twoFactorFailed struct {
		err error
	}
	nicknameFailed struct {
		err error
	}
	remoteRedirect struct {
		listener CallbackServer
		url      string
	}
	remoteCallback struct {
		listener CallbackServer
		result   auth.CallbackResult
	}
	remoteFailed struct {
		listener CallbackServer
		err      error
	}
	roomCreated struct {
		conn   Connection
		roomID string
	}
	roomJoined struct {
		conn     Connection
		byRoomID bool
	}
	roomFailed struct {
		err error
	}
)

func (loginSucceeded) discard()     {}
func (loginFailed) discard()        {}
func (twoFactorRequired) discard()  {}
func (twoFactorSucceeded) discard() {}
func (twoFactorFailed) discard()    {}
func (nicknameFailed) discard()     {}
func (remoteRedirect) discard()     {}
func (remoteCallback) discard()     {}
func (remoteFailed) discard()       {}
func (result roomCreated) discard() { result.conn.Close() }
func (result roomJoined) discard()  { result.conn.Close() }
func (roomFailed) discard()         {}

// spawn runs task on its own goroutine under the request timeout and
// delivers its result.
func (app *App) spawn(name string, task func(ctx context.Context) taskResult) {
	ctx, cancel := context.WithTimeout(app.ctx, app.config.Network.RequestTimeout)
	app.logger.Debug("task started", "task", name)
	app.tasks.Go(func() {
		defer cancel()
		app.deliver(task(ctx))
	})
}

// deliver hands result to the loop, or discards it once Run has
// returned.
func (app *App) deliver(result taskResult) {
	select {
	case app.results <- result:
	case <-app.done:
		result.discard()
	}
}

// discardResults empties the result buffer without applying anything.
func (app *App) discardResults() {
	for {
		select {
		case result := <-app.results:
			result.discard()
		default:
			return
		}
	}
}

func (app *App) startLogin(email, password string) {
	host := app.host
	authenticator := app.newAuthenticator(app.config.APIBaseURL(host))
	logger := app.logger
	app.spawn("login", func(ctx context.Context) taskResult {
		response, err := authenticator.Login(ctx, email, password)
		if err != nil {
			logger.Warn("login failed", "host", host, "error", err)
			return loginFailed{err: err}
		}
		if response.TwoFactorRequired() {
			logger.Info("login needs a second factor", "host", host)
			return twoFactorRequired{host: host, token: response.Token}
		}
		logger.Info("logged in", "host", host, "nickname", response.User.Nickname)
		return loginSucceeded{host: host, token: response.Token}
	})
}

func (app *App) startTwoFactor(code string) {
	token := app.token
	authenticator := app.newAuthenticator(app.config.APIBaseURL(app.host))
	logger := app.logger
	app.spawn("login_2fa", func(ctx context.Context) taskResult {
		sessionToken, err := authenticator.LoginTwoFactor(ctx, token, code)
		if err != nil {
			logger.Warn("two-factor login failed", "error", err)
			return twoFactorFailed{err: err}
		}
		logger.Info("two-factor login succeeded")
		return twoFactorSucceeded{token: sessionToken}
	})
}

func (app *App) startSetNickname(nickname string) {
	host, token := app.host, app.token
	authenticator := app.newAuthenticator(app.config.APIBaseURL(host))
	logger := app.logger
	app.spawn("set_nickname", func(ctx context.Context) taskResult {
		sessionToken, err := authenticator.SetNickname(ctx, token, nickname)
		if err != nil {
			logger.Warn("setting nickname failed", "nickname", nickname, "error", err)
			return nicknameFailed{err: err}
		}
		logger.Info("nickname set", "nickname", nickname)
		return loginSucceeded{host: host, token: sessionToken}
	})
}

// startRemoteLogin binds the callback listener on the loop, holds it
// in the slot, and asks the server for the authorization URL. The
// listener's callback arrives as a task result like any other.
func (app *App) startRemoteLogin() {
	listener, err := app.listenCallback(app.ctx)
	if err != nil {
		app.logger.Warn("binding oauth callback listener", "error", err)
		if page, ok := app.page.(*pages.HostSelection); ok {
			page.SetError("Unable to start local login server")
		}
		return
	}
	app.setSlot(listenerSlot{listener: listener})

	app.tasks.Go(func() {
		if err := listener.Serve(func(result auth.CallbackResult) {
			app.deliver(remoteCallback{listener: listener, result: result})
		}); err != nil {
			app.deliver(remoteFailed{listener: listener, err: err})
		}
	})

	port := listener.Port()
	authenticator := app.newAuthenticator(app.config.APIBaseURL(app.host))
	logger := app.logger
	app.spawn("remote_redirect", func(ctx context.Context) taskResult {
		url, err := authenticator.RemoteRedirect(ctx, port)
		if err != nil {
			logger.Warn("fetching oauth redirect", "error", err)
			return remoteFailed{listener: listener, err: err}
		}
		return remoteRedirect{listener: listener, url: url}
	})
}

// startRoom dials a game connection and creates a room with request.
// A remote room is announced as created so the lobby can show its id;
// the others start at once.
func (app *App) startRoom(request socketio.CreateRoom) {
	host, token := app.host, app.token
	endpoint := app.config.SocketEndpoint(host, token)
	dial := app.dial
	logger := app.logger
	app.spawn("create_room", func(ctx context.Context) taskResult {
		conn, err := dial(ctx, endpoint, token)
		if err != nil {
			logger.Warn("connecting to game server", "host", host, "error", err)
			return roomFailed{err: err}
		}
		roomID, err := conn.CreateRoom(ctx, request)
		if err != nil {
			conn.Close()
			logger.Warn("creating room", "error", err)
			return roomFailed{err: err}
		}
		logger.Info("room created", "room", roomID, "single_player", request.SinglePlayer, "remote", request.Remote)
		if request.Remote {
			return roomCreated{conn: conn, roomID: roomID}
		}
		return roomJoined{conn: conn}
	})
}

func (app *App) startJoinRoom(roomID string) {
	host, token := app.host, app.token
	endpoint := app.config.SocketEndpoint(host, token)
	dial := app.dial
	logger := app.logger
	app.spawn("join_room", func(ctx context.Context) taskResult {
		conn, err := dial(ctx, endpoint, token)
		if err != nil {
			logger.Warn("connecting to game server", "host", host, "error", err)
			return roomFailed{err: err}
		}
		if err := conn.JoinRoom(ctx, roomID); err != nil {
			conn.Close()
			logger.Warn("joining room", "room", roomID, "error", err)
			return roomFailed{err: err}
		}
		logger.Info("room joined", "room", roomID)
		return roomJoined{conn: conn, byRoomID: true}
	})
}

// describe turns a task error into the message shown on the page.
func describe(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "The server did not answer in time"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrInvalidCode):
		return "Invalid 2FA code"
	case errors.Is(err, auth.ErrConnection), errors.Is(err, socketio.ErrConnection), errors.Is(err, socketio.ErrURL):
		return "Unable to reach the server"
	case errors.Is(err, socketio.ErrInvalidCredentials):
		return "Session rejected, please log in again"
	case errors.Is(err, socketio.ErrJoinRoom):
		return "Unable to join room"
	case errors.Is(err, socketio.ErrCreateRoom):
		return "Unable to create room"
	}
	return capitalize(err.Error())
}

func capitalize(message string) string {
	first, size := utf8.DecodeRuneInString(message)
	if first == utf8.RuneError {
		return message
	}
	return string(unicode.ToUpper(first)) + message[size:]
}

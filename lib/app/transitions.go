// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/mxmxmx333/ft-transcendence/lib/pages"
	"github.com/mxmxmx333/ft-transcendence/lib/socketio"
)

// handlePageResult applies what a key press on the current page asked
// for. Network work is spawned; everything else happens here.
func (app *App) handlePageResult(result pages.Result) {
	switch result := result.(type) {
	case nil:
	case pages.Exit:
		app.exiting = true
	case pages.BackToMenu:
		app.abortGame()
	case pages.HostSelected:
		app.dropSlot()
		app.host = result.Host
		if result.Remote {
			app.startRemoteLogin()
			return
		}
		app.page = pages.NewLogin(app.styles)
	case pages.LoginSubmitted:
		app.startLogin(result.Email, result.Password)
	case pages.TwoFactorSubmitted:
		app.startTwoFactor(result.Code)
	case pages.NicknameSubmitted:
		app.startSetNickname(result.Nickname)
	case pages.ModeChosen:
		app.mode = result.Mode
		request, ok := result.Mode.Request()
		if !ok {
			app.page = pages.NewJoinRoomEntry(app.styles)
			return
		}
		app.startRoom(request)
	case pages.JoinRoomSubmitted:
		app.startJoinRoom(result.RoomID)
	case pages.PaddleMoved:
		app.sendPaddleMove(result.Move)
	case pages.PauseRequested:
		conn := app.gameConnection()
		if conn == nil {
			return
		}
		if err := conn.PauseGame(result.Paused); err != nil {
			app.logger.Warn("sending pause", "error", err)
			app.abortGame()
		}
	}
}

// handleResult applies a background task result. Results for a page
// that is no longer shown, or for a listener that is no longer held,
// are dropped.
func (app *App) handleResult(result taskResult) {
	switch result := result.(type) {
	case loginSucceeded:
		app.host, app.token = result.host, result.token
		app.page = pages.NewGameModeSelection(app.styles)
	case twoFactorRequired:
		app.host, app.token = result.host, result.token
		app.page = pages.NewTwoFactor(app.styles)
	case twoFactorSucceeded:
		app.token = result.token
		app.page = pages.NewGameModeSelection(app.styles)

	case loginFailed:
		if page, ok := app.page.(*pages.Login); ok {
			page.SetError(describe(result.err))
		}
	case twoFactorFailed:
		if page, ok := app.page.(*pages.TwoFactor); ok {
			page.SetError(describe(result.err))
		}
	case nicknameFailed:
		if page, ok := app.page.(*pages.NicknameEntry); ok {
			page.SetError(describe(result.err))
		}

	case remoteRedirect:
		page, ok := app.page.(*pages.HostSelection)
		if !ok || result.listener != app.callbackListener() {
			return
		}
		if err := app.openBrowser(result.url); err != nil {
			app.logger.Warn("opening browser", "url", result.url, "error", err)
			page.SetError("Unable to open web browser")
			app.dropSlot()
			return
		}
		page.SetWaiting(result.url)
	case remoteCallback:
		page, ok := app.page.(*pages.HostSelection)
		if !ok || result.listener != app.callbackListener() {
			return
		}
		app.dropSlot()
		if result.result.Err != nil {
			page.SetError(describe(result.result.Err))
			return
		}
		app.token = result.result.Token
		app.logger.Info("remote login complete", "nickname_required", result.result.NicknameRequired)
		if result.result.NicknameRequired {
			app.page = pages.NewNicknameEntry(app.styles)
		} else {
			app.page = pages.NewGameModeSelection(app.styles)
		}
	case remoteFailed:
		page, ok := app.page.(*pages.HostSelection)
		if !ok || result.listener != app.callbackListener() {
			return
		}
		page.SetError(describe(result.err))
		app.dropSlot()

	case roomCreated:
		if _, ok := app.page.(*pages.GameModeSelection); !ok {
			app.logger.Debug("dropping room created off the menu", "room", result.roomID)
			result.discard()
			return
		}
		app.setSlot(gameSlot{conn: result.conn})
		app.page = pages.NewGameLobby(app.styles, result.roomID)
	case roomJoined:
		// A join by id belongs to the join page and a started room to
		// the menu; either is stale anywhere else or next to a held
		// connection.
		_, expected := app.page.(*pages.GameModeSelection)
		if result.byRoomID {
			_, expected = app.page.(*pages.JoinRoomEntry)
		}
		if !expected || app.gameConnection() != nil {
			app.logger.Debug("dropping stale room joined", "page", fmt.Sprintf("%T", app.page))
			result.discard()
			return
		}
		app.setSlot(gameSlot{conn: result.conn})
	case roomFailed:
		switch page := app.page.(type) {
		case *pages.JoinRoomEntry:
			page.SetError(describe(result.err))
		case *pages.GameModeSelection:
			page.SetError(describe(result.err))
		}
	}
}

// handleSocket applies one event from the held connection. Messages
// from a connection that is no longer held are dropped; a read error
// drops the connection and leaves the page alone.
func (app *App) handleSocket(message socketMessage) {
	if message.conn != app.gameConnection() {
		return
	}
	app.reading = nil
	if message.err != nil {
		app.logger.Warn("game connection lost", "error", message.err)
		app.dropSlot()
		return
	}

	switch event := message.event.(type) {
	case socketio.GameStart:
		app.pendingMove = nil
		app.page = pages.NewActiveGame(app.styles, app.clock, event, pages.GameOptions{
			Local:      app.mode == pages.LocalMatch,
			KeyRelease: app.keyRelease,
		})
	case socketio.GameState:
		if game, ok := app.page.(*pages.ActiveGame); ok {
			game.Apply(event)
		}
	case socketio.GamePauseState:
		if game, ok := app.page.(*pages.ActiveGame); ok {
			game.SetPaused(event.Paused)
		}
	case socketio.GameOver:
		if game, ok := app.page.(*pages.ActiveGame); ok {
			app.page = pages.NewGameOver(app.styles, game.Finish(event))
		}
	case socketio.GameAborted:
		app.logger.Info("game aborted by server", "message", event.Message)
		app.abortGame()
	}
}

// handleTick flushes paddle movement on the game page. Every send goes
// through the limiter; a move it holds back is retried here.
func (app *App) handleTick() {
	game, ok := app.page.(*pages.ActiveGame)
	if !ok || app.gameConnection() == nil {
		return
	}
	if !app.keyRelease {
		if move, changed := game.Tick(); changed {
			app.sendPaddleMove(move)
			return
		}
	}
	if app.pendingMove != nil {
		app.sendPaddleMove(*app.pendingMove)
	}
}

// sendPaddleMove sends move now, or keeps it for a later tick when the
// send limiter is exhausted. A newer move replaces a kept one.
func (app *App) sendPaddleMove(move socketio.PaddleMove) {
	conn := app.gameConnection()
	if conn == nil {
		return
	}
	if !app.limiter.AllowN(app.clock.Now(), 1) {
		app.pendingMove = &move
		return
	}
	app.pendingMove = nil
	if err := conn.PaddleMove(move); err != nil {
		app.logger.Warn("sending paddle move", "error", err)
		app.abortGame()
	}
}

// abortGame leaves the room, closes the connection and returns to the
// mode selection.
func (app *App) abortGame() {
	if conn := app.gameConnection(); conn != nil {
		if err := conn.LeaveRoom(); err != nil {
			app.logger.Debug("leaving room", "error", err)
		}
	}
	app.dropSlot()
	app.page = pages.NewGameModeSelection(app.styles)
}

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package app

import "github.com/mxmxmx333/ft-transcendence/lib/socketio"

// slot is the one network resource the app holds: a game connection or
// the callback listener of a pending remote login. A nil slot holds
// nothing.
type slot interface {
	close() error
}

type gameSlot struct {
	conn Connection
}

func (held gameSlot) close() error { return held.conn.Close() }

type listenerSlot struct {
	listener CallbackServer
}

func (held listenerSlot) close() error { return held.listener.Close() }

// socketMessage is the outcome of one WaitForEvent on conn.
type socketMessage struct {
	conn  Connection
	event socketio.Event
	err   error
}

// gameConnection returns the held connection, or nil.
func (app *App) gameConnection() Connection {
	if held, ok := app.slot.(gameSlot); ok {
		return held.conn
	}
	return nil
}

// callbackListener returns the held listener, or nil.
func (app *App) callbackListener() CallbackServer {
	if held, ok := app.slot.(listenerSlot); ok {
		return held.listener
	}
	return nil
}

// setSlot closes whatever is held and holds next instead.
func (app *App) setSlot(next slot) {
	app.dropSlot()
	app.slot = next
}

// dropSlot closes whatever is held. A read in flight on a closed
// connection fails and its message is discarded as stale.
func (app *App) dropSlot() {
	if app.slot == nil {
		return
	}
	if err := app.slot.close(); err != nil {
		app.logger.Debug("closing held connection", "error", err)
	}
	app.slot = nil
	app.pendingMove = nil
}

// armReceive starts a read on the held connection unless one is
// already in flight.
func (app *App) armReceive() {
	conn := app.gameConnection()
	if conn == nil || conn == app.reading {
		return
	}
	app.reading = conn
	go func() {
		event, err := conn.WaitForEvent()
		select {
		case app.received <- socketMessage{conn: conn, event: event, err: err}:
		case <-app.done:
		}
	}()
}

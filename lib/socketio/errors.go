// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

import "errors"

// Connection-layer errors. All of them are terminal for the Client.
var (
	// ErrURL means the endpoint could not be parsed as a websocket URL.
	ErrURL = errors.New("unable to parse url")

	// ErrConnection covers refused, dropped and reset connections and
	// failed reads or writes on an established one.
	ErrConnection = errors.New("connection error")

	// ErrHandshake means the server did not complete the Engine.IO or
	// Socket.IO handshake as expected.
	ErrHandshake = errors.New("error during socket.io handshake")

	// ErrInvalidCredentials means the server answered the connect
	// packet with a connect_error (opcode 44), i.e. the token was
	// rejected.
	ErrInvalidCredentials = errors.New("credentials rejected by server")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("connection closed")
)

// Protocol-layer errors.
var (
	// ErrInvalidResponse means a frame arrived that does not fit the
	// protocol: unexpected opcode, undecodable frame, unknown event
	// name, or a payload that does not match the event's schema.
	ErrInvalidResponse = errors.New("invalid response received from server")

	// ErrEncode means an outbound payload could not be serialized.
	ErrEncode = errors.New("unable to serialize request")
)

// Application-layer errors: the server understood the request and
// refused it.
var (
	// ErrCreateRoom is the server's create_error reply to create_room.
	ErrCreateRoom = errors.New("unable to create room")

	// ErrJoinRoom is the server's join_error reply to join_room.
	ErrJoinRoom = errors.New("unable to join room")
)

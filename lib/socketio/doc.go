// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package socketio implements the client side of the Socket.IO protocol
// (Engine.IO v4 transport, websocket only) as spoken by the game
// service. It is not a general-purpose Socket.IO library: it supports
// exactly the handshake, event, and keep-alive frames the pong client
// needs.
//
// The package is organized around the wire layers:
//
//   - frame.go: the two-layer text framing, a numeric opcode prefix
//     followed by a JSON payload
//   - handshake.go: the Engine.IO "open" packet and the Socket.IO
//     connect exchange that authenticates the session with a token
//   - request.go: the closed set of outbound events
//   - event.go, envelope.go: the closed set of inbound events and the
//     generic (name, raw payload) envelope they arrive in
//   - client.go: [Client], which owns one websocket connection and
//     drives it through Connecting, Ready and Closed
//
// A [Client] is not safe for concurrent use except for one reader
// (WaitForEvent or Request) running alongside writers (Send and the
// fire-and-forget helpers). Writes are serialized internally so the
// pong reply to a server ping never interleaves with an outbound event.
//
// Connection loss is never recovered: every connection-layer and
// protocol-layer failure is terminal for the Client and is returned to
// the caller, which is expected to drop it.
package socketio

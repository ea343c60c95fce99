// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

// EngineHandshake is the payload of the Engine.IO open packet. The
// values are informational: the client answers pings as they arrive
// instead of running its own ping/pong watchdog.
type EngineHandshake struct {
	SessionID    string   `json:"sid"`
	Upgrades     []string `json:"upgrades"`
	PingInterval int      `json:"pingInterval"`
	PingTimeout  int      `json:"pingTimeout"`
	MaxPayload   int      `json:"maxPayload"`
}

// engineHandshakeFields are the keys the open packet must carry.
var engineHandshakeFields = []string{"sid", "upgrades", "pingInterval", "pingTimeout", "maxPayload"}

// connectRequest is the auth payload of the Socket.IO connect packet.
type connectRequest struct {
	Token string `json:"token"`
}

// SocketHandshake is the server's reply to a successful connect packet.
type SocketHandshake struct {
	SessionID string `json:"sid"`
}

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Opcode is the numeric prefix of a text frame. The outer Engine.IO
// layer and the inner Socket.IO layer share the same framing; a
// Socket.IO packet travels inside an Engine.IO "message" packet, so
// its opcode is the concatenation of both digits (4 + 2 = "42").
type Opcode uint64

const (
	// OpcodeOpen is the Engine.IO open packet, sent once by the server
	// right after the websocket upgrade.
	OpcodeOpen Opcode = 0

	// OpcodePing is the Engine.IO keep-alive probe sent by the server.
	// It travels as the bare text "2" without a JSON payload.
	OpcodePing Opcode = 2

	// OpcodePong answers OpcodePing. Bare text "3".
	OpcodePong Opcode = 3

	// OpcodeConnect is the Socket.IO connect packet. The client sends
	// it with the auth payload; the server echoes it with the session
	// id on success.
	OpcodeConnect Opcode = 40

	// OpcodeEvent carries a JSON array [eventName, payload] in either
	// direction.
	OpcodeEvent Opcode = 42

	// OpcodeConnectError is the server's rejection of the connect
	// packet, used when the token is not accepted.
	OpcodeConnectError Opcode = 44
)

// errMalformedFrame is wrapped by every DecodeFrame failure.
var errMalformedFrame = errors.New("malformed frame")

// EncodeFrame marshals payload to JSON and prefixes it with the
// decimal opcode: EncodeFrame(42, []any{"join_room", x}) produces
// `42["join_room",{...}]`.
func EncodeFrame(opcode Opcode, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %s frame: %w", ErrEncode, opcode, err)
	}
	return encodeRaw(opcode, data), nil
}

func encodeRaw(opcode Opcode, data []byte) string {
	var builder strings.Builder
	builder.Grow(len(data) + 3)
	builder.WriteString(strconv.FormatUint(uint64(opcode), 10))
	builder.Write(data)
	return builder.String()
}

// DecodeFrame splits a text frame into its opcode and JSON payload.
// The payload starts at the first '{' or '['; everything before it
// must be a non-empty unsigned decimal number. Frames without a JSON
// part (the bare keep-alive "2" and "3") are rejected here; callers
// recognize those before decoding.
//
// The returned payload aliases text and is not validated as JSON.
func DecodeFrame(text string) (Opcode, json.RawMessage, error) {
	position := strings.IndexAny(text, "{[")
	if position < 0 {
		return 0, nil, fmt.Errorf("%w: no JSON payload in %q", errMalformedFrame, truncateFrame(text))
	}
	if position == 0 {
		return 0, nil, fmt.Errorf("%w: missing opcode prefix in %q", errMalformedFrame, truncateFrame(text))
	}
	code, err := strconv.ParseUint(text[:position], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: opcode prefix %q is not an unsigned integer", errMalformedFrame, text[:position])
	}
	return Opcode(code), json.RawMessage(text[position:]), nil
}

// String returns the symbolic name for the opcodes this package
// understands and the decimal value for everything else.
func (opcode Opcode) String() string {
	switch opcode {
	case OpcodeOpen:
		return "open"
	case OpcodePing:
		return "ping"
	case OpcodePong:
		return "pong"
	case OpcodeConnect:
		return "connect"
	case OpcodeEvent:
		return "event"
	case OpcodeConnectError:
		return "connect_error"
	default:
		return strconv.FormatUint(uint64(opcode), 10)
	}
}

// maxLoggedFrame bounds how much of a frame is copied into error
// messages and log records.
const maxLoggedFrame = 120

func truncateFrame(text string) string {
	if len(text) <= maxLoggedFrame {
		return text
	}
	return text[:maxLoggedFrame] + "..."
}

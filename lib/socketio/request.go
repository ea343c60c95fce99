// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

import "fmt"

// Outbound event names.
const (
	EventCreateRoom = "create_room"
	EventJoinRoom   = "join_room"
	EventPaddleMove = "paddle_move"
	EventGamePause  = "game_pause"
	EventLeaveRoom  = "leave_room"
)

// Request is one of the outbound events the client sends. The set is
// closed: CreateRoom, JoinRoom, PaddleMove, GamePause and LeaveRoom.
type Request interface {
	// EventName is the first element of the [name, payload] array.
	EventName() string

	// payload returns the second element and whether there is one.
	// LeaveRoom carries no payload and is sent as ["leave_room"].
	payload() (any, bool)
}

// CreateRoom asks the server for a new room. SinglePlayer rooms are
// played against the server-side opponent; non-remote rooms put both
// paddles on this client's keyboard.
type CreateRoom struct {
	SinglePlayer bool `json:"isSinglePlayer"`
	Remote       bool `json:"isRemote"`
}

// SinglePlayerRoom is the request for a game against the AI opponent.
func SinglePlayerRoom() CreateRoom { return CreateRoom{SinglePlayer: true, Remote: false} }

// MultiplayerRoom is the request for a room another client joins by id.
func MultiplayerRoom() CreateRoom { return CreateRoom{SinglePlayer: false, Remote: true} }

// LocalRoom is the request for a two-player game on one keyboard.
func LocalRoom() CreateRoom { return CreateRoom{SinglePlayer: false, Remote: false} }

func (CreateRoom) EventName() string            { return EventCreateRoom }
func (request CreateRoom) payload() (any, bool) { return request, true }

// JoinRoom joins an existing room by id.
type JoinRoom struct {
	RoomID string `json:"roomId"`
}

func (JoinRoom) EventName() string            { return EventJoinRoom }
func (request JoinRoom) payload() (any, bool) { return request, true }

// PaddleMove reports the movement direction of both paddles. In rooms
// with a single local player only that player's slot carries a
// direction.
type PaddleMove struct {
	P1 Direction `json:"moveP1"`
	P2 Direction `json:"moveP2"`
}

func (PaddleMove) EventName() string            { return EventPaddleMove }
func (request PaddleMove) payload() (any, bool) { return request, true }

// GamePause sets the pause state. The payload is a bare JSON boolean.
type GamePause struct {
	Paused bool
}

func (GamePause) EventName() string            { return EventGamePause }
func (request GamePause) payload() (any, bool) { return request.Paused, true }

// LeaveRoom tells the server the client is leaving its current room.
type LeaveRoom struct{}

func (LeaveRoom) EventName() string    { return EventLeaveRoom }
func (LeaveRoom) payload() (any, bool) { return nil, false }

// encodeRequest renders request as an event frame: 42["name",payload].
func encodeRequest(request Request) (string, error) {
	value, ok := request.payload()
	if !ok {
		return EncodeFrame(OpcodeEvent, []any{request.EventName()})
	}
	return EncodeFrame(OpcodeEvent, []any{request.EventName(), value})
}

// Direction is the movement intent of one paddle.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

// String returns the wire spelling: "none", "up" or "down".
func (direction Direction) String() string {
	switch direction {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// MarshalText encodes the direction with its wire spelling so that
// PaddleMove serializes to {"moveP1":"up","moveP2":"none"}.
func (direction Direction) MarshalText() ([]byte, error) {
	return []byte(direction.String()), nil
}

// UnmarshalText accepts the three wire spellings.
func (direction *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*direction = DirectionNone
	case "up":
		*direction = DirectionUp
	case "down":
		*direction = DirectionDown
	default:
		return fmt.Errorf("unknown paddle direction %q", text)
	}
	return nil
}

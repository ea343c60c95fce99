// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Inbound event names.
const (
	EventJoinedRoom     = "joined_room"
	EventRoomCreated    = "room_created"
	EventGameStart      = "game_start"
	EventGameState      = "game_state"
	EventGamePauseState = "game_pause_state"
	EventGameAborted    = "game_aborted"
	EventGameOver       = "game_over"
	EventCreateError    = "create_error"
	EventJoinError      = "join_error"
)

// Event is one of the inbound events delivered by WaitForEvent:
// JoinedRoom, GameStart, GameState, GamePauseState, GameAborted,
// GameOver or Ping. The interface is sealed; callers dispatch with a
// type switch.
type Event interface {
	inboundEvent()
}

// JoinedRoom confirms the client is in a room.
type JoinedRoom struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// GameStart carries the initial state of a match and both players.
// IsOwner tells which side this client plays: the owner controls
// paddle 1 on the left.
type GameStart struct {
	BallX         float64 `json:"ballX"`
	BallY         float64 `json:"ballY"`
	BallVelocityX float64 `json:"ballVX"`
	BallVelocityY float64 `json:"ballVY"`
	Paddle1Y      float64 `json:"paddle1Y"`
	Paddle2Y      float64 `json:"paddle2Y"`
	OwnerScore    int     `json:"ownerScore"`
	GuestScore    int     `json:"guestScore"`
	Owner         Player  `json:"owner"`
	Guest         Player  `json:"guest"`
	IsOwner       bool    `json:"isOwner"`
	Success       bool    `json:"success"`
}

// GameState is the periodic authoritative snapshot during a match.
type GameState struct {
	BallX      float64 `json:"ballX"`
	BallY      float64 `json:"ballY"`
	Paddle1Y   float64 `json:"paddle1Y"`
	Paddle2Y   float64 `json:"paddle2Y"`
	OwnerScore int     `json:"ownerScore"`
	GuestScore int     `json:"guestScore"`
}

// GamePauseState reports whether the match is paused. The wire payload
// is a bare boolean.
type GamePauseState struct {
	Paused bool
}

// GameAborted ends a match without a result, typically because the
// other player disconnected.
type GameAborted struct {
	Message string `json:"message"`
}

// FinalScore is the score at the end of a match.
type FinalScore struct {
	Owner int `json:"owner"`
	Guest int `json:"guest"`
}

// GameOver ends a match with a result.
type GameOver struct {
	Winner     string     `json:"winner"`
	FinalScore FinalScore `json:"finalScore"`
	Message    string     `json:"message"`
}

// Ping is surfaced after the client has answered a server keep-alive
// probe. It carries nothing.
type Ping struct{}

func (JoinedRoom) inboundEvent()     {}
func (GameStart) inboundEvent()      {}
func (GameState) inboundEvent()      {}
func (GamePauseState) inboundEvent() {}
func (GameAborted) inboundEvent()    {}
func (GameOver) inboundEvent()       {}
func (Ping) inboundEvent()           {}

// RoomCreated is the reply to CreateRoom. It is only consumed through
// request/response pairing and is not part of the Event set.
type RoomCreated struct {
	RoomID  string `json:"roomId"`
	Success bool   `json:"success"`
}

// Player identifies one side of a match.
type Player struct {
	ID       PlayerID `json:"id"`
	Nickname string   `json:"nickname"`
}

// PlayerID is a user id that the server emits either as a JSON number
// or as a JSON string. It is kept in its textual form.
type PlayerID string

// UnmarshalJSON accepts a number or a string.
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*id = PlayerID(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("player id must be a number or a string, got %s", data)
	}
	if _, err := strconv.ParseUint(number.String(), 10, 64); err != nil {
		return fmt.Errorf("player id %s is not an unsigned integer", number)
	}
	*id = PlayerID(number.String())
	return nil
}

// ParseEvent dispatches an envelope on its name and decodes the
// payload into the matching Event. Unknown names and payloads that do
// not fit the schema fail with ErrInvalidResponse.
func ParseEvent(envelope Envelope) (Event, error) {
	switch envelope.Name {
	case EventJoinedRoom:
		var event JoinedRoom
		if err := envelope.decodePayload(&event, "roomId"); err != nil {
			return nil, err
		}
		return event, nil

	case EventGameStart:
		var event GameStart
		if err := envelope.decodePayload(&event,
			"ballX", "ballY", "ballVX", "ballVY", "paddle1Y", "paddle2Y",
			"ownerScore", "guestScore", "owner", "guest", "isOwner",
		); err != nil {
			return nil, err
		}
		return event, nil

	case EventGameState:
		var event GameState
		if err := envelope.decodePayload(&event,
			"ballX", "ballY", "paddle1Y", "paddle2Y", "ownerScore", "guestScore",
		); err != nil {
			return nil, err
		}
		return event, nil

	case EventGamePauseState:
		if isNull(envelope.Payload) {
			return nil, fmt.Errorf("%w: %s payload is missing", ErrInvalidResponse, envelope.Name)
		}
		var paused bool
		if err := envelope.decodePayload(&paused); err != nil {
			return nil, err
		}
		return GamePauseState{Paused: paused}, nil

	case EventGameAborted:
		var event GameAborted
		if err := envelope.decodePayload(&event); err != nil {
			return nil, err
		}
		return event, nil

	case EventGameOver:
		var event GameOver
		if err := envelope.decodePayload(&event, "winner", "finalScore"); err != nil {
			return nil, err
		}
		return event, nil

	default:
		return nil, fmt.Errorf("%w: unknown event %q", ErrInvalidResponse, envelope.Name)
	}
}

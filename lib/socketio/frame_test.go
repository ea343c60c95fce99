// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()

	payloads := []any{
		map[string]any{},
		[]any{},
		map[string]any{"token": "abc"},
		[]any{"join_room", map[string]any{"roomId": "R1"}},
		[]any{"game_pause", true},
		[]any{"leave_room"},
		map[string]any{"nested": []any{1.5, "two", nil, map[string]any{"x": false}}},
	}
	opcodes := []Opcode{OpcodeOpen, OpcodeConnect, OpcodeEvent, OpcodeConnectError, 7, 18446744073709551615}

	for _, opcode := range opcodes {
		for _, payload := range payloads {
			want, err := json.Marshal(payload)
			if err != nil {
				t.Fatalf("marshal %v: %v", payload, err)
			}
			text, err := EncodeFrame(opcode, payload)
			if err != nil {
				t.Fatalf("EncodeFrame(%d, %s): %v", opcode, want, err)
			}
			gotOpcode, gotPayload, err := DecodeFrame(text)
			if err != nil {
				t.Fatalf("DecodeFrame(%q): %v", text, err)
			}
			if gotOpcode != opcode {
				t.Errorf("DecodeFrame(%q) opcode = %d, want %d", text, gotOpcode, opcode)
			}
			if !bytes.Equal(gotPayload, want) {
				t.Errorf("DecodeFrame(%q) payload = %s, want %s", text, gotPayload, want)
			}
		}
	}
}

func TestEncodeFrameWireFormat(t *testing.T) {
	t.Parallel()
	text, err := EncodeFrame(OpcodeConnect, connectRequest{Token: "abc"})
	if err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	if want := `40{"token":"abc"}`; text != want {
		t.Fatalf("EncodeFrame = %q, want %q", text, want)
	}
}

func TestEncodeFrameMarshalError(t *testing.T) {
	t.Parallel()
	_, err := EncodeFrame(OpcodeEvent, []any{"bad", make(chan int)})
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("EncodeFrame(chan) error = %v, want ErrEncode", err)
	}
}

func TestDecodeFrameRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "bare ping", text: "2"},
		{name: "bare pong", text: "3"},
		{name: "object without prefix", text: `{"sid":"x"}`},
		{name: "array without prefix", text: `["game_state",{}]`},
		{name: "letters", text: `ab{"sid":"x"}`},
		{name: "negative", text: `-1{}`},
		{name: "decimal point", text: `4.2["x"]`},
		{name: "embedded space", text: `4 2["x"]`},
		{name: "overflow", text: `18446744073709551616{}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if opcode, payload, err := DecodeFrame(test.text); err == nil {
				t.Fatalf("DecodeFrame(%q) = (%d, %s), want error", test.text, opcode, payload)
			} else if !errors.Is(err, errMalformedFrame) {
				t.Fatalf("DecodeFrame(%q) error = %v, want errMalformedFrame", test.text, err)
			}
		})
	}
}

func TestDecodeFrameSplitsAtFirstBracket(t *testing.T) {
	t.Parallel()
	opcode, payload, err := DecodeFrame(`42["game_over",{"winner":"a"}]`)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if opcode != OpcodeEvent {
		t.Errorf("opcode = %d, want %d", opcode, OpcodeEvent)
	}
	if want := `["game_over",{"winner":"a"}]`; string(payload) != want {
		t.Errorf("payload = %s, want %s", payload, want)
	}
}

func TestOpcodeString(t *testing.T) {
	t.Parallel()
	tests := map[Opcode]string{
		OpcodeOpen:         "open",
		OpcodePing:         "ping",
		OpcodePong:         "pong",
		OpcodeConnect:      "connect",
		OpcodeEvent:        "event",
		OpcodeConnectError: "connect_error",
		41:                 "41",
	}
	for opcode, want := range tests {
		if got := opcode.String(); got != want {
			t.Errorf("Opcode(%d).String() = %q, want %q", uint64(opcode), got, want)
		}
	}
}

func TestTruncateFrame(t *testing.T) {
	t.Parallel()
	short := `42["game_state",{}]`
	if got := truncateFrame(short); got != short {
		t.Errorf("truncateFrame(short) = %q", got)
	}
	long := "42" + strings.Repeat("x", 500)
	if got := truncateFrame(long); len(got) != maxLoggedFrame+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncateFrame(long) = %q (len %d)", got, len(got))
	}
}

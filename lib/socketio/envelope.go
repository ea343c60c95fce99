// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is an event frame before typed dispatch: the event name and
// its payload as raw JSON. The wire form is the array [name, payload];
// a missing payload decodes as JSON null.
type Envelope struct {
	Name    string
	Payload json.RawMessage
}

// UnmarshalJSON decodes the [name, payload] array. Extra trailing
// elements (Socket.IO acknowledgement arguments) are ignored.
func (envelope *Envelope) UnmarshalJSON(data []byte) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return fmt.Errorf("event envelope is not an array: %w", err)
	}
	if len(elements) == 0 {
		return fmt.Errorf("event envelope is empty")
	}
	var name string
	if err := json.Unmarshal(elements[0], &name); err != nil {
		return fmt.Errorf("event name is not a string: %w", err)
	}
	envelope.Name = name
	envelope.Payload = json.RawMessage("null")
	if len(elements) > 1 {
		envelope.Payload = elements[1]
	}
	return nil
}

// MarshalJSON encodes the envelope as [name, payload].
func (envelope Envelope) MarshalJSON() ([]byte, error) {
	payload := envelope.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return json.Marshal([]any{envelope.Name, payload})
}

// decodePayload unmarshals the envelope payload into target after
// checking that every required key is present and not null.
func (envelope Envelope) decodePayload(target any, required ...string) error {
	return decodeRequired(envelope.Name, envelope.Payload, target, required...)
}

// decodeRequired unmarshals raw into target after checking that every
// required key is present and not null. The standard decoder silently
// zero-fills missing fields, which would let a truncated game_state
// move the ball to the origin.
func decodeRequired(name string, raw json.RawMessage, target any, required ...string) error {
	if len(required) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("%w: %s payload is not an object: %w", ErrInvalidResponse, name, err)
		}
		for _, key := range required {
			value, ok := fields[key]
			if !ok || isNull(value) {
				return fmt.Errorf("%w: %s payload is missing %q", ErrInvalidResponse, name, key)
			}
		}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decoding %s payload: %w", ErrInvalidResponse, name, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

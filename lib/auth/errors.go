// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import "errors"

var (
	// ErrConnection means the server could not be reached.
	ErrConnection = errors.New("connection error")

	// ErrInvalidResponse means the server answered with something
	// that does not fit the API: malformed JSON, a missing token, or
	// a malformed OAuth callback.
	ErrInvalidResponse = errors.New("invalid response received from server")

	// ErrInvalidCredentials means the server rejected the email and
	// password, or the bearer token presented with a follow-up call.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrServer is a 5xx response.
	ErrServer = errors.New("internal server error")

	// ErrInvalidCode means the server rejected the second-factor code.
	ErrInvalidCode = errors.New("invalid 2fa code")

	// ErrNickname means the server refused the chosen nickname. The
	// wrapping error carries the server's reason.
	ErrNickname = errors.New("unable to set nickname")
)

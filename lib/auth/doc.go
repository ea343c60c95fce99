// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth talks to the game server's authentication API and
// receives the result of a browser-based OAuth login.
//
// [Client] is a typed HTTP client for the four calls the terminal
// client makes: password login, second-factor confirmation, nickname
// selection after a first OAuth login, and fetching the OAuth redirect
// URL. Every call takes a context and returns a bearer token or a
// sentinel error from the taxonomy in errors.go, so callers can map
// failures to inline messages with errors.Is.
//
// [CallbackListener] is the local end of the remote login: a
// single-use HTTP responder on 127.0.0.1 whose port is passed to the
// server, which redirects the browser to it with token and
// nickname_required query parameters once the OAuth dance completes.
package auth

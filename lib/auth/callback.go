// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// CallbackResult is what the browser redirect delivered: a session
// token and whether the account still needs a nickname, or Err when
// the request was malformed.
type CallbackResult struct {
	Token            string
	NicknameRequired bool
	Err              error
}

// CallbackListener is a single-use HTTP responder on an ephemeral
// loopback port. The first request it receives is parsed and
// delivered; later requests are answered with 410 Gone.
type CallbackListener struct {
	listener net.Listener
	server   *http.Server
	logger   *slog.Logger

	once    sync.Once
	deliver func(CallbackResult)
}

// ListenCallback binds 127.0.0.1 on a port chosen by the kernel.
// Call Serve to start answering and Close to release the port.
func ListenCallback(ctx context.Context, logger *slog.Logger) (*CallbackListener, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var listenConfig net.ListenConfig
	listener, err := listenConfig.Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("binding callback listener: %w", err)
	}
	callback := &CallbackListener{
		listener: listener,
		logger:   logger,
	}
	callback.server = &http.Server{
		Handler:           http.HandlerFunc(callback.handle),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return callback, nil
}

// Port returns the bound port.
func (callback *CallbackListener) Port() int {
	return callback.listener.Addr().(*net.TCPAddr).Port
}

// Serve answers requests until Close. deliver is called at most once,
// from the HTTP handler goroutine, before the response is written.
// Serve returns nil after Close.
func (callback *CallbackListener) Serve(deliver func(CallbackResult)) error {
	callback.deliver = deliver
	err := callback.server.Serve(callback.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close stops the server and releases the port. It may be called
// before Serve.
func (callback *CallbackListener) Close() error {
	err := callback.server.Close()
	if closeErr := callback.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
		err = errors.Join(err, closeErr)
	}
	return err
}

func (callback *CallbackListener) handle(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")

	delivered := false
	callback.once.Do(func() {
		delivered = true
		result := parseCallback(request)
		if result.Err != nil {
			callback.logger.Warn("malformed oauth callback", "query", request.URL.RawQuery, "error", result.Err)
		} else {
			callback.logger.Info("oauth callback received", "nickname_required", result.NicknameRequired)
		}
		if callback.deliver != nil {
			callback.deliver(result)
		}
		if result.Err != nil {
			http.Error(writer, "Bad Request", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(writer, "Login complete. You can return to the terminal.")
	})
	if !delivered {
		http.Error(writer, "Login already completed", http.StatusGone)
	}
}

// parseCallback reads token and nickname_required from the query.
// nickname_required must be exactly "true" or "false".
func parseCallback(request *http.Request) CallbackResult {
	query := request.URL.Query()
	token := query.Get("token")
	if token == "" {
		return CallbackResult{Err: fmt.Errorf("%w: callback without token", ErrInvalidResponse)}
	}
	var nicknameRequired bool
	switch value := query.Get("nickname_required"); value {
	case "true":
		nicknameRequired = true
	case "false":
	default:
		return CallbackResult{Err: fmt.Errorf("%w: nickname_required=%q", ErrInvalidResponse, value)}
	}
	return CallbackResult{Token: token, NicknameRequired: nicknameRequired}
}

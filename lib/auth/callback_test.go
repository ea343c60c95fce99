// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/mxmxmx333/ft-transcendence/lib/testutil"
)

// serveCallback starts a listener and returns it with the channel its
// results are delivered on.
func serveCallback(t *testing.T) (*CallbackListener, <-chan CallbackResult) {
	t.Helper()
	listener, err := ListenCallback(context.Background(), testutil.Logger(t))
	if err != nil {
		t.Fatalf("ListenCallback: %v", err)
	}
	results := make(chan CallbackResult, 1)
	served := make(chan error, 1)
	go func() {
		served <- listener.Serve(func(result CallbackResult) { results <- result })
	}()
	t.Cleanup(func() {
		listener.Close()
		if err := testutil.RequireReceive(t, served, 5*time.Second, "waiting for Serve to return"); err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	return listener, results
}

func getCallback(t *testing.T, port int, query string) (int, string) {
	t.Helper()
	response, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/?%s", port, query))
	if err != nil {
		t.Fatalf("GET callback: %v", err)
	}
	defer response.Body.Close()
	body, _ := io.ReadAll(response.Body)
	if got := response.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	return response.StatusCode, string(body)
}

func TestCallbackDeliversToken(t *testing.T) {
	t.Parallel()
	listener, results := serveCallback(t)
	if listener.Port() == 0 {
		t.Fatal("Port() = 0")
	}

	status, _ := getCallback(t, listener.Port(), "token=jwt-2&nickname_required=true")
	if status != http.StatusOK {
		t.Fatalf("callback status = %d, want 200", status)
	}
	result := testutil.RequireReceive(t, results, 5*time.Second, "waiting for callback result")
	if result.Err != nil || result.Token != "jwt-2" || !result.NicknameRequired {
		t.Fatalf("callback result = %+v", result)
	}
}

func TestCallbackIsSingleUse(t *testing.T) {
	t.Parallel()
	listener, results := serveCallback(t)

	getCallback(t, listener.Port(), "token=first&nickname_required=false")
	first := testutil.RequireReceive(t, results, 5*time.Second, "waiting for first result")
	if first.Token != "first" || first.NicknameRequired {
		t.Fatalf("first result = %+v", first)
	}

	status, _ := getCallback(t, listener.Port(), "token=second&nickname_required=false")
	if status != http.StatusGone {
		t.Fatalf("second callback status = %d, want 410", status)
	}
	select {
	case result := <-results:
		t.Fatalf("second callback delivered %+v", result)
	default:
	}
}

func TestCallbackRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, query := range []string{
		"nickname_required=true",
		"token=x",
		"token=x&nickname_required=yes",
	} {
		t.Run(query, func(t *testing.T) {
			t.Parallel()
			listener, results := serveCallback(t)
			status, _ := getCallback(t, listener.Port(), query)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			result := testutil.RequireReceive(t, results, 5*time.Second, "waiting for error result")
			if !errors.Is(result.Err, ErrInvalidResponse) {
				t.Errorf("result = %+v, want ErrInvalidResponse", result)
			}
		})
	}
}

func TestCallbackCloseBeforeServe(t *testing.T) {
	t.Parallel()
	listener, err := ListenCallback(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListenCallback: %v", err)
	}
	if err := listener.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := listener.Serve(func(CallbackResult) {}); err != nil {
		t.Fatalf("Serve after Close = %v, want nil", err)
	}
}

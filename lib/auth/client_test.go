// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mxmxmx333/ft-transcendence/lib/testutil"
)

// testServer starts handler and returns a Client rooted at it.
func testServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", Options{Logger: testutil.Logger(t)})
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Errorf("decoding login body: %v", err)
		}
		if body["email"] != "alice@example.org" || body["password"] != "hunter2" {
			t.Errorf("login body = %v", body)
		}
		if got := request.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"success":true,"token":"jwt-1","user":{"id":7,"nickname":"alice","email":"alice@example.org"},"action_required":false}`))
	})

	client := testServer(t, mux)
	response, err := client.Login(context.Background(), "alice@example.org", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.Token != "jwt-1" || response.User.Nickname != "alice" || response.User.ID != 7 {
		t.Errorf("Login = %+v", response)
	}
	if response.TwoFactorRequired() {
		t.Error("TwoFactorRequired() = true for action_required=false")
	}
}

func TestLoginTwoFactorRequired(t *testing.T) {
	t.Parallel()
	client := testServer(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"success":true,"token":"provisional","user":{"id":1,"nickname":"a","email":"a@b"},"action_required":"2fa"}`))
	}))
	response, err := client.Login(context.Background(), "a@b", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !response.TwoFactorRequired() {
		t.Fatal("TwoFactorRequired() = false for action_required=\"2fa\"")
	}
}

func TestLoginErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "wrong password", status: http.StatusUnauthorized, body: `{"error":"Invalid credentials","message":"Email or password is incorrect"}`, wantErr: ErrInvalidCredentials},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: ErrServer},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantErr: ErrInvalidResponse},
		{name: "success false", status: http.StatusOK, body: `{"success":false,"token":"x"}`, wantErr: ErrInvalidResponse},
		{name: "bad action", status: http.StatusOK, body: `{"success":true,"token":"x","action_required":3}`, wantErr: ErrInvalidResponse},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			client := testServer(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(test.status)
				writer.Write([]byte(test.body))
			}))
			_, err := client.Login(context.Background(), "a@b", "pw")
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("Login error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestLoginConnectionError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(server.URL, Options{})
	server.Close()

	if _, err := client.Login(context.Background(), "a@b", "pw"); !errors.Is(err, ErrConnection) {
		t.Fatalf("Login error = %v, want ErrConnection", err)
	}
}

func TestLoginTwoFactor(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login/2fa", func(writer http.ResponseWriter, request *http.Request) {
		if got := request.Header.Get("Authorization"); got != "Bearer provisional" {
			t.Errorf("Authorization = %q", got)
		}
		var body map[string]string
		json.NewDecoder(request.Body).Decode(&body)
		if body["code"] != "123456" {
			writeJSON(t, writer, http.StatusUnauthorized, map[string]string{"error": "Invalid 2FA code"})
			return
		}
		writeJSON(t, writer, http.StatusOK, map[string]any{"success": true, "token": "session"})
	})
	client := testServer(t, mux)

	token, err := client.LoginTwoFactor(context.Background(), "provisional", "123456")
	if err != nil {
		t.Fatalf("LoginTwoFactor: %v", err)
	}
	if token != "session" {
		t.Errorf("LoginTwoFactor = %q, want session", token)
	}

	_, err = client.LoginTwoFactor(context.Background(), "provisional", "000000")
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("LoginTwoFactor error = %v, want ErrInvalidCode", err)
	}
	if !strings.Contains(err.Error(), "Invalid 2FA code") {
		t.Errorf("LoginTwoFactor error = %q, want the server message", err)
	}
}

func TestSetNickname(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/profile/set-nickname", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer oauth-token" {
			writeJSON(t, writer, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		var body map[string]string
		json.NewDecoder(request.Body).Decode(&body)
		switch body["nickname"] {
		case "taken":
			writeJSON(t, writer, http.StatusOK, map[string]any{"success": false, "error": "Nickname already in use"})
		case "odd":
			writeJSON(t, writer, http.StatusOK, map[string]any{"success": false})
		default:
			writeJSON(t, writer, http.StatusOK, map[string]any{"success": true, "token": "named-token"})
		}
	})
	client := testServer(t, mux)
	ctx := context.Background()

	token, err := client.SetNickname(ctx, "oauth-token", "bob")
	if err != nil || token != "named-token" {
		t.Fatalf("SetNickname = (%q, %v), want named-token", token, err)
	}

	_, err = client.SetNickname(ctx, "oauth-token", "taken")
	if !errors.Is(err, ErrNickname) || !strings.Contains(err.Error(), "Nickname already in use") {
		t.Fatalf("SetNickname(taken) error = %v, want ErrNickname with reason", err)
	}

	if _, err := client.SetNickname(ctx, "oauth-token", "odd"); !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("SetNickname(odd) error = %v, want ErrInvalidResponse", err)
	}

	if _, err := client.SetNickname(ctx, "stale", "bob"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("SetNickname(stale token) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRemoteRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/42", func(writer http.ResponseWriter, request *http.Request) {
		switch port := request.URL.Query().Get("cli_port"); port {
		case "45123":
			writeJSON(t, writer, http.StatusOK, map[string]string{"url": "https://api.intra.42.fr/oauth/authorize?state=s"})
		case "1":
			writeJSON(t, writer, http.StatusOK, map[string]string{"url": "javascript:alert(1)"})
		default:
			writeJSON(t, writer, http.StatusInternalServerError, map[string]string{"error": "OAuth settings not configured in .env file"})
		}
	})
	client := testServer(t, mux)
	ctx := context.Background()

	redirect, err := client.RemoteRedirect(ctx, 45123)
	if err != nil {
		t.Fatalf("RemoteRedirect: %v", err)
	}
	if !strings.HasPrefix(redirect, "https://api.intra.42.fr/") {
		t.Errorf("RemoteRedirect = %q", redirect)
	}

	if _, err := client.RemoteRedirect(ctx, 1); !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("RemoteRedirect(non-http url) error = %v, want ErrInvalidResponse", err)
	}
	_, err = client.RemoteRedirect(ctx, 2)
	if !errors.Is(err, ErrServer) || !strings.Contains(err.Error(), "OAuth settings not configured") {
		t.Errorf("RemoteRedirect(unconfigured) error = %v, want ErrServer with message", err)
	}
}

func TestActionRequiredUnmarshal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  ActionRequired
	}{
		{input: `false`, want: ""},
		{input: `true`, want: "unknown"},
		{input: `"2fa"`, want: "2fa"},
	}
	for _, test := range tests {
		var action ActionRequired
		if err := json.Unmarshal([]byte(test.input), &action); err != nil || action != test.want {
			t.Errorf("Unmarshal(%s) = (%q, %v), want %q", test.input, action, err, test.want)
		}
	}
}

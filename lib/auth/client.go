// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mxmxmx333/ft-transcendence/lib/netutil"
)

// Options configures a Client.
type Options struct {
	// InsecureSkipVerify disables TLS certificate verification for
	// production servers with self-signed certificates.
	InsecureSkipVerify bool

	// Transport replaces the default HTTP transport. Tests use it to
	// route requests to an httptest.Server.
	Transport http.RoundTripper

	// Logger receives one record per call. Nil discards.
	Logger *slog.Logger
}

// Client is a typed HTTP client for the authentication API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Client for the API rooted at baseURL, for
// example "http://localhost:3000".
func NewClient(baseURL string, options Options) *Client {
	transport := options.Transport
	if transport == nil {
		defaultTransport := http.DefaultTransport.(*http.Transport).Clone()
		defaultTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: options.InsecureSkipVerify}
		transport = defaultTransport
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// User is the account summary returned with a login.
type User struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// ActionRequired is the login response's follow-up marker. The server
// sends false when the token is final, or the name of the pending
// step (e.g. "2fa") as a string.
type ActionRequired string

// UnmarshalJSON accepts false, true or a string.
func (action *ActionRequired) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*action = ""
		if flag {
			*action = "unknown"
		}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("action_required must be a bool or a string, got %s", data)
	}
	*action = ActionRequired(name)
	return nil
}

// LoginResponse is the wire format for POST /api/login.
type LoginResponse struct {
	Success        bool           `json:"success"`
	Token          string         `json:"token"`
	User           User           `json:"user"`
	ActionRequired ActionRequired `json:"action_required"`
}

// TwoFactorRequired reports whether Token is only good for
// LoginTwoFactor.
func (response *LoginResponse) TwoFactorRequired() bool {
	return response.ActionRequired != ""
}

// tokenResponse is the wire format shared by the 2FA and nickname
// calls.
type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Error   string `json:"error"`
}

// redirectResponse is the wire format for GET /api/auth/42.
type redirectResponse struct {
	URL string `json:"url"`
}

// Login authenticates with email and password. When the account has a
// second factor the returned token must be exchanged with
// LoginTwoFactor; see LoginResponse.TwoFactorRequired.
func (client *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	response, err := client.do(ctx, http.MethodPost, "/api/login", "", body)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer response.Body.Close()

	if err := statusError(response, ErrInvalidCredentials); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	var result LoginResponse
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("login: %w: %w", ErrInvalidResponse, err)
	}
	if !result.Success || result.Token == "" {
		return nil, fmt.Errorf("login: %w: success=%v without token", ErrInvalidResponse, result.Success)
	}
	client.logger.Info("login succeeded", "user", result.User.Nickname, "two_factor", result.TwoFactorRequired())
	return &result, nil
}

// LoginTwoFactor exchanges the provisional token from Login and a
// six-digit code for a session token.
func (client *Client) LoginTwoFactor(ctx context.Context, token, code string) (string, error) {
	response, err := client.do(ctx, http.MethodPost, "/api/login/2fa", token, map[string]string{"code": code})
	if err != nil {
		return "", fmt.Errorf("2fa: %w", err)
	}
	defer response.Body.Close()

	if err := statusError(response, ErrInvalidCode); err != nil {
		return "", fmt.Errorf("2fa: %w", err)
	}
	result, err := decodeToken(response)
	if err != nil {
		return "", fmt.Errorf("2fa: %w", err)
	}
	if !result.Success || result.Token == "" {
		return "", fmt.Errorf("2fa: %w", withReason(ErrInvalidCode, result.Error))
	}
	client.logger.Info("2fa login succeeded")
	return result.Token, nil
}

// SetNickname picks the nickname for an account created by OAuth
// login and returns the replacement token that carries it. A taken
// nickname fails with ErrNickname and the server's reason.
func (client *Client) SetNickname(ctx context.Context, token, nickname string) (string, error) {
	response, err := client.do(ctx, http.MethodPost, "/api/profile/set-nickname", token, map[string]string{"nickname": nickname})
	if err != nil {
		return "", fmt.Errorf("set nickname: %w", err)
	}
	defer response.Body.Close()

	if err := statusError(response, ErrInvalidCredentials); err != nil {
		return "", fmt.Errorf("set nickname: %w", err)
	}
	result, err := decodeToken(response)
	if err != nil {
		return "", fmt.Errorf("set nickname: %w", err)
	}
	switch {
	case result.Success && result.Token != "":
		client.logger.Info("nickname set", "nickname", nickname)
		return result.Token, nil
	case !result.Success && result.Error != "":
		return "", withReason(ErrNickname, result.Error)
	default:
		return "", fmt.Errorf("set nickname: %w: success=%v without token or error", ErrInvalidResponse, result.Success)
	}
}

// RemoteRedirect asks the server to start an OAuth login whose result
// will be delivered to a CallbackListener on callbackPort, and returns
// the URL the user must open in a browser.
func (client *Client) RemoteRedirect(ctx context.Context, callbackPort int) (string, error) {
	path := "/api/auth/42?" + url.Values{"cli_port": {strconv.Itoa(callbackPort)}}.Encode()
	response, err := client.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return "", fmt.Errorf("remote login: %w", err)
	}
	defer response.Body.Close()

	if err := statusError(response, ErrInvalidResponse); err != nil {
		return "", fmt.Errorf("remote login: %w", err)
	}
	var result redirectResponse
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return "", fmt.Errorf("remote login: %w: %w", ErrInvalidResponse, err)
	}
	parsed, err := url.Parse(result.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("remote login: %w: redirect url %q", ErrInvalidResponse, result.URL)
	}
	client.logger.Info("remote login started", "callback_port", callbackPort)
	return result.URL, nil
}

// do sends one request with an optional bearer token and JSON body.
// Transport failures are wrapped in ErrConnection.
func (client *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("auth request failed", "method", method, "path", request.URL.Path, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	client.logger.Debug("auth request", "method", method, "path", request.URL.Path, "status", response.StatusCode)
	return response, nil
}

// statusError maps a non-2xx status to a sentinel: 5xx is ErrServer
// and 4xx is clientError. The server's error body is attached.
func statusError(response *http.Response, clientError error) error {
	switch {
	case response.StatusCode >= 500:
		return fmt.Errorf("%w: HTTP %d: %s", ErrServer, response.StatusCode, errorMessage(response))
	case response.StatusCode >= 400:
		return fmt.Errorf("%w: HTTP %d: %s", clientError, response.StatusCode, errorMessage(response))
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return fmt.Errorf("%w: HTTP %d", ErrInvalidResponse, response.StatusCode)
	}
	return nil
}

// errorMessage extracts the "message" or "error" field of a JSON error
// body, or returns the raw body.
func errorMessage(response *http.Response) string {
	raw := netutil.ErrorBody(response.Body)
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(raw), &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(raw)
}

func decodeToken(response *http.Response) (*tokenResponse, error) {
	var result tokenResponse
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &result, nil
}

func withReason(sentinel error, reason string) error {
	if reason == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, reason)
}

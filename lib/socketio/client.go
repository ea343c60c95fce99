// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package socketio

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mxmxmx333/ft-transcendence/lib/netutil"
)

// closeWriteTimeout bounds the close frame write in Close so a stalled
// peer cannot block teardown.
const closeWriteTimeout = time.Second

// DialOptions configures Dial. The zero value verifies server
// certificates and discards log output.
type DialOptions struct {
	// InsecureSkipVerify disables TLS certificate verification. The
	// game service is deployed with a self-signed certificate, so the
	// client enables this by default through its configuration.
	InsecureSkipVerify bool

	// Logger receives debug records for every frame and warnings for
	// handshake failures. Nil discards.
	Logger *slog.Logger
}

// Client is one open Socket.IO connection. Dial returns it in the
// Ready state; Close moves it to Closed, after which every method
// returns ErrClosed.
type Client struct {
	connection *websocket.Conn
	logger     *slog.Logger

	// writeMutex serializes frame writes: the pong written by
	// WaitForEvent may race with Send from the owning goroutine.
	writeMutex sync.Mutex

	closed atomic.Bool

	engine  EngineHandshake
	session SocketHandshake
}

// Dial opens a websocket connection to endpoint and performs the
// two-stage handshake: it reads the Engine.IO open packet, sends the
// Socket.IO connect packet carrying token, and waits for the server to
// accept it. The returned Client is Ready.
//
// The context bounds the dial and both handshake stages. On failure
// the connection is closed and the error wraps ErrURL, ErrConnection,
// ErrHandshake or ErrInvalidCredentials.
func Dial(ctx context.Context, endpoint, token string, options DialOptions) (*Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrURL, err)
	}
	if (parsed.Scheme != "ws" && parsed.Scheme != "wss") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not a websocket url", ErrURL, endpoint)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("connection", uuid.NewString(), "host", parsed.Host)

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
		TLSClientConfig:  &tls.Config{InsecureSkipVerify: options.InsecureSkipVerify},
	}

	connection, response, err := dialer.DialContext(ctx, endpoint, nil)
	if response != nil && response.Body != nil {
		response.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %w", ErrConnection, parsed.Host, err)
	}

	client := &Client{
		connection: connection,
		logger:     logger,
	}

	if err := client.handshake(ctx, token); err != nil {
		logger.Warn("socket.io handshake failed", "error", err)
		connection.Close()
		return nil, err
	}

	logger.Debug("socket.io session ready",
		"engine_sid", client.engine.SessionID,
		"sid", client.session.SessionID,
		"ping_interval_ms", client.engine.PingInterval,
	)
	return client, nil
}

// handshake runs the Engine.IO open and Socket.IO connect exchanges.
func (client *Client) handshake(ctx context.Context, token string) error {
	return client.withContext(ctx, func() error {
		if err := client.engineHandshake(); err != nil {
			return err
		}
		return client.socketHandshake(token)
	})
}

func (client *Client) engineHandshake() error {
	text, err := client.readText()
	if err != nil {
		return fmt.Errorf("%w: reading open packet: %w", ErrHandshake, err)
	}
	opcode, payload, err := DecodeFrame(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if opcode != OpcodeOpen {
		return fmt.Errorf("%w: expected open packet, got opcode %s", ErrHandshake, opcode)
	}
	if err := decodeRequired("open", payload, &client.engine, engineHandshakeFields...); err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	return nil
}

func (client *Client) socketHandshake(token string) error {
	frame, err := EncodeFrame(OpcodeConnect, connectRequest{Token: token})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if err := client.writeText(frame); err != nil {
		return fmt.Errorf("%w: sending connect packet: %w", ErrHandshake, err)
	}

	text, err := client.readText()
	if err != nil {
		return fmt.Errorf("%w: reading connect reply: %w", ErrHandshake, err)
	}
	opcode, payload, err := DecodeFrame(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	switch opcode {
	case OpcodeConnect:
	case OpcodeConnectError:
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: expected connect reply, got opcode %s", ErrHandshake, opcode)
	}
	if err := decodeRequired("connect", payload, &client.session, "sid"); err != nil {
		return fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	return nil
}

// SessionID returns the Socket.IO session id assigned by the server.
func (client *Client) SessionID() string {
	return client.session.SessionID
}

// EngineInfo returns the Engine.IO open packet received during the
// handshake.
func (client *Client) EngineInfo() EngineHandshake {
	return client.engine
}

// Request sends request as an event frame and reads exactly one reply
// frame, which must be an event frame. The reply envelope is returned
// undispatched: the caller knows which event names answer its request.
// The context bounds the write and the read.
func (client *Client) Request(ctx context.Context, request Request) (Envelope, error) {
	var envelope Envelope
	err := client.withContext(ctx, func() error {
		if err := client.Send(request); err != nil {
			return err
		}
		text, err := client.readText()
		if err != nil {
			return err
		}
		opcode, payload, err := DecodeFrame(text)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		if opcode != OpcodeEvent {
			return fmt.Errorf("%w: expected event reply to %s, got opcode %s", ErrInvalidResponse, request.EventName(), opcode)
		}
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		return nil
	})
	if err != nil {
		return Envelope{}, err
	}
	client.logger.Debug("socket.io reply", "request", request.EventName(), "reply", envelope.Name)
	return envelope, nil
}

// Send writes request as an event frame without waiting for a reply.
func (client *Client) Send(request Request) error {
	frame, err := encodeRequest(request)
	if err != nil {
		return err
	}
	client.logger.Debug("socket.io send", "event", request.EventName())
	return client.writeText(frame)
}

// CreateRoom asks the server for a room and returns its id. A
// create_error reply fails with ErrCreateRoom.
func (client *Client) CreateRoom(ctx context.Context, request CreateRoom) (string, error) {
	reply, err := client.Request(ctx, request)
	if err != nil {
		return "", err
	}
	switch reply.Name {
	case EventRoomCreated:
		var created RoomCreated
		if err := reply.decodePayload(&created, "roomId", "success"); err != nil {
			return "", err
		}
		if !created.Success {
			return "", fmt.Errorf("%w: room_created reported failure", ErrInvalidResponse)
		}
		return created.RoomID, nil
	case EventCreateError:
		return "", withServerMessage(ErrCreateRoom, reply)
	default:
		return "", fmt.Errorf("%w: unexpected reply %q to %s", ErrInvalidResponse, reply.Name, EventCreateRoom)
	}
}

// JoinRoom joins the room with the given id. A join_error reply fails
// with ErrJoinRoom.
func (client *Client) JoinRoom(ctx context.Context, roomID string) error {
	reply, err := client.Request(ctx, JoinRoom{RoomID: roomID})
	if err != nil {
		return err
	}
	switch reply.Name {
	case EventJoinedRoom:
		return nil
	case EventJoinError:
		return withServerMessage(ErrJoinRoom, reply)
	default:
		return fmt.Errorf("%w: unexpected reply %q to %s", ErrInvalidResponse, reply.Name, EventJoinRoom)
	}
}

// PaddleMove sends the current paddle directions. Fire-and-forget.
func (client *Client) PaddleMove(move PaddleMove) error {
	return client.Send(move)
}

// PauseGame sets the pause state of the current match. Fire-and-forget.
func (client *Client) PauseGame(paused bool) error {
	return client.Send(GamePause{Paused: paused})
}

// LeaveRoom tells the server the client is leaving. Fire-and-forget.
func (client *Client) LeaveRoom() error {
	return client.Send(LeaveRoom{})
}

// WaitForEvent blocks until the next inbound frame and returns it as a
// typed Event. A bare keep-alive probe is answered with a bare pong
// before Ping is returned; no JSON is parsed for it.
//
// WaitForEvent has no deadline. Close from another goroutine unblocks
// it with ErrClosed.
func (client *Client) WaitForEvent() (Event, error) {
	text, err := client.readText()
	if err != nil {
		return nil, err
	}

	if text == pingFrame {
		if err := client.writeText(pongFrame); err != nil {
			return nil, err
		}
		return Ping{}, nil
	}

	opcode, payload, err := DecodeFrame(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if opcode != OpcodeEvent {
		return nil, fmt.Errorf("%w: expected event frame, got opcode %s", ErrInvalidResponse, opcode)
	}
	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	event, err := ParseEvent(envelope)
	if err != nil {
		client.logger.Debug("socket.io event rejected", "event", envelope.Name, "error", err)
		return nil, err
	}
	return event, nil
}

// Close half-closes the connection with a normal-closure close frame
// and releases it. Close is safe to call concurrently with a blocked
// WaitForEvent. A second Close returns ErrClosed.
func (client *Client) Close() error {
	if client.closed.Swap(true) {
		return ErrClosed
	}
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	writeErr := client.connection.WriteControl(websocket.CloseMessage, message, time.Now().Add(closeWriteTimeout)) //nolint:realclock // kernel I/O deadline
	closeErr := client.connection.Close()
	client.logger.Debug("socket.io connection closed")
	if err := errors.Join(writeErr, closeErr); err != nil && !netutil.IsExpectedCloseError(err) && !errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("%w: closing: %w", ErrConnection, err)
	}
	return nil
}

// Bare keep-alive frames. They do not use the opcode+JSON framing.
var (
	pingFrame = encodeRaw(OpcodePing, nil)
	pongFrame = encodeRaw(OpcodePong, nil)
)

// readText reads one frame and requires it to be a text frame.
func (client *Client) readText() (string, error) {
	if client.closed.Load() {
		return "", ErrClosed
	}
	messageType, data, err := client.connection.ReadMessage()
	if err != nil {
		if client.closed.Load() {
			return "", ErrClosed
		}
		return "", fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if messageType != websocket.TextMessage {
		return "", fmt.Errorf("%w: unexpected non-text frame (type %d)", ErrInvalidResponse, messageType)
	}
	text := string(data)
	client.logger.Debug("socket.io frame received", "frame", truncateFrame(text))
	return text, nil
}

func (client *Client) writeText(text string) error {
	if client.closed.Load() {
		return ErrClosed
	}
	client.writeMutex.Lock()
	defer client.writeMutex.Unlock()
	if err := client.connection.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		if client.closed.Load() {
			return ErrClosed
		}
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}

// withContext maps ctx onto the connection's deadlines for the
// duration of operation: a context deadline becomes the read and write
// deadline, and cancellation expires them immediately so a blocked
// read returns. Deadlines are cleared afterwards. A read that times
// out leaves the websocket unusable; every failure is terminal for the
// Client.
func (client *Client) withContext(ctx context.Context, operation func() error) error {
	defer func() {
		client.connection.SetReadDeadline(time.Time{})
		client.connection.SetWriteDeadline(time.Time{})
	}()
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		client.connection.SetReadDeadline(deadline)
		client.connection.SetWriteDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		client.connection.SetReadDeadline(time.Now()) //nolint:realclock // kernel I/O deadline
	})
	defer stop()

	err := operation()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", err, ctxErr)
	}
	// The socket deadline can expire a moment before the context's
	// own timer marks it done.
	if hasDeadline && !time.Now().Before(deadline) { //nolint:realclock // compared against a kernel I/O deadline
		return fmt.Errorf("%w: %w", err, context.DeadlineExceeded)
	}
	return err
}

// withServerMessage attaches the server's optional {"message": ...}
// explanation to an application-layer error.
func withServerMessage(sentinel error, reply Envelope) error {
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(reply.Payload, &body) == nil && body.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, body.Message)
	}
	return sentinel
}

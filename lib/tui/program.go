// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrStopped is returned by Draw after the program has stopped.
var ErrStopped = errors.New("terminal stopped")

// eventBuffer bounds how far the bubbletea loop can run ahead of the
// consumer before key decoding stalls.
const eventBuffer = 64

// ProgramOptions configures StartProgram.
type ProgramOptions struct {
	// Input and Output default to the process's terminal.
	Input  io.Reader
	Output io.Writer

	// Logger receives lifecycle records. Nil discards.
	Logger *slog.Logger
}

// Program is a Terminal backed by a bubbletea program running on the
// alternate screen. bubbletea decodes input and diffs output; frames
// come from Draw and are shown on bubbletea's next render.
type Program struct {
	program *tea.Program
	logger  *slog.Logger

	events chan Event
	frame  atomic.Pointer[string]

	// redraw coalesces Draw calls. The pump goroutine turns each
	// signal into a redrawMsg so Draw never waits on bubbletea.
	redraw chan struct{}

	stopping  chan struct{}
	done      chan struct{}
	runErr    error
	closeErr  error
	closeOnce sync.Once
}

type redrawMsg struct{}

// StartProgram takes over the terminal and starts delivering events.
// Cancelling ctx stops the program without an error. Call Close to
// restore the terminal.
func StartProgram(ctx context.Context, options ProgramOptions) *Program {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	program := &Program{
		logger:   logger,
		events:   make(chan Event, eventBuffer),
		redraw:   make(chan struct{}, 1),
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
	empty := ""
	program.frame.Store(&empty)

	teaOptions := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if options.Input != nil {
		teaOptions = append(teaOptions, tea.WithInput(options.Input))
	}
	if options.Output != nil {
		teaOptions = append(teaOptions, tea.WithOutput(options.Output))
	}
	program.program = tea.NewProgram(programModel{program: program}, teaOptions...)

	go program.run(ctx)
	go program.pumpRedraws()
	return program
}

func (program *Program) run(ctx context.Context) {
	defer close(program.done)
	defer close(program.events)

	_, err := program.program.Run()
	if err != nil && ctx.Err() == nil {
		program.runErr = err
		program.logger.Error("terminal program stopped", "error", err)
	}
}

func (program *Program) pumpRedraws() {
	for {
		select {
		case <-program.redraw:
			program.program.Send(redrawMsg{})
		case <-program.done:
			return
		}
	}
}

// Events implements Terminal.
func (program *Program) Events() <-chan Event {
	return program.events
}

// Draw implements Terminal.
func (program *Program) Draw(frame string) error {
	select {
	case <-program.done:
		return ErrStopped
	default:
	}
	program.frame.Store(&frame)
	select {
	case program.redraw <- struct{}{}:
	default:
	}
	return nil
}

// SupportsKeyRelease implements Terminal. bubbletea reports every key
// as a press, auto-repeats included.
func (program *Program) SupportsKeyRelease() bool {
	return false
}

// Err implements Terminal.
func (program *Program) Err() error {
	select {
	case <-program.done:
		return program.runErr
	default:
		return nil
	}
}

// Close stops the program, restores the terminal and waits for the
// bubbletea loop to exit. It is safe to call more than once.
func (program *Program) Close() error {
	program.closeOnce.Do(func() {
		close(program.stopping)
		program.program.Quit()
		<-program.done
		program.closeErr = program.runErr
	})
	return program.closeErr
}

// forward hands an event to the consumer. Once Close has been called
// nobody reads Events any more, so forwarding gives up instead of
// stalling bubbletea's shutdown.
func (program *Program) forward(event Event) {
	select {
	case program.events <- event:
	case <-program.stopping:
	}
}

// programModel is the bubbletea side of Program. It holds no state of
// its own: input goes out through forward and View shows the last
// frame passed to Draw.
type programModel struct {
	program *Program
}

func (model programModel) Init() tea.Cmd { return nil }

func (model programModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		model.program.forward(KeyEvent{Key: message, Phase: KeyPress})
	case tea.WindowSizeMsg:
		model.program.forward(ResizeEvent{Width: message.Width, Height: message.Height})
	case redrawMsg:
	}
	return model, nil
}

func (model programModel) View() string {
	return *model.program.frame.Load()
}

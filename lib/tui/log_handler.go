// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// StatusFadeDelay is how long a log record stays in the status line.
const StatusFadeDelay = 5 * time.Second

// StatusRecord is the record currently shown in the status line.
type StatusRecord struct {
	// Summary is "message (key=value, ...)".
	Summary string
	Level   slog.Level
	Time    time.Time
}

// StatusLine holds the most recent record delivered by a LogHandler.
// The handler writes from any goroutine; the render loop reads.
type StatusLine struct {
	mutex  sync.Mutex
	record StatusRecord
	set    bool
}

// Current returns the latest record if it is younger than
// StatusFadeDelay at now.
func (status *StatusLine) Current(now time.Time) (StatusRecord, bool) {
	status.mutex.Lock()
	defer status.mutex.Unlock()
	if !status.set || now.Sub(status.record.Time) >= StatusFadeDelay {
		return StatusRecord{}, false
	}
	return status.record, true
}

func (status *StatusLine) store(record StatusRecord) {
	status.mutex.Lock()
	defer status.mutex.Unlock()
	status.record = record
	status.set = true
}

// LogHandler is a slog.Handler that routes records into a StatusLine.
// Records below the configured level are dropped. Writing to stderr
// while the alternate screen is up would corrupt the display, so this
// is the only handler that reaches the screen.
//
// Handlers derived via WithAttrs/WithGroup share the StatusLine.
type LogHandler struct {
	level  slog.Leveler
	status *StatusLine

	// attrs are preformatted with the groups in effect when they were
	// added.
	attrs  []string
	groups []string
}

// NewLogHandler creates a handler that stores records at or above
// level in status.
func NewLogHandler(level slog.Leveler, status *StatusLine) *LogHandler {
	return &LogHandler{level: level, status: status}
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record and stores it in the status line.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	attrParts := sliceClone(handler.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, handler.formatAttr(attr))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	handler.status.store(StatusRecord{
		Summary: summary,
		Level:   record.Level,
		Time:    record.Time,
	})
	return nil
}

func (handler *LogHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if len(handler.groups) > 0 {
		key = strings.Join(handler.groups, ".") + "." + key
	}
	return fmt.Sprintf("%s=%s", key, attr.Value)
}

// WithAttrs returns a new handler with the given attributes appended.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formatted := sliceClone(handler.attrs)
	for _, attr := range attrs {
		formatted = append(formatted, handler.formatAttr(attr))
	}
	return &LogHandler{
		level:  handler.level,
		status: handler.status,
		attrs:  formatted,
		groups: sliceClone(handler.groups),
	}
}

// WithGroup returns a new handler with the given group name appended.
func (handler *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	return &LogHandler{
		level:  handler.level,
		status: handler.status,
		attrs:  sliceClone(handler.attrs),
		groups: append(sliceClone(handler.groups), name),
	}
}

// sliceClone returns a shallow copy of a slice. Avoids aliasing when
// building derived handlers with WithAttrs/WithGroup.
func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}

// Copyright 2026 The ft_transcendence Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
)

// Logger returns a debug-level logger that writes each record to
// t.Log. Records emitted after the test finishes are dropped; a
// background goroutine that outlives its test would otherwise panic
// inside the testing package.
func Logger(t testing.TB) *slog.Logger {
	t.Helper()
	writer := &testWriter{t: t}
	t.Cleanup(writer.finish)
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct {
	mutex    sync.Mutex
	t        testing.TB
	finished bool
}

func (writer *testWriter) Write(data []byte) (int, error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()
	if !writer.finished {
		writer.t.Log(string(bytes.TrimRight(data, "\n")))
	}
	return len(data), nil
}

func (writer *testWriter) finish() {
	writer.mutex.Lock()
	writer.finished = true
	writer.mutex.Unlock()
}

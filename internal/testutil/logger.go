// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger whose lines go to t.Log, so
// they only show for failing tests or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return NewTestLoggerAt(t, slog.LevelDebug)
}

// NewTestLoggerAt is NewTestLogger with a minimum level.
func NewTestLoggerAt(t testing.TB, level slog.Leveler) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{Level: level}))
}

type tbWriter struct{ tb testing.TB }

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}

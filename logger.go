package mandelzoom

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all log records. Enabled returns false so callers skip
// message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// SetLogger configures the logger used by mandelzoom and its sub-packages.
// By default the module produces no log output. Pass nil to restore the
// silent default. Safe for concurrent use.
//
// Levels used:
//   - [slog.LevelDebug]: per-pass diagnostics (mode, timings, reference orbit length)
//   - [slog.LevelError]: failed or panicked compute passes
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current module logger. Sub-packages call this to share
// one logger configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

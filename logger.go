// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backdrop

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/backdrop/internal/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for backdrop and its renderer. Pass nil
// to restore the silent default. Backends are configured by whoever creates
// them; integration/gogpuwin hands this logger to the HAL backend.
//
// Log levels used:
//   - [slog.LevelDebug]: resize and pipeline diagnostics
//   - [slog.LevelInfo]: adapter, surface format and pipeline creation
//   - [slog.LevelWarn]: resources still alive at shutdown
//   - [slog.LevelError]: skipped frames
//
// Example:
//
//	backdrop.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	render.SetLogger(l)
}

// Logger returns the current logger. Integration packages use it to share
// the configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func slogger() *slog.Logger { return loggerPtr.Load() }

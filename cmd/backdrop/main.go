// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command backdrop opens a window with an animated noise background and a
// line of text drawn over it.
//
// Set BACKDROP_LOG to debug, info, warn or error to log to stderr.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/backdrop"
	"github.com/gogpu/backdrop/integration/gogpuwin"
	"github.com/gogpu/gogpu"
)

func main() {
	if h := logHandler(os.Getenv("BACKDROP_LOG")); h != nil {
		backdrop.SetLogger(slog.New(h))
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("backdrop").
		WithSize(800, 600).
		WithContinuousRender(true))

	if err := gogpuwin.Run(app); err != nil {
		backdrop.Logger().Error("backdrop: exiting", "err", err)
		os.Exit(1)
	}
}

// logHandler returns a stderr handler for level, or nil when logging is off
// or level is unknown.
func logHandler(level string) slog.Handler {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return nil
	}
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
}

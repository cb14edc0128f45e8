// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"testing"
)

func TestLogHandler(t *testing.T) {
	tests := []struct {
		env     string
		want    slog.Level
		enabled bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", 0, false},
		{"verbose", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			h := logHandler(tt.env)
			if !tt.enabled {
				if h != nil {
					t.Fatalf("logHandler(%q) = %v, want nil", tt.env, h)
				}
				return
			}
			if h == nil {
				t.Fatalf("logHandler(%q) = nil", tt.env)
			}
			if !h.Enabled(context.Background(), tt.want) {
				t.Errorf("level %v disabled", tt.want)
			}
			if h.Enabled(context.Background(), tt.want-1) {
				t.Errorf("level below %v enabled", tt.want)
			}
		})
	}
}

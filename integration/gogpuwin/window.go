// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuwin

import "github.com/gogpu/backdrop"

// Window adapts gogpu's per-frame callback to backdrop.Window.
//
// gogpu reports the drawable size on every frame instead of sending resize
// events; Frame turns size changes into Resized events.
type Window struct {
	width  uint32
	height uint32

	redraw func()
}

var _ backdrop.Window = (*Window)(nil)

// NewWindow creates a window with no known size. redraw may be nil when the
// host renders continuously.
func NewWindow(redraw func()) *Window {
	return &Window{redraw: redraw}
}

// Size returns the size seen on the last frame.
func (w *Window) Size() (width, height uint32) { return w.width, w.height }

// RequestRedraw schedules another frame.
func (w *Window) RequestRedraw() {
	if w.redraw != nil {
		w.redraw()
	}
}

// Frame returns the events for a frame drawn at width x height. A size
// change yields Resized before RedrawRequested; a non-positive size yields
// nothing.
func (w *Window) Frame(width, height int) []backdrop.Event {
	if width <= 0 || height <= 0 {
		return nil
	}
	events := make([]backdrop.Event, 0, 2)
	if uint32(width) != w.width || uint32(height) != w.height {
		w.width, w.height = uint32(width), uint32(height)
		events = append(events, backdrop.Resized{Width: w.width, Height: w.height})
	}
	return append(events, backdrop.RedrawRequested{})
}

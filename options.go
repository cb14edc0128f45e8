// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backdrop

import (
	"time"

	"github.com/gogpu/backdrop/internal/render"
	"github.com/gogpu/backdrop/text"
)

// Palette is a fixed pair of linear RGB colours. The effect blends from
// Background to Foreground.
type Palette struct {
	Background [3]float32
	Foreground [3]float32
}

// Option configures an App.
//
// Example:
//
//	app, err := backdrop.NewApp(backend, window,
//	    backdrop.WithText("hello"),
//	    backdrop.WithFontSize(96),
//	    backdrop.WithSeed(42),
//	)
type Option func(*options)

type options struct {
	text     string
	fontSize float64
	interval time.Duration
	seed     uint64
	seeded   bool
	now      func() time.Time
	palette  *Palette
}

func defaultOptions() options {
	return options{
		text:     text.DefaultText,
		fontSize: text.DefaultSize,
		interval: render.DefaultFrameInterval,
		now:      time.Now,
	}
}

// WithText sets the overlay string.
func WithText(s string) Option {
	return func(o *options) {
		o.text = s
	}
}

// WithFontSize sets the overlay font size in pixels.
func WithFontSize(px float64) Option {
	return func(o *options) {
		o.fontSize = px
	}
}

// WithFrameInterval sets the minimum time per frame. The default caps the
// frame rate at 60 Hz.
func WithFrameInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithSeed makes the random palette reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithClock replaces time.Now for animation time and frame pacing.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithPalette uses p instead of a random palette.
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.palette = &p
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backdrop

import (
	"fmt"
	"math/rand/v2"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/backdrop/internal/color"
	"github.com/gogpu/backdrop/internal/render"
	"github.com/gogpu/backdrop/internal/shaders"
	"github.com/gogpu/backdrop/text"
)

// Event is a window event delivered to App.HandleEvent.
type Event interface {
	isEvent()
}

// CloseRequested asks the application to exit.
type CloseRequested struct{}

// Resized reports a new window size in pixels.
type Resized struct {
	Width  uint32
	Height uint32
}

// RedrawRequested asks for the next frame.
type RedrawRequested struct{}

func (CloseRequested) isEvent()  {}
func (Resized) isEvent()         {}
func (RedrawRequested) isEvent() {}

// Window is the part of the host window the App needs.
type Window interface {
	// Size returns the current drawable size in pixels.
	Size() (width, height uint32)

	// RequestRedraw schedules another RedrawRequested event.
	RequestRedraw()
}

// App holds the renderer for one window and reacts to its events.
type App struct {
	window   Window
	ctx      *render.Context
	composer *render.Composer
	pacer    *render.Pacer
	palette  color.Palette
	closed   bool
}

// NewApp validates the shaders, rasterizes the text, picks the palette and
// creates every GPU resource. Nothing is drawn until the first Resized
// event.
func NewApp(backend gpucore.Backend, window Window, opts ...Option) (*App, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if window == nil {
		return nil, ErrNilWindow
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := shaders.Validate(); err != nil {
		return nil, err
	}

	bm, err := text.Rasterize(o.text, text.WithSize(o.fontSize))
	if err != nil {
		return nil, fmt.Errorf("backdrop: rasterize %q: %w", o.text, err)
	}

	palette := choosePalette(o)

	w, h := window.Size()
	ctx, err := render.NewContext(backend, w, h)
	if err != nil {
		return nil, err
	}
	composer, err := render.NewComposer(ctx, render.ComposerConfig{
		Text:    bm,
		Palette: palette,
		Now:     o.now,
	})
	if err != nil {
		return nil, err
	}

	pacer := render.NewPacer(o.interval)
	pacer.Now = o.now

	slogger().Info("backdrop: ready",
		"text", o.text,
		"text_width", bm.Width,
		"text_height", bm.Height,
		"format", ctx.Format(),
	)
	return &App{
		window:   window,
		ctx:      ctx,
		composer: composer,
		pacer:    pacer,
		palette:  palette,
	}, nil
}

func choosePalette(o options) color.Palette {
	if o.palette != nil {
		return color.Palette{BG: o.palette.Background, FG: o.palette.Foreground}
	}
	var r *rand.Rand
	if o.seeded {
		r = color.NewRand(o.seed)
	} else {
		r = color.NewRand(rand.Uint64())
	}
	return color.RandomPalette(r)
}

// HandleEvent processes one window event and reports whether the
// application should exit. Frame errors are handled here and never
// returned: a lost or outdated surface is reconfigured to the current
// window size, anything else is logged and the frame skipped.
func (a *App) HandleEvent(ev Event) (exit bool) {
	if a.closed {
		return true
	}
	switch ev := ev.(type) {
	case CloseRequested:
		return true
	case Resized:
		if err := a.composer.Resize(ev.Width, ev.Height); err != nil {
			slogger().Error("backdrop: resize failed", "width", ev.Width, "height", ev.Height, "err", err)
		}
	case RedrawRequested:
		a.redraw()
		a.window.RequestRedraw()
	}
	return false
}

func (a *App) redraw() {
	err := a.pacer.Pace(a.composer.Draw)
	switch {
	case err == nil:
	case gpucore.Recoverable(err):
		w, h := a.window.Size()
		slogger().Debug("backdrop: surface needs reconfiguring", "err", err, "width", w, "height", h)
		if err := a.composer.Resize(w, h); err != nil {
			slogger().Error("backdrop: resize failed", "width", w, "height", h, "err", err)
		}
	default:
		slogger().Error("backdrop: unable to render frame", "err", err)
	}
}

// Palette returns the palette in use.
func (a *App) Palette() Palette {
	return Palette{Background: a.palette.BG, Foreground: a.palette.FG}
}

// Close releases every GPU resource the App created. The backend itself
// stays with the caller. Calling Close again does nothing.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.composer.Close()
}

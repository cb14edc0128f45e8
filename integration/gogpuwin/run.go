// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuwin

import (
	"errors"
	"fmt"

	"github.com/gogpu/backdrop"
	"github.com/gogpu/backdrop/backend/native"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// Runner drives a backdrop.App from gogpu's draw and close callbacks.
//
// The App is created lazily on the first frame where gogpu's device is
// ready. If that fails the error is kept and every later frame does
// nothing.
type Runner struct {
	opts []backdrop.Option

	window  *Window
	surface *Surface
	backend *native.Backend
	app     *backdrop.App

	err  error
	done bool
}

// NewRunner creates a runner that passes opts to backdrop.NewApp.
func NewRunner(opts ...backdrop.Option) *Runner {
	return &Runner{
		opts:   opts,
		window: NewWindow(nil),
	}
}

// Frame handles one draw callback. provider is nil until gogpu finishes
// initialising; view is the surface view for this frame.
func (r *Runner) Frame(provider gpucontext.DeviceProvider, view hal.TextureView, width, height int) {
	if r.done {
		return
	}
	if r.app == nil {
		if provider == nil {
			return
		}
		if err := r.start(provider); err != nil {
			r.err = err
			r.done = true
			backdrop.Logger().Error("gogpuwin: unable to start", "err", err)
			return
		}
	}
	events := r.window.Frame(width, height)
	if len(events) == 0 {
		return
	}
	r.surface.SetFrame(view, uint32(width), uint32(height))
	for _, ev := range events {
		if r.app.HandleEvent(ev) {
			r.shutdown()
			return
		}
	}
}

func (r *Runner) start(provider gpucontext.DeviceProvider) error {
	device, queue, err := HALDevice(provider)
	if err != nil {
		return err
	}
	native.SetLogger(backdrop.Logger())
	surface := NewSurface(provider.SurfaceFormat())
	backend, err := native.New(native.Config{
		Device:  device,
		Queue:   queue,
		Surface: surface,
		Info:    adapterInfo(provider),
	})
	if err != nil {
		return fmt.Errorf("gogpuwin: create backend: %w", err)
	}
	app, err := backdrop.NewApp(backend, r.window, r.opts...)
	if err != nil {
		backend.Destroy()
		return err
	}
	r.surface, r.backend, r.app = surface, backend, app
	return nil
}

// Close delivers CloseRequested and releases every GPU resource while
// gogpu's device is still alive.
func (r *Runner) Close() {
	if r.app != nil && !r.done {
		r.app.HandleEvent(backdrop.CloseRequested{})
	}
	r.shutdown()
}

func (r *Runner) shutdown() {
	r.done = true
	if r.app != nil {
		r.app.Close()
		r.app = nil
	}
	if r.backend != nil {
		r.backend.Destroy()
		r.backend = nil
	}
}

// Err returns the error that stopped the runner, if any.
func (r *Runner) Err() error { return r.err }

// Presented returns how many frames reached the surface.
func (r *Runner) Presented() int {
	if r.surface == nil {
		return 0
	}
	return r.surface.Presented()
}

// Run attaches a Runner to app and runs gogpu's event loop. It returns the
// loop's error, or the error that prevented the renderer from starting. A
// startup failure quits the loop.
func Run(app *gogpu.App, opts ...backdrop.Option) error {
	r := NewRunner(opts...)
	r.window = NewWindow(app.RequestRedraw)
	app.OnDraw(func(dc *gogpu.Context) {
		provider := app.GPUContextProvider()
		if provider == nil {
			return
		}
		r.Frame(provider, surfaceView(dc.SurfaceView()), dc.Width(), dc.Height())
		if r.Err() != nil {
			app.Quit()
		}
	})
	app.OnClose(r.Close)

	return errors.Join(app.Run(), r.Err())
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpuwin runs a backdrop.App inside a gogpu window.
//
// gogpu owns the window, the device and the swapchain. This package borrows
// the HAL device and queue from the app's GPU context provider, feeds each
// frame's surface view to the native backend, and turns gogpu callbacks into
// backdrop events.
//
// Usage:
//
//	app := gogpu.NewApp(gogpu.DefaultConfig().
//	    WithTitle("backdrop").
//	    WithSize(800, 600).
//	    WithContinuousRender(true))
//
//	if err := gogpuwin.Run(app, backdrop.WithSeed(7)); err != nil {
//	    log.Fatal(err)
//	}
package gogpuwin

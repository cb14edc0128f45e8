// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backdrop renders a full-window animated noise background with a
// line of text composited over it.
//
// Every frame runs three GPU passes. The first draws thresholded value noise
// in two random palette colours into an offscreen image. The second draws
// the text over it, inverting what lies underneath. The third copies the
// offscreen image to the window with a slow time-varying wobble.
//
// # Quick Start
//
// An App is driven by window events:
//
//	app, err := backdrop.NewApp(backend, window)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer app.Close()
//
//	for ev := range events {
//		if app.HandleEvent(ev) {
//			break
//		}
//	}
//
// The gogpuwin package wires an App to a gogpu window; cmd/backdrop is the
// ready-made program.
//
// # Logging
//
// backdrop is silent by default. SetLogger enables log/slog output for the
// package and the renderer below it.
package backdrop

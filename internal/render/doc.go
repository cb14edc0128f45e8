// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render owns the GPU state of the backdrop: the device context,
// the three render pipelines, the offscreen target and the per-frame
// composition.
//
// A frame is three passes recorded into one batch:
//
//	effect  -> offscreen target (noise background)
//	text    -> offscreen target (blended over the effect)
//	post    -> surface (distorted copy of the offscreen target)
//
// All state is owned by a single goroutine. Nothing here is safe for
// concurrent use.
package render

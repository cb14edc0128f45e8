// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucore defines the minimal graphics backend surface used by the
// backdrop renderer.
//
// The [Backend] interface abstracts over concrete GPU APIs so that the frame
// composition logic in internal/render never touches a native handle:
//
//	          +--------------------+
//	          |  internal/render   |
//	          | (Composer, Pacer)  |
//	          +---------+----------+
//	                    |
//	          +---------v----------+
//	          |  gpucore.Backend   |
//	          +---------+----------+
//	                    |
//	          +---------v----------+
//	          |   backend/native   |
//	          |   (wgpu/hal)       |
//	          +--------------------+
//
// # Resource Management
//
// GPU resources are referenced by opaque IDs ([BufferID], [TextureID], ...).
// Backends map IDs to native objects. Resources must be destroyed explicitly;
// an ID is invalid after destruction and is never reused.
//
// # Command Recording
//
// Frames are described as data: a [CommandBatch] holds an ordered list of
// [RenderPass] values, each with an ordered list of [DrawCall] values.
// [Backend.Submit] encodes the whole batch into one command buffer and
// submits it as a single unit, so pass order in the batch is execution order.
//
// # Surface Errors
//
// [Backend.AcquireSurfaceTexture] reports transient failures through
// [SurfaceError]. Lost and Outdated surfaces are recoverable by
// reconfiguring; everything else is reported as [SurfaceErrorOther].
package gpucore

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native implements [gpucore.Backend] directly on a gogpu/wgpu HAL
// device.
//
// The backend owns no window. Presentable images come from a [SurfaceSource]:
//
//   - [OffscreenSurface] renders into a private texture (headless, tests)
//   - integration/gogpuwin supplies the view gogpu acquired for the frame
//
// Resources are tracked in ID maps so callers never hold hal handles.
// Command encoders are pooled and command buffers are released once the
// queue reports their submission as completed. Destroying a resource is
// deferred the same way: the HAL object is freed only after every
// submission made before the destroy call has completed.
package native

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuwin

import (
	"fmt"

	"github.com/gogpu/backdrop/backend/native"
	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

// Surface is a native.SurfaceSource over the views gogpu hands to OnDraw.
//
// gogpu acquires and presents the swapchain image itself, so Configure only
// records the requested size and Present only counts frames. Each view can
// be acquired once.
type Surface struct {
	format gputypes.TextureFormat

	view       hal.TextureView
	viewWidth  uint32
	viewHeight uint32

	width  uint32
	height uint32

	presented int
}

var _ native.SurfaceSource = (*Surface)(nil)

// NewSurface creates a surface for gogpu's swapchain format.
func NewSurface(format gputypes.TextureFormat) *Surface {
	return &Surface{format: format}
}

// SetFrame hands over the view for the current frame. A nil view marks the
// frame as unavailable.
func (s *Surface) SetFrame(view hal.TextureView, width, height uint32) {
	s.view, s.viewWidth, s.viewHeight = view, width, height
}

// Formats returns the swapchain format.
func (s *Surface) Formats() []gputypes.TextureFormat {
	return []gputypes.TextureFormat{s.format}
}

// Configure records the size the renderer expects. Only the swapchain format
// is accepted.
func (s *Surface) Configure(width, height uint32, format gputypes.TextureFormat) error {
	if format != s.format {
		return fmt.Errorf("gogpuwin: surface format %v, swapchain uses %v", format, s.format)
	}
	s.width, s.height = width, height
	return nil
}

// Acquire returns the current frame's view. A missing view reports Lost and
// a view whose size differs from the configured one reports Outdated.
func (s *Surface) Acquire() (hal.TextureView, uint32, uint32, error) {
	view := s.view
	s.view = nil
	if view == nil || s.width == 0 || s.height == 0 {
		return nil, 0, 0, gpucore.ErrSurfaceLost
	}
	if s.viewWidth != s.width || s.viewHeight != s.height {
		return nil, 0, 0, gpucore.ErrSurfaceOutdated
	}
	return view, s.width, s.height, nil
}

// Present counts the frame. gogpu presents after OnDraw returns.
func (s *Surface) Present() error {
	s.presented++
	return nil
}

// Presented returns how many frames were presented.
func (s *Surface) Presented() int { return s.presented }

// surfaceView returns the HAL view behind a gogpu surface view, or nil when
// the frame has none.
func surfaceView(sv *wgpu.TextureView) hal.TextureView {
	if sv == nil {
		return nil
	}
	return sv.HalTextureView()
}

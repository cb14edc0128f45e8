// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SurfaceSource supplies presentable images to a Backend.
//
// Acquire returns a view that stays valid until the following Present.
// Configure is called only after every submitted frame has completed, so it
// may free earlier images.
// Errors may be plain HAL errors; the backend classifies them with
// ClassifySurfaceError.
type SurfaceSource interface {
	Formats() []gputypes.TextureFormat
	Configure(width, height uint32, format gputypes.TextureFormat) error
	Acquire() (view hal.TextureView, width, height uint32, err error)
	Present() error
}

// OffscreenSurface renders into a private texture instead of a window.
// It backs headless runs and tests.
type OffscreenSurface struct {
	device  hal.Device
	formats []gputypes.TextureFormat

	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32

	presented int
}

var _ SurfaceSource = (*OffscreenSurface)(nil)

// NewOffscreenSurface creates an unconfigured offscreen surface. With no
// formats it offers RGBA8UnormSrgb.
func NewOffscreenSurface(device hal.Device, formats ...gputypes.TextureFormat) *OffscreenSurface {
	if len(formats) == 0 {
		formats = []gputypes.TextureFormat{gputypes.TextureFormatRGBA8UnormSrgb}
	}
	return &OffscreenSurface{device: device, formats: formats}
}

// Formats returns the formats the surface was created with.
func (s *OffscreenSurface) Formats() []gputypes.TextureFormat { return s.formats }

// Configure reallocates the backing texture.
func (s *OffscreenSurface) Configure(width, height uint32, format gputypes.TextureFormat) error {
	s.release()
	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_surface",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen surface texture: %w", err)
	}
	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           "offscreen_surface_view",
		Format:          format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return fmt.Errorf("create offscreen surface view: %w", err)
	}
	s.tex, s.view, s.width, s.height = tex, view, width, height
	return nil
}

// Acquire returns the backing view. An unconfigured surface reports Lost.
func (s *OffscreenSurface) Acquire() (hal.TextureView, uint32, uint32, error) {
	if s.view == nil {
		return nil, 0, 0, gpucore.ErrSurfaceLost
	}
	return s.view, s.width, s.height, nil
}

// Present counts the frame.
func (s *OffscreenSurface) Present() error {
	s.presented++
	return nil
}

// Presented returns how many frames were presented.
func (s *OffscreenSurface) Presented() int { return s.presented }

// Size returns the configured size.
func (s *OffscreenSurface) Size() (width, height uint32) { return s.width, s.height }

// Destroy releases the backing texture.
func (s *OffscreenSurface) Destroy() { s.release() }

func (s *OffscreenSurface) release() {
	if s.tex == nil {
		return
	}
	s.device.DestroyTextureView(s.view)
	s.device.DestroyTexture(s.tex)
	s.tex, s.view, s.width, s.height = nil, nil, 0, 0
}

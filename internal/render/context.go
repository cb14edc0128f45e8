// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
)

// ErrNoSurfaceFormat is returned when the backend offers no surface format.
var ErrNoSurfaceFormat = errors.New("render: no supported surface format")

// Context pairs a backend with the negotiated surface format and the
// current surface size.
type Context struct {
	backend gpucore.Backend
	format  gputypes.TextureFormat
	width   uint32
	height  uint32
}

// NewContext chooses a surface format, preferring sRGB. width and height
// are the initial window size; the surface stays unconfigured until the
// first Reconfigure.
func NewContext(backend gpucore.Backend, width, height uint32) (*Context, error) {
	if backend == nil {
		return nil, errors.New("render: nil backend")
	}
	format, ok := gpucore.ChooseSurfaceFormat(backend.SurfaceFormats())
	if !ok {
		return nil, ErrNoSurfaceFormat
	}
	info := backend.Info()
	slogger().Info("render: device ready",
		"adapter", info.Name,
		"backend", info.Backend,
		"format", format,
	)
	return &Context{
		backend: backend,
		format:  format,
		width:   width,
		height:  height,
	}, nil
}

// Reconfigure applies a new surface size. Zero-area sizes are ignored.
func (c *Context) Reconfigure(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	err := c.backend.ConfigureSurface(gpucore.SurfaceConfig{
		Width:  width,
		Height: height,
		Format: c.format,
	})
	if err != nil {
		return fmt.Errorf("render: configure surface %dx%d: %w", width, height, err)
	}
	c.width, c.height = width, height
	return nil
}

// Backend returns the underlying backend.
func (c *Context) Backend() gpucore.Backend { return c.backend }

// Format returns the surface format.
func (c *Context) Format() gputypes.TextureFormat { return c.format }

// Size returns the last configured size, or the initial size before the
// first Reconfigure.
func (c *Context) Size() (width, height uint32) { return c.width, c.height }

// Aspect returns width divided by height, or 1 for a degenerate size.
func (c *Context) Aspect() float32 {
	if c.width == 0 || c.height == 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilDevice is returned when the backend is created without a device or queue.
	ErrNilDevice = errors.New("native: nil hal device or queue")

	// ErrNilSurface is returned when the backend is created without a surface source.
	ErrNilSurface = errors.New("native: nil surface source")

	// ErrUnknownResource is returned when an ID does not name a live resource.
	ErrUnknownResource = errors.New("native: unknown resource id")

	// ErrDestroyed is returned by operations on a destroyed backend.
	ErrDestroyed = errors.New("native: backend destroyed")

	// ErrInvalidSize is returned for zero or empty sizes.
	ErrInvalidSize = errors.New("native: invalid size")
)

// ClassifySurfaceError maps a HAL surface failure to a *gpucore.SurfaceError.
// nil stays nil and errors that already carry a kind are returned unchanged.
func ClassifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	var se *gpucore.SurfaceError
	if errors.As(err, &se) {
		return err
	}
	switch {
	case errors.Is(err, hal.ErrSurfaceLost):
		return gpucore.NewSurfaceError(gpucore.SurfaceErrorLost, err)
	case errors.Is(err, hal.ErrSurfaceOutdated):
		return gpucore.NewSurfaceError(gpucore.SurfaceErrorOutdated, err)
	default:
		return gpucore.NewSurfaceError(gpucore.SurfaceErrorOther, err)
	}
}

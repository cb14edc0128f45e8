// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

import (
	"errors"
	"fmt"
)

// SurfaceErrorKind classifies a surface acquisition failure.
type SurfaceErrorKind uint8

const (
	// SurfaceErrorOther is any failure that reconfiguring will not fix.
	SurfaceErrorOther SurfaceErrorKind = iota

	// SurfaceErrorLost means the surface must be reconfigured before use.
	SurfaceErrorLost

	// SurfaceErrorOutdated means the surface no longer matches the window.
	SurfaceErrorOutdated
)

// String returns the kind name.
func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceErrorLost:
		return "lost"
	case SurfaceErrorOutdated:
		return "outdated"
	default:
		return "other"
	}
}

// Sentinel surface errors for use with errors.Is.
var (
	ErrSurfaceLost     = &SurfaceError{Kind: SurfaceErrorLost}
	ErrSurfaceOutdated = &SurfaceError{Kind: SurfaceErrorOutdated}
)

// SurfaceError is returned when the next surface image cannot be acquired.
type SurfaceError struct {
	Kind SurfaceErrorKind

	// Err is the underlying cause, if any.
	Err error
}

// NewSurfaceError wraps err as a surface error of the given kind.
func NewSurfaceError(kind SurfaceErrorKind, err error) *SurfaceError {
	return &SurfaceError{Kind: kind, Err: err}
}

func (e *SurfaceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gpucore: surface %s: %v", e.Kind, e.Err)
	}
	return "gpucore: surface " + e.Kind.String()
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// Is matches any SurfaceError of the same kind, so that a wrapped
// *SurfaceError compares equal to ErrSurfaceLost or ErrSurfaceOutdated.
func (e *SurfaceError) Is(target error) bool {
	t, ok := target.(*SurfaceError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Recoverable reports whether err is a Lost or Outdated surface error.
// Such errors are cleared by reconfiguring the surface.
func Recoverable(err error) bool {
	var se *SurfaceError
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == SurfaceErrorLost || se.Kind == SurfaceErrorOutdated
}

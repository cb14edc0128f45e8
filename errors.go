// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backdrop

import "errors"

var (
	// ErrNilBackend is returned by NewApp without a backend.
	ErrNilBackend = errors.New("backdrop: nil backend")

	// ErrNilWindow is returned by NewApp without a window.
	ErrNilWindow = errors.New("backdrop: nil window")
)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import "errors"

var (
	// ErrEmptyText is returned when the normalised string has no glyphs.
	ErrEmptyText = errors.New("text: empty text")

	// ErrInvalidSize is returned for a non-positive font size.
	ErrInvalidSize = errors.New("text: invalid font size")
)

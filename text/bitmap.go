// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import "image"

// Bitmap is an RGBA image with premultiplied alpha, rows stored top first
// with no padding.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int { return 4 * b.Width }

// RGBAAt returns the pixel at (x, y).
func (b *Bitmap) RGBAAt(x, y int) (r, g, bl, a uint8) {
	i := y*b.Stride() + 4*x
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Image wraps the bitmap as an *image.RGBA without copying.
func (b *Bitmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

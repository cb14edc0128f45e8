// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package text rasterizes a single line of text into an RGBA bitmap.
//
// The string is NFC-normalised, shaped with HarfBuzz (go-text/typesetting)
// and its glyph outlines are filled with an anti-aliasing scanline
// rasterizer:
//
//	bm, err := text.Rasterize("Абоба", text.WithSize(192))
//	if err != nil {
//		return err
//	}
//	upload(bm.Pix, bm.Stride(), bm.Width, bm.Height)
//
// The bitmap is exactly as wide as the shaped advance and as tall as the
// font size in pixels. Rows are stored top first with premultiplied alpha.
package text

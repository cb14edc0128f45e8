// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/norm"
)

// Rasterize renders s on a single line.
//
// The result is as wide as the shaped advance and as tall as the font's
// ascent plus descent, both rounded up. The baseline sits at the ascent.
func Rasterize(s string, opts ...Option) (*Bitmap, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.size > 0) || math.IsInf(cfg.size, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, cfg.size)
	}

	runes := []rune(norm.NFC.String(s))
	if len(runes) == 0 {
		return nil, ErrEmptyText
	}

	line, err := shape(runes, cfg.font, cfg.size, cfg.language)
	if err != nil {
		return nil, err
	}
	if len(line.glyphs) == 0 {
		return nil, ErrEmptyText
	}

	outlines, err := sfnt.Parse(cfg.font)
	if err != nil {
		return nil, fmt.Errorf("text: parse outlines: %w", err)
	}

	ppem := floatToFixed(cfg.size)
	var buf sfnt.Buffer
	metrics, err := outlines.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("text: font metrics: %w", err)
	}
	baseline := fixedToFloat(metrics.Ascent)

	w := int(math.Ceil(line.advance))
	h := lineHeight(metrics)
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyText
	}

	z := vector.NewRasterizer(w, h)
	for _, g := range line.glyphs {
		segments, err := outlines.LoadGlyph(&buf, sfnt.GlyphIndex(g.gid), ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("text: load glyph %d: %w", g.gid, err)
		}
		appendOutline(z, segments, float32(g.x), float32(baseline+g.y))
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return colorize(mask, cfg), nil
}

// lineHeight is the pixel height from the top of the ascent to the bottom
// of the descent.
func lineHeight(m font.Metrics) int {
	return int(math.Ceil(fixedToFloat(m.Ascent + m.Descent)))
}

// appendOutline adds glyph segments to z, translated by (dx, dy). Each
// contour is closed before the next one starts.
func appendOutline(z *vector.Rasterizer, segments sfnt.Segments, dx, dy float32) {
	open := false
	for _, seg := range segments {
		a := seg.Args
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(px(a[0].X)+dx, px(a[0].Y)+dy)
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(px(a[0].X)+dx, px(a[0].Y)+dy)
		case sfnt.SegmentOpQuadTo:
			z.QuadTo(px(a[0].X)+dx, px(a[0].Y)+dy, px(a[1].X)+dx, px(a[1].Y)+dy)
		case sfnt.SegmentOpCubeTo:
			z.CubeTo(px(a[0].X)+dx, px(a[0].Y)+dy, px(a[1].X)+dx, px(a[1].Y)+dy, px(a[2].X)+dx, px(a[2].Y)+dy)
		}
	}
	if open {
		z.ClosePath()
	}
}

// colorize scales the fill colour by coverage, giving premultiplied RGBA.
func colorize(mask *image.Alpha, cfg config) *Bitmap {
	b := mask.Bounds()
	bm := &Bitmap{Width: b.Dx(), Height: b.Dy()}
	bm.Pix = make([]byte, 4*bm.Width*bm.Height)
	c := cfg.color
	for y := 0; y < bm.Height; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+bm.Width]
		out := bm.Pix[y*bm.Stride():]
		for x, cov := range row {
			if cov == 0 {
				continue
			}
			out[4*x+0] = scale(c.R, cov)
			out[4*x+1] = scale(c.G, cov)
			out[4*x+2] = scale(c.B, cov)
			out[4*x+3] = scale(c.A, cov)
		}
	}
	return bm
}

func scale(v, cov uint8) uint8 {
	return uint8((uint32(v)*uint32(cov) + 127) / 255)
}

func px(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func TestRasterizeDefault(t *testing.T) {
	bm, err := Rasterize(DefaultText)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if want := wantHeight(t, DefaultSize); bm.Height != want {
		t.Errorf("Height = %d, want %d", bm.Height, want)
	}
	if bm.Height <= int(DefaultSize) {
		t.Errorf("Height = %d, want more than the em size %d", bm.Height, int(DefaultSize))
	}
	if bm.Width <= 0 {
		t.Fatalf("Width = %d, want > 0", bm.Width)
	}
	if len(bm.Pix) != bm.Stride()*bm.Height {
		t.Fatalf("len(Pix) = %d, want %d", len(bm.Pix), bm.Stride()*bm.Height)
	}

	var opaque, partial int
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			r, g, b, a := bm.RGBAAt(x, y)
			if r != a || g != a || b != a {
				t.Fatalf("pixel (%d,%d) = %d,%d,%d,%d, want premultiplied white", x, y, r, g, b, a)
			}
			switch {
			case a == 255:
				opaque++
			case a > 0:
				partial++
			}
		}
	}
	if opaque == 0 {
		t.Error("no fully covered pixels")
	}
	if partial == 0 {
		t.Error("no anti-aliased edge pixels")
	}
}

func TestRasterizeWidthIsAdvance(t *testing.T) {
	tests := []struct {
		text string
		size float64
	}{
		{"Абоба", 192},
		{"Hello", 48},
		{"AV", 32.5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			bm, err := Rasterize(tt.text, WithSize(tt.size))
			if err != nil {
				t.Fatalf("Rasterize: %v", err)
			}
			line, err := shape([]rune(tt.text), gobold.TTF, tt.size, language.NewLanguage("ru"))
			if err != nil {
				t.Fatalf("shape: %v", err)
			}
			if want := int(math.Ceil(line.advance)); bm.Width != want {
				t.Errorf("Width = %d, want %d", bm.Width, want)
			}
			if want := wantHeight(t, tt.size); bm.Height != want {
				t.Errorf("Height = %d, want %d", bm.Height, want)
			}
		})
	}
}

// wantHeight is the ascent plus descent of the bundled font at size.
func wantHeight(t *testing.T, size float64) int {
	t.Helper()
	f, err := sfnt.Parse(gobold.TTF)
	if err != nil {
		t.Fatalf("sfnt.Parse: %v", err)
	}
	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, fixed.Int26_6(size*64), font.HintingNone)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	return int(math.Ceil(float64(m.Ascent+m.Descent) / 64))
}

func TestRasterizeKeepsDescenders(t *testing.T) {
	const size = 64
	f, err := sfnt.Parse(gobold.TTF)
	if err != nil {
		t.Fatalf("sfnt.Parse: %v", err)
	}
	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, fixed.Int26_6(size*64), font.HintingNone)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	baseline := int(math.Ceil(float64(m.Ascent) / 64))

	tests := []struct {
		text      string
		descender bool
	}{
		{"gpy", true},
		{"ру", true},
		{"HI", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			bm, err := Rasterize(tt.text, WithSize(size))
			if err != nil {
				t.Fatalf("Rasterize: %v", err)
			}
			below := 0
			for y := baseline + 1; y < bm.Height; y++ {
				for x := 0; x < bm.Width; x++ {
					if _, _, _, a := bm.RGBAAt(x, y); a > 0 {
						below++
					}
				}
			}
			if tt.descender && below == 0 {
				t.Error("no ink below the baseline")
			}
			if !tt.descender && below != 0 {
				t.Errorf("%d pixels below the baseline", below)
			}
		})
	}
}

func TestRasterizeNormalizes(t *testing.T) {
	composed, err := Rasterize("\u0451\u0436", WithSize(40))
	if err != nil {
		t.Fatalf("Rasterize composed: %v", err)
	}
	decomposed, err := Rasterize("ёж", WithSize(40))
	if err != nil {
		t.Fatalf("Rasterize decomposed: %v", err)
	}
	if composed.Width != decomposed.Width || !bytes.Equal(composed.Pix, decomposed.Pix) {
		t.Error("NFC-equivalent strings rendered differently")
	}
}

func TestRasterizeColor(t *testing.T) {
	bm, err := Rasterize("I", WithSize(64), WithColor(color.RGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	var covered bool
	for i := 0; i < len(bm.Pix); i += 4 {
		r, g, b, a := bm.Pix[i], bm.Pix[i+1], bm.Pix[i+2], bm.Pix[i+3]
		if g != 0 || b != 0 || r != a {
			t.Fatalf("pixel %d = %d,%d,%d,%d, want premultiplied red", i/4, r, g, b, a)
		}
		covered = covered || a > 0
	}
	if !covered {
		t.Error("nothing drawn")
	}
}

func TestRasterizeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
		want error
	}{
		{"empty", "", nil, ErrEmptyText},
		{"zero size", "x", []Option{WithSize(0)}, ErrInvalidSize},
		{"negative size", "x", []Option{WithSize(-5)}, ErrInvalidSize},
		{"NaN size", "x", []Option{WithSize(math.NaN())}, ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rasterize(tt.text, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRasterizeBadFont(t *testing.T) {
	if _, err := Rasterize("x", WithFont([]byte("not a font"))); err == nil {
		t.Error("expected an error for invalid font data")
	}
}

func TestBitmapImage(t *testing.T) {
	bm := &Bitmap{Width: 3, Height: 2, Pix: make([]byte, 24)}
	bm.Pix[4*4+3] = 200
	img := bm.Image()
	if got := img.Bounds().Dx(); got != 3 {
		t.Errorf("Dx = %d, want 3", got)
	}
	if got := img.RGBAAt(1, 1).A; got != 200 {
		t.Errorf("A at (1,1) = %d, want 200", got)
	}
}

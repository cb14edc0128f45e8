// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shapedGlyph is a glyph positioned on the baseline, in pixels.
type shapedGlyph struct {
	gid uint16
	x   float64
	y   float64
}

// shapedLine is the result of shaping one run of text.
type shapedLine struct {
	glyphs  []shapedGlyph
	advance float64
}

// shape runs HarfBuzz over runes, left to right.
func shape(runes []rune, fontData []byte, size float64, lang language.Language) (shapedLine, error) {
	face, err := font.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return shapedLine{}, fmt.Errorf("text: parse font: %w", err)
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  lang,
	}

	var hb shaping.HarfbuzzShaper
	out := hb.Shape(input)

	line := shapedLine{
		glyphs:  make([]shapedGlyph, 0, len(out.Glyphs)),
		advance: fixedToFloat(out.Advance),
	}
	var x float64
	for _, g := range out.Glyphs {
		line.glyphs = append(line.glyphs, shapedGlyph{
			gid: uint16(g.GlyphID), //nolint:gosec // TrueType glyph IDs are 16-bit
			x:   x + fixedToFloat(g.XOffset),
			y:   -fixedToFloat(g.YOffset),
		})
		x += fixedToFloat(g.Advance)
	}
	return line, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

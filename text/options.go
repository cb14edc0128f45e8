// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"image/color"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/gobold"
)

// Defaults used when no option overrides them.
const (
	DefaultText = "Абоба"
	DefaultSize = 192.0
)

// Option configures Rasterize.
type Option func(*config)

type config struct {
	size     float64
	font     []byte
	color    color.RGBA
	language language.Language
}

func defaultConfig() config {
	return config{
		size:     DefaultSize,
		font:     gobold.TTF,
		color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		language: language.NewLanguage("ru"),
	}
}

// WithSize sets the font size in pixels per em.
func WithSize(px float64) Option {
	return func(c *config) {
		c.size = px
	}
}

// WithFont sets the TrueType or OpenType font data. The default is Go Bold.
func WithFont(data []byte) Option {
	return func(c *config) {
		c.font = data
	}
}

// WithColor sets the fill colour. The default is opaque white.
func WithColor(col color.RGBA) Option {
	return func(c *config) {
		c.color = col
	}
}

// WithLanguage sets the BCP 47 language tag passed to the shaper.
func WithLanguage(tag string) Option {
	return func(c *config) {
		c.language = language.NewLanguage(tag)
	}
}

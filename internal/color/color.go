// Package color provides the colour conversions and palette used by the
// backdrop renderer.
package color

import (
	"encoding/binary"
	"math"
)

// RGB is a colour with float32 components in [0,1]. Whether it is sRGB
// encoded or linear is indicated by context.
type RGB [3]float32

// Palette is the pair of colours the effect shader blends between.
// Both colours are linear RGB.
type Palette struct {
	BG RGB
	FG RGB
}

// PaletteSize is the size of an encoded Palette in bytes.
const PaletteSize = 32

// Bytes encodes the palette as a uniform block: two vec3<f32> values, each
// padded to 16 bytes.
func (p Palette) Bytes() []byte {
	buf := make([]byte, PaletteSize)
	putRGB(buf[0:16], p.BG)
	putRGB(buf[16:32], p.FG)
	return buf
}

func putRGB(dst []byte, c RGB) {
	for i, v := range c {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
	}
}

package color

import "math/rand/v2"

// Lightness of the two palette colours, in percent.
const (
	BackgroundLightness = 10
	ForegroundLightness = 70
)

// RandomPalette picks an independent hue in [0,360) and saturation in
// [0,100) for each colour. The background is dark, the foreground light.
func RandomPalette(r *rand.Rand) Palette {
	bg := HSLToLinearRGB(r.Float64()*360, r.Float64()*100, BackgroundLightness)
	fg := HSLToLinearRGB(r.Float64()*360, r.Float64()*100, ForegroundLightness)
	return Palette{BG: bg, FG: fg}
}

// NewRand returns a PCG source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

import "github.com/gogpu/gputypes"

// IsSRGB reports whether the format stores color in the sRGB transfer curve.
func IsSRGB(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// ChooseSurfaceFormat picks the first sRGB format from formats, falling back
// to the first entry. ok is false when formats is empty.
func ChooseSurfaceFormat(formats []gputypes.TextureFormat) (f gputypes.TextureFormat, ok bool) {
	if len(formats) == 0 {
		return gputypes.TextureFormatUndefined, false
	}
	for _, f := range formats {
		if IsSRGB(f) {
			return f, true
		}
	}
	return formats[0], true
}

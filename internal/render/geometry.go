// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex is a clip-space position with a texture coordinate.
type Vertex struct {
	Pos [2]float32
	UV  [2]float32
}

// VertexSize is the byte stride of an encoded Vertex.
const VertexSize = 16

// QuadVertexCount is the number of vertices drawn for a quad.
const QuadVertexCount = 4

// VertexLayout describes Vertex: position at location 0, uv at location 1.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		},
	}
}

// Quad returns a centred quad with half-extents hx and hy in triangle-strip
// order. Quad(1, 1) covers the whole viewport.
func Quad(hx, hy float32) [QuadVertexCount]Vertex {
	return [QuadVertexCount]Vertex{
		{Pos: [2]float32{-hx, -hy}, UV: [2]float32{0, 0}},
		{Pos: [2]float32{-hx, hy}, UV: [2]float32{0, 1}},
		{Pos: [2]float32{hx, -hy}, UV: [2]float32{1, 0}},
		{Pos: [2]float32{hx, hy}, UV: [2]float32{1, 1}},
	}
}

// EncodeVertices packs vertices little-endian for upload.
func EncodeVertices(vs []Vertex) []byte {
	buf := make([]byte, len(vs)*VertexSize)
	for i, v := range vs {
		o := i * VertexSize
		putFloat32(buf[o:], v.Pos[0])
		putFloat32(buf[o+4:], v.Pos[1])
		putFloat32(buf[o+8:], v.UV[0])
		putFloat32(buf[o+12:], v.UV[1])
	}
	return buf
}

// TextHalfExtent returns the clip-space half-extent that draws a
// bitmapW x bitmapH bitmap at one texel per pixel in a width x height
// viewport.
func TextHalfExtent(bitmapW, bitmapH, width, height uint32) (hx, hy float32) {
	if width == 0 || height == 0 {
		return 0, 0
	}
	return float32(bitmapW) / float32(width), float32(bitmapH) / float32(height)
}

// Uniforms is the per-frame uniform block shared by the effect and post
// shaders.
type Uniforms struct {
	Time   float32
	Aspect float32
}

// UniformsSize is the size of an encoded Uniforms block.
const UniformsSize = 8

// Bytes encodes u little-endian.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformsSize)
	putFloat32(buf[0:], u.Time)
	putFloat32(buf[4:], u.Aspect)
	return buf
}

func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

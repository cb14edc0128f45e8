// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

import "github.com/gogpu/gputypes"

// Resource IDs
//
// These opaque IDs represent GPU resources. Each backend implementation
// maintains a mapping between IDs and actual native resources.
// IDs are uint64 to accommodate various backend handle sizes.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture together with its default view.
type TextureID uint64

// SamplerID is an opaque handle to a texture sampler.
type SamplerID uint64

// ShaderModuleID is an opaque handle to a compiled shader module.
type ShaderModuleID uint64

// BindGroupLayoutID is an opaque handle to a bind group layout.
type BindGroupLayoutID uint64

// BindGroupID is an opaque handle to a bind group.
type BindGroupID uint64

// PipelineLayoutID is an opaque handle to a pipeline layout.
type PipelineLayoutID uint64

// RenderPipelineID is an opaque handle to a render pipeline.
type RenderPipelineID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferDesc describes a GPU buffer.
type BufferDesc struct {
	// Label is an optional debug label.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	// Usage is a bitmask of gputypes.BufferUsage flags.
	Usage gputypes.BufferUsage
}

// TextureDesc describes a single-level, single-sample 2D texture.
type TextureDesc struct {
	Label  string
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
	Usage  gputypes.TextureUsage
}

// SamplerDesc describes a texture sampler. The address mode applies to
// all three coordinates.
type SamplerDesc struct {
	Label        string
	AddressMode  gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
}

// BindGroupLayoutDesc describes a bind group layout.
type BindGroupLayoutDesc struct {
	// Label is an optional debug label.
	Label string

	// Entries defines the bindings in this layout.
	Entries []gputypes.BindGroupLayoutEntry
}

// BindGroupEntry describes a single binding in a bind group.
// Exactly one of Buffer, Texture or Sampler is set.
type BindGroupEntry struct {
	// Binding is the binding index.
	Binding uint32

	// Buffer is the buffer to bind (for buffer bindings).
	Buffer BufferID

	// Offset is the offset into the buffer.
	Offset uint64

	// Size is the size of the buffer range to bind.
	// Use 0 to bind the entire buffer from offset.
	Size uint64

	// Texture is the texture whose default view is bound.
	Texture TextureID

	// Sampler is the sampler to bind.
	Sampler SamplerID
}

// BindGroupDesc describes a bind group.
type BindGroupDesc struct {
	// Label is an optional debug label.
	Label string

	// Layout is the bind group layout.
	Layout BindGroupLayoutID

	// Entries are the resource bindings.
	Entries []BindGroupEntry
}

// ShaderModuleDesc describes a WGSL shader module.
type ShaderModuleDesc struct {
	Label string
	WGSL  string
}

// RenderPipelineDesc describes a render pipeline with a single color target.
type RenderPipelineDesc struct {
	Label  string
	Layout PipelineLayoutID
	Module ShaderModuleID

	VertexEntry   string
	FragmentEntry string

	VertexBuffers []gputypes.VertexBufferLayout

	// Format is the color target format.
	Format gputypes.TextureFormat

	// Blend is the color target blend state; nil disables blending.
	Blend *gputypes.BlendState

	Topology    gputypes.PrimitiveTopology
	CullMode    gputypes.CullMode
	SampleCount uint32
}

// SurfaceConfig is the presentable surface configuration.
type SurfaceConfig struct {
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
}

// SurfaceTexture is the image acquired from the surface for one frame.
// Texture is valid only until the frame is presented.
type SurfaceTexture struct {
	Texture TextureID
	Width   uint32
	Height  uint32
}

// AdapterInfo describes the adapter a backend runs on.
type AdapterInfo struct {
	Name    string
	Backend string
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

import "github.com/gogpu/gputypes"

// Backend abstracts over different GPU backend implementations.
//
// This interface is the only capability surface the renderer uses. It
// covers resource creation (buffers, textures, pipelines), batch submission
// and surface presentation.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - Destroying a resource while in use is undefined behavior
//   - IDs become invalid after destruction and must not be reused
//
// Backends are driven from a single goroutine and need not be safe for
// concurrent use.
type Backend interface {
	// Info describes the adapter in use.
	Info() AdapterInfo

	// === Surface ===

	// SurfaceFormats lists the formats the surface can be configured with,
	// in the platform's order of preference.
	SurfaceFormats() []gputypes.TextureFormat

	// ConfigureSurface (re)configures the presentable surface.
	ConfigureSurface(cfg SurfaceConfig) error

	// AcquireSurfaceTexture returns the next presentable image.
	// Failures are reported as *SurfaceError.
	AcquireSurfaceTexture() (SurfaceTexture, error)

	// Present queues the acquired image for display.
	Present(st SurfaceTexture) error

	// === Buffers ===

	CreateBuffer(desc *BufferDesc) (BufferID, error)
	WriteBuffer(id BufferID, offset uint64, data []byte) error
	DestroyBuffer(id BufferID)

	// === Textures and samplers ===

	CreateTexture(desc *TextureDesc) (TextureID, error)

	// WriteTexture uploads a full image. bytesPerRow is the row stride of data.
	WriteTexture(id TextureID, data []byte, bytesPerRow, width, height uint32) error
	DestroyTexture(id TextureID)

	CreateSampler(desc *SamplerDesc) (SamplerID, error)
	DestroySampler(id SamplerID)

	// === Bindings ===

	CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error)
	DestroyBindGroupLayout(id BindGroupLayoutID)
	CreateBindGroup(desc *BindGroupDesc) (BindGroupID, error)
	DestroyBindGroup(id BindGroupID)

	// === Pipelines ===

	CreateShaderModule(desc *ShaderModuleDesc) (ShaderModuleID, error)
	DestroyShaderModule(id ShaderModuleID)

	// CreatePipelineLayout creates a pipeline layout. The position of each
	// bind group layout is the bind group slot it occupies.
	CreatePipelineLayout(label string, layouts []BindGroupLayoutID) (PipelineLayoutID, error)
	DestroyPipelineLayout(id PipelineLayoutID)

	CreateRenderPipeline(desc *RenderPipelineDesc) (RenderPipelineID, error)
	DestroyRenderPipeline(id RenderPipelineID)

	// === Execution ===

	// Submit encodes every pass of the batch, in order, into one command
	// buffer and submits it. It returns once the driver has accepted it.
	Submit(batch *CommandBatch) error

	// Destroy releases the backend itself. All resources created through
	// it must be destroyed first.
	Destroy()
}

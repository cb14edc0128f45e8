// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"slices"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/backdrop/internal/shaders"
	"github.com/gogpu/gputypes"
)

// PipelineBuilder assembles a render pipeline. Setters return a modified
// copy, so a partially configured builder can be shared:
//
//	base := NewPipelineBuilder(b, format, src).WithVertexBuffer(VertexLayout())
//	opaque, err := base.Build()
//	blended, err := base.WithBlend(textBlend).Build()
type PipelineBuilder struct {
	backend gpucore.Backend
	format  gputypes.TextureFormat
	source  string
	label   string

	vertexBuffers []gputypes.VertexBufferLayout
	layouts       []gpucore.BindGroupLayoutID
	blend         *gputypes.BlendState
}

// NewPipelineBuilder starts a builder for WGSL source targeting format.
func NewPipelineBuilder(backend gpucore.Backend, format gputypes.TextureFormat, source string) PipelineBuilder {
	return PipelineBuilder{
		backend: backend,
		format:  format,
		source:  source,
		label:   "pipeline",
	}
}

// WithVertexBuffer appends a vertex buffer layout; the n-th call binds slot n.
func (b PipelineBuilder) WithVertexBuffer(layout gputypes.VertexBufferLayout) PipelineBuilder {
	b.vertexBuffers = append(slices.Clip(b.vertexBuffers), layout)
	return b
}

// WithBindGroupLayout appends a bind group layout; the n-th call is group n.
func (b PipelineBuilder) WithBindGroupLayout(id gpucore.BindGroupLayoutID) PipelineBuilder {
	b.layouts = append(slices.Clip(b.layouts), id)
	return b
}

// WithBlend sets the colour target blend state. Without it the output
// replaces the target.
func (b PipelineBuilder) WithBlend(state gputypes.BlendState) PipelineBuilder {
	b.blend = &state
	return b
}

// WithLabel sets the debug label used for every created object.
func (b PipelineBuilder) WithLabel(label string) PipelineBuilder {
	b.label = label
	return b
}

// Build compiles the shader and creates the pipeline layout and render
// pipeline. On failure nothing is left allocated.
func (b PipelineBuilder) Build() (*Pipeline, error) {
	module, err := b.backend.CreateShaderModule(&gpucore.ShaderModuleDesc{
		Label: b.label,
		WGSL:  b.source,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %s shader: %w", b.label, err)
	}

	layout, err := b.backend.CreatePipelineLayout(b.label, b.layouts)
	if err != nil {
		b.backend.DestroyShaderModule(module)
		return nil, fmt.Errorf("render: %s layout: %w", b.label, err)
	}

	id, err := b.backend.CreateRenderPipeline(&gpucore.RenderPipelineDesc{
		Label:         b.label,
		Layout:        layout,
		Module:        module,
		VertexEntry:   shaders.VertexEntry,
		FragmentEntry: shaders.FragmentEntry,
		VertexBuffers: b.vertexBuffers,
		Format:        b.format,
		Blend:         b.blend,
		Topology:      gputypes.PrimitiveTopologyTriangleStrip,
		CullMode:      gputypes.CullModeNone,
		SampleCount:   1,
	})
	if err != nil {
		b.backend.DestroyPipelineLayout(layout)
		b.backend.DestroyShaderModule(module)
		return nil, fmt.Errorf("render: %s pipeline: %w", b.label, err)
	}

	slogger().Info("render: pipeline built", "label", b.label, "format", b.format)
	return &Pipeline{
		backend: b.backend,
		id:      id,
		layout:  layout,
		module:  module,
		label:   b.label,
		format:  b.format,
	}, nil
}

// Pipeline is a built render pipeline together with the objects it owns.
type Pipeline struct {
	backend gpucore.Backend
	id      gpucore.RenderPipelineID
	layout  gpucore.PipelineLayoutID
	module  gpucore.ShaderModuleID
	label   string
	format  gputypes.TextureFormat
}

// ID returns the render pipeline handle.
func (p *Pipeline) ID() gpucore.RenderPipelineID { return p.id }

// Label returns the debug label.
func (p *Pipeline) Label() string { return p.label }

// Format returns the colour target format.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.format }

// Destroy releases the pipeline, its layout and its shader module.
// Calling it again does nothing.
func (p *Pipeline) Destroy() {
	if p == nil || p.id == gpucore.InvalidID {
		return
	}
	p.backend.DestroyRenderPipeline(p.id)
	p.backend.DestroyPipelineLayout(p.layout)
	p.backend.DestroyShaderModule(p.module)
	p.id, p.layout, p.module = gpucore.InvalidID, gpucore.InvalidID, gpucore.InvalidID
}

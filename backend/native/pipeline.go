// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// === Bindings ===

// CreateBindGroupLayout creates a bind group layout.
func (b *Backend) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	layout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: desc.Entries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create bind group layout %q: %w", desc.Label, err)
	}
	id := gpucore.BindGroupLayoutID(b.newID())

	b.mu.Lock()
	b.bindGroupLayouts[id] = layout
	b.mu.Unlock()

	return id, nil
}

// DestroyBindGroupLayout releases a bind group layout.
func (b *Backend) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	b.mu.Lock()
	layout, ok := b.bindGroupLayouts[id]
	delete(b.bindGroupLayouts, id)
	b.mu.Unlock()

	if ok {
		b.retire(func() { b.device.DestroyBindGroupLayout(layout) })
	}
}

// CreateBindGroup resolves each entry to its native handle and creates the
// bind group.
func (b *Backend) CreateBindGroup(desc *gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	b.mu.Lock()
	layout, ok := b.bindGroupLayouts[desc.Layout]
	if !ok {
		b.mu.Unlock()
		return gpucore.InvalidID, fmt.Errorf("native: bind group %q layout %d: %w", desc.Label, desc.Layout, ErrUnknownResource)
	}
	entries := make([]gputypes.BindGroupEntry, 0, len(desc.Entries))
	for _, e := range desc.Entries {
		res, err := b.resolveBindingLocked(e)
		if err != nil {
			b.mu.Unlock()
			return gpucore.InvalidID, fmt.Errorf("native: bind group %q binding %d: %w", desc.Label, e.Binding, err)
		}
		entries = append(entries, gputypes.BindGroupEntry{Binding: e.Binding, Resource: res})
	}
	b.mu.Unlock()

	group, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create bind group %q: %w", desc.Label, err)
	}
	id := gpucore.BindGroupID(b.newID())

	b.mu.Lock()
	b.bindGroups[id] = group
	b.mu.Unlock()

	return id, nil
}

// resolveBindingLocked converts one entry. b.mu must be held.
func (b *Backend) resolveBindingLocked(e gpucore.BindGroupEntry) (gputypes.BindingResource, error) {
	switch {
	case e.Buffer != gpucore.InvalidID:
		buf, ok := b.buffers[e.Buffer]
		if !ok {
			return nil, ErrUnknownResource
		}
		size := e.Size
		if size == 0 {
			size = buf.size - e.Offset
		}
		return gputypes.BufferBinding{Buffer: buf.buf.NativeHandle(), Offset: e.Offset, Size: size}, nil
	case e.Texture != gpucore.InvalidID:
		t, ok := b.textures[e.Texture]
		if !ok {
			return nil, ErrUnknownResource
		}
		return gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()}, nil
	case e.Sampler != gpucore.InvalidID:
		s, ok := b.samplers[e.Sampler]
		if !ok {
			return nil, ErrUnknownResource
		}
		return gputypes.SamplerBinding{Sampler: s.NativeHandle()}, nil
	default:
		return nil, fmt.Errorf("empty binding: %w", ErrUnknownResource)
	}
}

// DestroyBindGroup releases a bind group.
func (b *Backend) DestroyBindGroup(id gpucore.BindGroupID) {
	b.mu.Lock()
	group, ok := b.bindGroups[id]
	delete(b.bindGroups, id)
	b.mu.Unlock()

	if ok {
		b.retire(func() { b.device.DestroyBindGroup(group) })
	}
}

// === Pipelines ===

// CreateShaderModule creates a shader module from WGSL source.
func (b *Backend) CreateShaderModule(desc *gpucore.ShaderModuleDesc) (gpucore.ShaderModuleID, error) {
	if desc.WGSL == "" {
		return gpucore.InvalidID, fmt.Errorf("native: shader module %q: empty source", desc.Label)
	}
	module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{WGSL: desc.WGSL},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create shader module %q: %w", desc.Label, err)
	}
	id := gpucore.ShaderModuleID(b.newID())

	b.mu.Lock()
	b.shaderModules[id] = module
	b.mu.Unlock()

	return id, nil
}

// DestroyShaderModule releases a shader module.
func (b *Backend) DestroyShaderModule(id gpucore.ShaderModuleID) {
	b.mu.Lock()
	module, ok := b.shaderModules[id]
	delete(b.shaderModules, id)
	b.mu.Unlock()

	if ok {
		b.retire(func() { b.device.DestroyShaderModule(module) })
	}
}

// CreatePipelineLayout creates a pipeline layout; layouts[i] occupies slot i.
func (b *Backend) CreatePipelineLayout(label string, layouts []gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	halLayouts := make([]hal.BindGroupLayout, 0, len(layouts))

	b.mu.Lock()
	for _, id := range layouts {
		l, ok := b.bindGroupLayouts[id]
		if !ok {
			b.mu.Unlock()
			return gpucore.InvalidID, fmt.Errorf("native: pipeline layout %q slot %d: %w", label, len(halLayouts), ErrUnknownResource)
		}
		halLayouts = append(halLayouts, l)
	}
	b.mu.Unlock()

	layout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: halLayouts,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create pipeline layout %q: %w", label, err)
	}
	id := gpucore.PipelineLayoutID(b.newID())

	b.mu.Lock()
	b.pipelineLayouts[id] = layout
	b.mu.Unlock()

	return id, nil
}

// DestroyPipelineLayout releases a pipeline layout.
func (b *Backend) DestroyPipelineLayout(id gpucore.PipelineLayoutID) {
	b.mu.Lock()
	layout, ok := b.pipelineLayouts[id]
	delete(b.pipelineLayouts, id)
	b.mu.Unlock()

	if ok {
		b.retire(func() { b.device.DestroyPipelineLayout(layout) })
	}
}

// CreateRenderPipeline creates a render pipeline with one color target and
// no depth/stencil state.
func (b *Backend) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.RenderPipelineID, error) {
	b.mu.Lock()
	layout, okLayout := b.pipelineLayouts[desc.Layout]
	module, okModule := b.shaderModules[desc.Module]
	b.mu.Unlock()

	if !okLayout {
		return gpucore.InvalidID, fmt.Errorf("native: pipeline %q layout %d: %w", desc.Label, desc.Layout, ErrUnknownResource)
	}
	if !okModule {
		return gpucore.InvalidID, fmt.Errorf("native: pipeline %q module %d: %w", desc.Label, desc.Module, ErrUnknownResource)
	}

	samples := desc.SampleCount
	if samples == 0 {
		samples = 1
	}

	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: desc.VertexEntry,
			Buffers:    desc.VertexBuffers,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: desc.Topology,
			CullMode: desc.CullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: desc.FragmentEntry,
			Targets: []gputypes.ColorTargetState{{
				Format:    desc.Format,
				Blend:     desc.Blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create render pipeline %q: %w", desc.Label, err)
	}
	id := gpucore.RenderPipelineID(b.newID())

	b.mu.Lock()
	b.renderPipelines[id] = pipeline
	b.mu.Unlock()

	slogger().Debug("native: render pipeline created", "label", desc.Label, "format", desc.Format)
	return id, nil
}

// DestroyRenderPipeline releases a render pipeline.
func (b *Backend) DestroyRenderPipeline(id gpucore.RenderPipelineID) {
	b.mu.Lock()
	pipeline, ok := b.renderPipelines[id]
	delete(b.renderPipelines, id)
	b.mu.Unlock()

	if ok {
		b.retire(func() { b.device.DestroyRenderPipeline(pipeline) })
	}
}

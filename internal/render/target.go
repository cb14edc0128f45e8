// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
)

// OffscreenFormat is the format of the offscreen target.
const OffscreenFormat = gputypes.TextureFormatRGBA8UnormSrgb

// OffscreenTarget is the intermediate image the effect and text passes
// draw into and the post pass samples. Its bind group has the texture at
// binding 0 and a mirror-repeat sampler at binding 1.
type OffscreenTarget struct {
	backend gpucore.Backend
	texture gpucore.TextureID
	sampler gpucore.SamplerID
	group   gpucore.BindGroupID
	width   uint32
	height  uint32
}

// NewOffscreenTarget allocates a width x height target. layout must be a
// {texture, sampler} bind group layout.
func NewOffscreenTarget(backend gpucore.Backend, layout gpucore.BindGroupLayoutID, width, height uint32) (*OffscreenTarget, error) {
	t := &OffscreenTarget{backend: backend, width: width, height: height}

	var err error
	t.texture, err = backend.CreateTexture(&gpucore.TextureDesc{
		Label:  "offscreen",
		Width:  width,
		Height: height,
		Format: OffscreenFormat,
		Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("render: offscreen texture %dx%d: %w", width, height, err)
	}

	t.sampler, err = backend.CreateSampler(&gpucore.SamplerDesc{
		Label:        "offscreen",
		AddressMode:  gputypes.AddressModeMirrorRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("render: offscreen sampler: %w", err)
	}

	t.group, err = backend.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:  "offscreen",
		Layout: layout,
		Entries: []gpucore.BindGroupEntry{
			{Binding: 0, Texture: t.texture},
			{Binding: 1, Sampler: t.sampler},
		},
	})
	if err != nil {
		t.Destroy()
		return nil, fmt.Errorf("render: offscreen bind group: %w", err)
	}

	slogger().Debug("render: offscreen target allocated", "width", width, "height", height)
	return t, nil
}

// Texture returns the render attachment.
func (t *OffscreenTarget) Texture() gpucore.TextureID { return t.texture }

// BindGroup returns the bind group that samples the target.
func (t *OffscreenTarget) BindGroup() gpucore.BindGroupID { return t.group }

// Size returns the target size.
func (t *OffscreenTarget) Size() (width, height uint32) { return t.width, t.height }

// Destroy releases the bind group, sampler and texture. Calling it again
// does nothing.
func (t *OffscreenTarget) Destroy() {
	if t == nil {
		return
	}
	if t.group != gpucore.InvalidID {
		t.backend.DestroyBindGroup(t.group)
		t.group = gpucore.InvalidID
	}
	if t.sampler != gpucore.InvalidID {
		t.backend.DestroySampler(t.sampler)
		t.sampler = gpucore.InvalidID
	}
	if t.texture != gpucore.InvalidID {
		t.backend.DestroyTexture(t.texture)
		t.texture = gpucore.InvalidID
	}
}

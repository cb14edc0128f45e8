// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Config holds what a Backend needs from the host.
type Config struct {
	Device  hal.Device
	Queue   hal.Queue
	Surface SurfaceSource

	// Info is reported verbatim by Backend.Info.
	Info gpucore.AdapterInfo
}

type bufferEntry struct {
	buf  hal.Buffer
	size uint64
}

// textureEntry is an owned texture with its default view, or a borrowed
// surface view when tex is nil.
type textureEntry struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

// Backend implements gpucore.Backend using gogpu/wgpu/hal directly.
//
// Thread Safety: resource maps are mutex-protected, but frame submission
// and surface acquisition are meant to be driven from one goroutine.
type Backend struct {
	mu      sync.Mutex
	device  hal.Device
	queue   hal.Queue
	surface SurfaceSource
	info    gpucore.AdapterInfo

	nextID atomic.Uint64

	buffers          map[gpucore.BufferID]bufferEntry
	textures         map[gpucore.TextureID]*textureEntry
	samplers         map[gpucore.SamplerID]hal.Sampler
	shaderModules    map[gpucore.ShaderModuleID]hal.ShaderModule
	bindGroupLayouts map[gpucore.BindGroupLayoutID]hal.BindGroupLayout
	bindGroups       map[gpucore.BindGroupID]hal.BindGroup
	pipelineLayouts  map[gpucore.PipelineLayoutID]hal.PipelineLayout
	renderPipelines  map[gpucore.RenderPipelineID]hal.RenderPipeline

	encoders   *encoderPool
	inflight   []inflightSubmission
	lastSubmit uint64
	deferred   []deferredRelease

	destroyed bool
}

var _ gpucore.Backend = (*Backend)(nil)

// New creates a backend over an already opened HAL device.
func New(cfg Config) (*Backend, error) {
	if cfg.Device == nil || cfg.Queue == nil {
		return nil, ErrNilDevice
	}
	if cfg.Surface == nil {
		return nil, ErrNilSurface
	}
	b := &Backend{
		device:           cfg.Device,
		queue:            cfg.Queue,
		surface:          cfg.Surface,
		info:             cfg.Info,
		buffers:          make(map[gpucore.BufferID]bufferEntry),
		textures:         make(map[gpucore.TextureID]*textureEntry),
		samplers:         make(map[gpucore.SamplerID]hal.Sampler),
		shaderModules:    make(map[gpucore.ShaderModuleID]hal.ShaderModule),
		bindGroupLayouts: make(map[gpucore.BindGroupLayoutID]hal.BindGroupLayout),
		bindGroups:       make(map[gpucore.BindGroupID]hal.BindGroup),
		pipelineLayouts:  make(map[gpucore.PipelineLayoutID]hal.PipelineLayout),
		renderPipelines:  make(map[gpucore.RenderPipelineID]hal.RenderPipeline),
		encoders:         newEncoderPool(cfg.Device),
	}

	// Start ID generation at 1 (0 is invalid)
	b.nextID.Store(1)

	slogger().Info("native: backend ready", "adapter", cfg.Info.Name, "backend", cfg.Info.Backend)
	return b, nil
}

// newID generates a unique resource ID.
func (b *Backend) newID() uint64 {
	return b.nextID.Add(1) - 1
}

// Info describes the adapter in use.
func (b *Backend) Info() gpucore.AdapterInfo { return b.info }

// === Surface ===

// SurfaceFormats returns the formats offered by the surface source.
func (b *Backend) SurfaceFormats() []gputypes.TextureFormat {
	return b.surface.Formats()
}

// ConfigureSurface (re)configures the surface source. Submitted frames are
// drained first since the source may free the images they render into.
func (b *Backend) ConfigureSurface(cfg gpucore.SurfaceConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("native: configure surface %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidSize)
	}
	b.drain()
	if err := b.surface.Configure(cfg.Width, cfg.Height, cfg.Format); err != nil {
		return fmt.Errorf("native: configure surface: %w", err)
	}
	slogger().Debug("native: surface configured", "width", cfg.Width, "height", cfg.Height, "format", cfg.Format)
	return nil
}

// AcquireSurfaceTexture acquires the next image from the surface source and
// registers its view under a fresh TextureID that lives until Present.
func (b *Backend) AcquireSurfaceTexture() (gpucore.SurfaceTexture, error) {
	view, w, h, err := b.surface.Acquire()
	if err != nil {
		return gpucore.SurfaceTexture{}, ClassifySurfaceError(err)
	}
	id := gpucore.TextureID(b.newID())

	b.mu.Lock()
	b.textures[id] = &textureEntry{view: view, width: w, height: h}
	b.mu.Unlock()

	return gpucore.SurfaceTexture{Texture: id, Width: w, Height: h}, nil
}

// Present hands the acquired image back to the surface source.
func (b *Backend) Present(st gpucore.SurfaceTexture) error {
	b.mu.Lock()
	_, ok := b.textures[st.Texture]
	delete(b.textures, st.Texture)
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("native: present texture %d: %w", st.Texture, ErrUnknownResource)
	}
	if err := b.surface.Present(); err != nil {
		return ClassifySurfaceError(err)
	}
	return nil
}

// === Buffers ===

// CreateBuffer creates a GPU buffer.
func (b *Backend) CreateBuffer(desc *gpucore.BufferDesc) (gpucore.BufferID, error) {
	if desc.Size == 0 {
		return gpucore.InvalidID, fmt.Errorf("native: buffer %q: %w", desc.Label, ErrInvalidSize)
	}
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: desc.Usage,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create buffer %q: %w", desc.Label, err)
	}
	id := gpucore.BufferID(b.newID())

	b.mu.Lock()
	b.buffers[id] = bufferEntry{buf: buf, size: desc.Size}
	b.mu.Unlock()

	return id, nil
}

// WriteBuffer writes data to a buffer through the queue.
func (b *Backend) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	b.mu.Lock()
	e, ok := b.buffers[id]
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("native: write buffer %d: %w", id, ErrUnknownResource)
	}
	if len(data) == 0 {
		return nil
	}
	if offset+uint64(len(data)) > e.size {
		return fmt.Errorf("native: write buffer %d: %d bytes at %d exceeds size %d: %w",
			id, len(data), offset, e.size, ErrInvalidSize)
	}
	return b.queue.WriteBuffer(e.buf, offset, data)
}

// DestroyBuffer releases a GPU buffer.
func (b *Backend) DestroyBuffer(id gpucore.BufferID) {
	b.mu.Lock()
	e, ok := b.buffers[id]
	delete(b.buffers, id)
	b.mu.Unlock()

	if ok {
		b.retire(func() { b.device.DestroyBuffer(e.buf) })
	}
}

// === Textures and samplers ===

// CreateTexture creates a single-mip 2D texture and its default view.
func (b *Backend) CreateTexture(desc *gpucore.TextureDesc) (gpucore.TextureID, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return gpucore.InvalidID, fmt.Errorf("native: texture %q %dx%d: %w",
			desc.Label, desc.Width, desc.Height, ErrInvalidSize)
	}
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create texture %q: %w", desc.Label, err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           desc.Label + "_view",
		Format:          desc.Format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return gpucore.InvalidID, fmt.Errorf("native: create texture view %q: %w", desc.Label, err)
	}
	id := gpucore.TextureID(b.newID())

	b.mu.Lock()
	b.textures[id] = &textureEntry{
		tex:    tex,
		view:   view,
		width:  desc.Width,
		height: desc.Height,
		format: desc.Format,
	}
	b.mu.Unlock()

	return id, nil
}

// WriteTexture uploads a full image into mip level 0.
func (b *Backend) WriteTexture(id gpucore.TextureID, data []byte, bytesPerRow, width, height uint32) error {
	b.mu.Lock()
	e, ok := b.textures[id]
	b.mu.Unlock()

	if !ok || e.tex == nil {
		return fmt.Errorf("native: write texture %d: %w", id, ErrUnknownResource)
	}
	if width > e.width || height > e.height {
		return fmt.Errorf("native: write texture %d: %dx%d exceeds %dx%d: %w",
			id, width, height, e.width, e.height, ErrInvalidSize)
	}
	if uint64(len(data)) < uint64(bytesPerRow)*uint64(height) {
		return fmt.Errorf("native: write texture %d: short data (%d bytes): %w", id, len(data), ErrInvalidSize)
	}
	return b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: e.tex, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{BytesPerRow: bytesPerRow, RowsPerImage: height},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
}

// DestroyTexture releases a texture and its view once no submitted frame
// can still use them. Surface textures are borrowed and only forgotten.
func (b *Backend) DestroyTexture(id gpucore.TextureID) {
	b.mu.Lock()
	e, ok := b.textures[id]
	delete(b.textures, id)
	b.mu.Unlock()

	if !ok || e.tex == nil {
		return
	}
	b.retire(func() {
		b.device.DestroyTextureView(e.view)
		b.device.DestroyTexture(e.tex)
	})
}

// CreateSampler creates a sampler with the same address mode on all axes.
func (b *Backend) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.SamplerID, error) {
	s, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressMode,
		AddressModeV: desc.AddressMode,
		AddressModeW: desc.AddressMode,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create sampler %q: %w", desc.Label, err)
	}
	id := gpucore.SamplerID(b.newID())

	b.mu.Lock()
	b.samplers[id] = s
	b.mu.Unlock()

	return id, nil
}

// DestroySampler releases a sampler.
func (b *Backend) DestroySampler(id gpucore.SamplerID) {
	b.mu.Lock()
	s, ok := b.samplers[id]
	delete(b.samplers, id)
	b.mu.Unlock()

	if ok {
		b.retire(func() { b.device.DestroySampler(s) })
	}
}

// Destroy waits for the device to go idle, then releases pooled encoders,
// outstanding command buffers and any resources the caller leaked.
func (b *Backend) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	b.mu.Unlock()

	if err := b.device.WaitIdle(); err != nil {
		slogger().Warn("native: wait idle on destroy", "err", err)
	}
	b.reclaim(true)
	b.encoders.destroy()

	leaked := b.releaseAll()
	if leaked > 0 {
		slogger().Warn("native: released leaked resources", "count", leaked)
	}
}

// releaseAll destroys every tracked resource in reverse dependency order and
// returns how many were still alive.
func (b *Backend) releaseAll() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for id, p := range b.renderPipelines {
		b.device.DestroyRenderPipeline(p)
		delete(b.renderPipelines, id)
		n++
	}
	for id, l := range b.pipelineLayouts {
		b.device.DestroyPipelineLayout(l)
		delete(b.pipelineLayouts, id)
		n++
	}
	for id, m := range b.shaderModules {
		b.device.DestroyShaderModule(m)
		delete(b.shaderModules, id)
		n++
	}
	for id, g := range b.bindGroups {
		b.device.DestroyBindGroup(g)
		delete(b.bindGroups, id)
		n++
	}
	for id, l := range b.bindGroupLayouts {
		b.device.DestroyBindGroupLayout(l)
		delete(b.bindGroupLayouts, id)
		n++
	}
	for id, s := range b.samplers {
		b.device.DestroySampler(s)
		delete(b.samplers, id)
		n++
	}
	for id, t := range b.textures {
		if t.tex != nil {
			b.device.DestroyTextureView(t.view)
			b.device.DestroyTexture(t.tex)
			n++
		}
		delete(b.textures, id)
	}
	for id, e := range b.buffers {
		b.device.DestroyBuffer(e.buf)
		delete(b.buffers, id)
		n++
	}
	return n
}

// liveResources returns the number of tracked resources.
func (b *Backend) liveResources() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buffers) + len(b.textures) + len(b.samplers) + len(b.shaderModules) +
		len(b.bindGroupLayouts) + len(b.bindGroups) + len(b.pipelineLayouts) + len(b.renderPipelines)
}

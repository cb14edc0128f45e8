// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"errors"
	"math"
	"time"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
)

var errInjected = errors.New("injected failure")

// fakeBackend records every call and keeps resources as plain descriptors.
type fakeBackend struct {
	formats []gputypes.TextureFormat

	nextID uint64
	live   map[uint64]string

	buffers    map[gpucore.BufferID][]byte
	textures   map[gpucore.TextureID]gpucore.TextureDesc
	texData    map[gpucore.TextureID][]byte
	samplers   map[gpucore.SamplerID]gpucore.SamplerDesc
	bindGroups map[gpucore.BindGroupID]gpucore.BindGroupDesc
	layouts    map[gpucore.PipelineLayoutID][]gpucore.BindGroupLayoutID
	pipelines  map[gpucore.RenderPipelineID]gpucore.RenderPipelineDesc
	modules    []string

	configs  []gpucore.SurfaceConfig
	batches  []*gpucore.CommandBatch
	acquired []gpucore.SurfaceTexture
	presents int

	acquireErr   error
	submitErr    error
	configureErr error
	textureErr   error
	failPipeline string
}

func newFakeBackend(formats ...gputypes.TextureFormat) *fakeBackend {
	if len(formats) == 0 {
		formats = []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb}
	}
	return &fakeBackend{
		formats:    formats,
		live:       make(map[uint64]string),
		buffers:    make(map[gpucore.BufferID][]byte),
		textures:   make(map[gpucore.TextureID]gpucore.TextureDesc),
		texData:    make(map[gpucore.TextureID][]byte),
		samplers:   make(map[gpucore.SamplerID]gpucore.SamplerDesc),
		bindGroups: make(map[gpucore.BindGroupID]gpucore.BindGroupDesc),
		layouts:    make(map[gpucore.PipelineLayoutID][]gpucore.BindGroupLayoutID),
		pipelines:  make(map[gpucore.RenderPipelineID]gpucore.RenderPipelineDesc),
	}
}

var _ gpucore.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) add(kind string) uint64 {
	f.nextID++
	f.live[f.nextID] = kind
	return f.nextID
}

func (f *fakeBackend) remove(id uint64) { delete(f.live, id) }

// liveCount returns how many resources of kind are alive; "" counts all.
func (f *fakeBackend) liveCount(kind string) int {
	n := 0
	for _, k := range f.live {
		if kind == "" || k == kind {
			n++
		}
	}
	return n
}

// liveOffscreen returns the descriptors of live offscreen textures.
func (f *fakeBackend) liveOffscreen() []gpucore.TextureDesc {
	var out []gpucore.TextureDesc
	for id, desc := range f.textures {
		if _, ok := f.live[uint64(id)]; ok && desc.Label == "offscreen" {
			out = append(out, desc)
		}
	}
	return out
}

func (f *fakeBackend) Info() gpucore.AdapterInfo {
	return gpucore.AdapterInfo{Name: "fake", Backend: "test"}
}

func (f *fakeBackend) SurfaceFormats() []gputypes.TextureFormat { return f.formats }

func (f *fakeBackend) ConfigureSurface(cfg gpucore.SurfaceConfig) error {
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configs = append(f.configs, cfg)
	return nil
}

func (f *fakeBackend) AcquireSurfaceTexture() (gpucore.SurfaceTexture, error) {
	if f.acquireErr != nil {
		return gpucore.SurfaceTexture{}, f.acquireErr
	}
	cfg := f.configs[len(f.configs)-1]
	st := gpucore.SurfaceTexture{
		Texture: gpucore.TextureID(f.add("surface")),
		Width:   cfg.Width,
		Height:  cfg.Height,
	}
	f.acquired = append(f.acquired, st)
	return st, nil
}

func (f *fakeBackend) Present(st gpucore.SurfaceTexture) error {
	f.remove(uint64(st.Texture))
	f.presents++
	return nil
}

func (f *fakeBackend) CreateBuffer(desc *gpucore.BufferDesc) (gpucore.BufferID, error) {
	id := gpucore.BufferID(f.add("buffer"))
	f.buffers[id] = make([]byte, desc.Size)
	return id, nil
}

func (f *fakeBackend) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	buf, ok := f.buffers[id]
	if !ok {
		return errors.New("unknown buffer")
	}
	copy(buf[offset:], data)
	return nil
}

func (f *fakeBackend) DestroyBuffer(id gpucore.BufferID) { f.remove(uint64(id)) }

func (f *fakeBackend) CreateTexture(desc *gpucore.TextureDesc) (gpucore.TextureID, error) {
	if f.textureErr != nil {
		return gpucore.InvalidID, f.textureErr
	}
	id := gpucore.TextureID(f.add("texture"))
	f.textures[id] = *desc
	return id, nil
}

func (f *fakeBackend) WriteTexture(id gpucore.TextureID, data []byte, _, _, _ uint32) error {
	f.texData[id] = append([]byte(nil), data...)
	return nil
}

func (f *fakeBackend) DestroyTexture(id gpucore.TextureID) { f.remove(uint64(id)) }

func (f *fakeBackend) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.SamplerID, error) {
	id := gpucore.SamplerID(f.add("sampler"))
	f.samplers[id] = *desc
	return id, nil
}

func (f *fakeBackend) DestroySampler(id gpucore.SamplerID) { f.remove(uint64(id)) }

func (f *fakeBackend) CreateBindGroupLayout(*gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	return gpucore.BindGroupLayoutID(f.add("bind_group_layout")), nil
}

func (f *fakeBackend) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) { f.remove(uint64(id)) }

func (f *fakeBackend) CreateBindGroup(desc *gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	id := gpucore.BindGroupID(f.add("bind_group"))
	f.bindGroups[id] = *desc
	return id, nil
}

func (f *fakeBackend) DestroyBindGroup(id gpucore.BindGroupID) { f.remove(uint64(id)) }

func (f *fakeBackend) CreateShaderModule(desc *gpucore.ShaderModuleDesc) (gpucore.ShaderModuleID, error) {
	f.modules = append(f.modules, desc.Label)
	return gpucore.ShaderModuleID(f.add("shader_module")), nil
}

func (f *fakeBackend) DestroyShaderModule(id gpucore.ShaderModuleID) { f.remove(uint64(id)) }

func (f *fakeBackend) CreatePipelineLayout(_ string, layouts []gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	id := gpucore.PipelineLayoutID(f.add("pipeline_layout"))
	f.layouts[id] = append([]gpucore.BindGroupLayoutID(nil), layouts...)
	return id, nil
}

func (f *fakeBackend) DestroyPipelineLayout(id gpucore.PipelineLayoutID) { f.remove(uint64(id)) }

func (f *fakeBackend) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.RenderPipelineID, error) {
	if f.failPipeline == desc.Label {
		return gpucore.InvalidID, errInjected
	}
	id := gpucore.RenderPipelineID(f.add("render_pipeline"))
	f.pipelines[id] = *desc
	return id, nil
}

func (f *fakeBackend) DestroyRenderPipeline(id gpucore.RenderPipelineID) { f.remove(uint64(id)) }

func (f *fakeBackend) Submit(batch *gpucore.CommandBatch) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.batches = append(f.batches, batch)
	return nil
}

func (f *fakeBackend) Destroy() {}

// pipelineByLabel finds a live pipeline descriptor.
func (f *fakeBackend) pipelineByLabel(label string) (gpucore.RenderPipelineID, gpucore.RenderPipelineDesc, bool) {
	for id, desc := range f.pipelines {
		if _, ok := f.live[uint64(id)]; ok && desc.Label == label {
			return id, desc, true
		}
	}
	return gpucore.InvalidID, gpucore.RenderPipelineDesc{}, false
}

// decodeFloats reads little-endian float32 values.
func decodeFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}

// fakeClock advances only when told to.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

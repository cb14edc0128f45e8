// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/backdrop/internal/color"
	"github.com/gogpu/backdrop/internal/shaders"
	"github.com/gogpu/backdrop/text"
	"github.com/gogpu/gputypes"
)

// State is the composer lifecycle state.
type State uint8

const (
	// StateUnconfigured skips every draw until a valid resize.
	StateUnconfigured State = iota

	// StateReady draws frames.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "unconfigured"
}

var opaqueBlack = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

// TextBlend inverts what lies under the text: the result is
// src*(1-dst) + dst*(1-srcAlpha) for colour and alpha alike.
var TextBlend = gputypes.BlendState{
	Color: gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOneMinusDst,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	},
	Alpha: gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOneMinusDst,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	},
}

// ErrNoText is returned by NewComposer when no text bitmap is given.
var ErrNoText = errors.New("render: missing text bitmap")

// ComposerConfig holds the inputs fixed for the composer's lifetime.
type ComposerConfig struct {
	Text    *text.Bitmap
	Palette color.Palette

	// Now is the frame clock. Defaults to time.Now.
	Now func() time.Time
}

// Composer owns every GPU resource of the backdrop and records the
// three-pass frame.
type Composer struct {
	ctx     *Context
	backend gpucore.Backend

	now   func() time.Time
	start time.Time

	uniformBuf gpucore.BufferID
	paletteBuf gpucore.BufferID
	quadBuf    gpucore.BufferID
	textBuf    gpucore.BufferID

	uniformLayout gpucore.BindGroupLayoutID
	textureLayout gpucore.BindGroupLayoutID
	uniformGroup  gpucore.BindGroupID

	textTexture gpucore.TextureID
	textSampler gpucore.SamplerID
	textGroup   gpucore.BindGroupID
	textWidth   uint32
	textHeight  uint32

	effect *Pipeline
	text   *Pipeline
	post   *Pipeline

	target *OffscreenTarget

	state  State
	halfX  float32
	halfY  float32
	closed bool
}

// NewComposer creates the buffers, bind groups and pipelines. The composer
// starts Unconfigured; call Resize before the first Draw.
func NewComposer(ctx *Context, cfg ComposerConfig) (*Composer, error) {
	if cfg.Text == nil || cfg.Text.Width <= 0 || cfg.Text.Height <= 0 {
		return nil, ErrNoText
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	c := &Composer{
		ctx:        ctx,
		backend:    ctx.Backend(),
		now:        now,
		textWidth:  uint32(cfg.Text.Width),  //nolint:gosec // checked positive above
		textHeight: uint32(cfg.Text.Height), //nolint:gosec // checked positive above
	}
	c.start = now()

	if err := c.init(cfg); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Composer) init(cfg ComposerConfig) error {
	b := c.backend
	var err error

	// Buffers.
	if c.uniformBuf, err = c.createBuffer("uniforms", UniformsSize, gputypes.BufferUsageUniform); err != nil {
		return err
	}
	initial := Uniforms{Time: 0, Aspect: c.ctx.Aspect()}
	if err = b.WriteBuffer(c.uniformBuf, 0, initial.Bytes()); err != nil {
		return fmt.Errorf("render: write uniforms: %w", err)
	}

	if c.paletteBuf, err = c.createBuffer("palette", color.PaletteSize, gputypes.BufferUsageUniform); err != nil {
		return err
	}
	if err = b.WriteBuffer(c.paletteBuf, 0, cfg.Palette.Bytes()); err != nil {
		return fmt.Errorf("render: write palette: %w", err)
	}

	quad := Quad(1, 1)
	if c.quadBuf, err = c.createBuffer("quad", QuadVertexCount*VertexSize, gputypes.BufferUsageVertex); err != nil {
		return err
	}
	if err = b.WriteBuffer(c.quadBuf, 0, EncodeVertices(quad[:])); err != nil {
		return fmt.Errorf("render: write quad: %w", err)
	}
	if c.textBuf, err = c.createBuffer("text_quad", QuadVertexCount*VertexSize, gputypes.BufferUsageVertex); err != nil {
		return err
	}

	// Layouts.
	c.uniformLayout, err = b.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "uniforms",
		Entries: []gputypes.BindGroupLayoutEntry{
			uniformEntry(0),
			uniformEntry(1),
		},
	})
	if err != nil {
		return fmt.Errorf("render: uniform layout: %w", err)
	}
	c.textureLayout, err = b.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "texture",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: texture layout: %w", err)
	}

	c.uniformGroup, err = b.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:  "uniforms",
		Layout: c.uniformLayout,
		Entries: []gpucore.BindGroupEntry{
			{Binding: 0, Buffer: c.uniformBuf, Size: UniformsSize},
			{Binding: 1, Buffer: c.paletteBuf, Size: color.PaletteSize},
		},
	})
	if err != nil {
		return fmt.Errorf("render: uniform bind group: %w", err)
	}

	if err = c.initText(cfg.Text); err != nil {
		return err
	}

	// Pipelines.
	quadPipeline := func(format gputypes.TextureFormat, source string) PipelineBuilder {
		return NewPipelineBuilder(b, format, source).WithVertexBuffer(VertexLayout())
	}
	c.effect, err = quadPipeline(OffscreenFormat, shaders.Effect).
		WithBindGroupLayout(c.uniformLayout).
		WithLabel("effect").
		Build()
	if err != nil {
		return err
	}
	c.text, err = quadPipeline(OffscreenFormat, shaders.Text).
		WithBindGroupLayout(c.textureLayout).
		WithBlend(TextBlend).
		WithLabel("text").
		Build()
	if err != nil {
		return err
	}
	c.post, err = quadPipeline(c.ctx.Format(), shaders.Post).
		WithBindGroupLayout(c.uniformLayout).
		WithBindGroupLayout(c.textureLayout).
		WithLabel("post").
		Build()
	return err
}

func (c *Composer) initText(bm *text.Bitmap) error {
	b := c.backend
	var err error

	c.textTexture, err = b.CreateTexture(&gpucore.TextureDesc{
		Label:  "text",
		Width:  c.textWidth,
		Height: c.textHeight,
		Format: gputypes.TextureFormatRGBA8UnormSrgb,
		Usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("render: text texture: %w", err)
	}
	if err = b.WriteTexture(c.textTexture, bm.Pix, uint32(bm.Stride()), c.textWidth, c.textHeight); err != nil { //nolint:gosec // stride of a valid bitmap
		return fmt.Errorf("render: upload text: %w", err)
	}

	c.textSampler, err = b.CreateSampler(&gpucore.SamplerDesc{
		Label:        "text",
		AddressMode:  gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("render: text sampler: %w", err)
	}

	c.textGroup, err = b.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:  "text",
		Layout: c.textureLayout,
		Entries: []gpucore.BindGroupEntry{
			{Binding: 0, Texture: c.textTexture},
			{Binding: 1, Sampler: c.textSampler},
		},
	})
	if err != nil {
		return fmt.Errorf("render: text bind group: %w", err)
	}
	return nil
}

func (c *Composer) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (gpucore.BufferID, error) {
	id, err := c.backend.CreateBuffer(&gpucore.BufferDesc{
		Label: label,
		Size:  size,
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("render: %s buffer: %w", label, err)
	}
	return id, nil
}

func uniformEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
	}
}

// Resize reconfigures the surface and reallocates the offscreen target for
// the new size. Zero-area sizes are ignored. On failure the composer is
// left Unconfigured so that draws are skipped until the next resize.
func (c *Composer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	if c.closed {
		return errors.New("render: composer closed")
	}
	c.state = StateUnconfigured

	if err := c.ctx.Reconfigure(width, height); err != nil {
		return err
	}

	c.target.Destroy()
	c.target = nil
	target, err := NewOffscreenTarget(c.backend, c.textureLayout, width, height)
	if err != nil {
		return err
	}
	c.target = target

	hx, hy := TextHalfExtent(c.textWidth, c.textHeight, width, height)
	quad := Quad(hx, hy)
	if err := c.backend.WriteBuffer(c.textBuf, 0, EncodeVertices(quad[:])); err != nil {
		return fmt.Errorf("render: write text quad: %w", err)
	}

	c.halfX, c.halfY = hx, hy
	c.state = StateReady
	slogger().Debug("render: resized", "width", width, "height", height, "text_half_x", hx, "text_half_y", hy)
	return nil
}

// Draw renders and presents one frame. It does nothing until the first
// successful Resize. Every error is a *gpucore.SurfaceError; Lost and
// Outdated are cleared by resizing to the current window size.
func (c *Composer) Draw() error {
	if c.state != StateReady {
		return nil
	}

	u := Uniforms{
		Time:   float32(c.now().Sub(c.start).Seconds()),
		Aspect: c.ctx.Aspect(),
	}
	if err := c.backend.WriteBuffer(c.uniformBuf, 0, u.Bytes()); err != nil {
		return asSurfaceError(fmt.Errorf("render: write uniforms: %w", err))
	}

	st, err := c.backend.AcquireSurfaceTexture()
	if err != nil {
		return asSurfaceError(err)
	}

	batch := c.record(st.Texture)
	submitErr := c.backend.Submit(batch)
	// The image goes back to the surface even when the submit failed.
	if err := c.backend.Present(st); err != nil && submitErr == nil {
		return asSurfaceError(err)
	}
	if submitErr != nil {
		return asSurfaceError(fmt.Errorf("render: submit: %w", submitErr))
	}
	return nil
}

// record builds the frame: effect and text into the offscreen target, then
// post into surface.
func (c *Composer) record(surface gpucore.TextureID) *gpucore.CommandBatch {
	batch := &gpucore.CommandBatch{Label: "frame"}

	pass := batch.BeginPass("offscreen", c.target.Texture(), opaqueBlack)
	pass.Draw(gpucore.DrawCall{
		Label:        "effect",
		Pipeline:     c.effect.ID(),
		VertexBuffer: c.quadBuf,
		BindGroups:   []gpucore.BindGroupID{c.uniformGroup},
		VertexCount:  QuadVertexCount,
	})
	pass.Draw(gpucore.DrawCall{
		Label:        "text",
		Pipeline:     c.text.ID(),
		VertexBuffer: c.textBuf,
		BindGroups:   []gpucore.BindGroupID{c.textGroup},
		VertexCount:  QuadVertexCount,
	})

	pass = batch.BeginPass("post", surface, opaqueBlack)
	pass.Draw(gpucore.DrawCall{
		Label:        "post",
		Pipeline:     c.post.ID(),
		VertexBuffer: c.quadBuf,
		BindGroups:   []gpucore.BindGroupID{c.uniformGroup, c.target.BindGroup()},
		VertexCount:  QuadVertexCount,
	})
	return batch
}

// State returns the lifecycle state.
func (c *Composer) State() State { return c.state }

// Size returns the configured surface size, or the initial window size
// before the first resize.
func (c *Composer) Size() (width, height uint32) { return c.ctx.Size() }

// Aspect returns the aspect ratio written to the uniforms.
func (c *Composer) Aspect() float32 { return c.ctx.Aspect() }

// TextHalfExtent returns the current text quad half-extent.
func (c *Composer) TextHalfExtent() (hx, hy float32) { return c.halfX, c.halfY }

// Target returns the offscreen target, or nil before the first resize.
func (c *Composer) Target() *OffscreenTarget { return c.target }

// Close releases every resource in reverse creation order. It is safe to
// call more than once.
func (c *Composer) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.state = StateUnconfigured
	b := c.backend

	c.target.Destroy()
	c.target = nil
	c.post.Destroy()
	c.text.Destroy()
	c.effect.Destroy()

	if c.textGroup != gpucore.InvalidID {
		b.DestroyBindGroup(c.textGroup)
	}
	if c.textSampler != gpucore.InvalidID {
		b.DestroySampler(c.textSampler)
	}
	if c.textTexture != gpucore.InvalidID {
		b.DestroyTexture(c.textTexture)
	}
	if c.uniformGroup != gpucore.InvalidID {
		b.DestroyBindGroup(c.uniformGroup)
	}
	if c.textureLayout != gpucore.InvalidID {
		b.DestroyBindGroupLayout(c.textureLayout)
	}
	if c.uniformLayout != gpucore.InvalidID {
		b.DestroyBindGroupLayout(c.uniformLayout)
	}
	for _, id := range []gpucore.BufferID{c.textBuf, c.quadBuf, c.paletteBuf, c.uniformBuf} {
		if id != gpucore.InvalidID {
			b.DestroyBuffer(id)
		}
	}
	slogger().Debug("render: composer closed")
}

// asSurfaceError classifies err, treating anything unrecognised as Other.
func asSurfaceError(err error) error {
	var se *gpucore.SurfaceError
	if errors.As(err, &se) {
		return err
	}
	return gpucore.NewSurfaceError(gpucore.SurfaceErrorOther, err)
}

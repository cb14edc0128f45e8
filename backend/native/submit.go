// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// encoderPool keeps closed command encoders for reuse. An encoder goes back
// to the pool only after ResetAll, once its command buffer has completed.
type encoderPool struct {
	mu     sync.Mutex
	free   []hal.CommandEncoder
	device hal.Device
}

func newEncoderPool(device hal.Device) *encoderPool {
	return &encoderPool{device: device}
}

// acquire returns a pooled encoder or creates a new one.
func (p *encoderPool) acquire(label string) (hal.CommandEncoder, error) {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		enc := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return enc, nil
	}
	p.mu.Unlock()

	enc, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("native: create command encoder: %w", err)
	}
	return enc, nil
}

func (p *encoderPool) release(enc hal.CommandEncoder) {
	p.mu.Lock()
	p.free = append(p.free, enc)
	p.mu.Unlock()
}

func (p *encoderPool) destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, enc := range p.free {
		enc.Destroy()
	}
	p.free = nil
}

// inflightSubmission is a command buffer the GPU may still be reading.
type inflightSubmission struct {
	index   uint64
	encoder hal.CommandEncoder
	cmd     hal.CommandBuffer
}

// Submit encodes every pass of the batch into one command buffer and submits
// it. Each pass clears its target; draws run in recorded order.
func (b *Backend) Submit(batch *gpucore.CommandBatch) error {
	b.mu.Lock()
	destroyed := b.destroyed
	b.mu.Unlock()
	if destroyed {
		return ErrDestroyed
	}

	b.reclaim(false)

	enc, err := b.encoders.acquire(batch.Label)
	if err != nil {
		return err
	}
	if err := enc.BeginEncoding(batch.Label); err != nil {
		b.encoders.release(enc)
		return fmt.Errorf("native: begin encoding %q: %w", batch.Label, err)
	}
	if err := b.encodePasses(enc, batch); err != nil {
		enc.DiscardEncoding()
		b.encoders.release(enc)
		return err
	}
	cmd, err := enc.EndEncoding()
	if err != nil {
		b.encoders.release(enc)
		return fmt.Errorf("native: end encoding %q: %w", batch.Label, err)
	}

	index, err := b.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		enc.ResetAll([]hal.CommandBuffer{cmd})
		b.encoders.release(enc)
		return fmt.Errorf("native: submit %q: %w", batch.Label, err)
	}

	b.mu.Lock()
	b.inflight = append(b.inflight, inflightSubmission{index: index, encoder: enc, cmd: cmd})
	b.lastSubmit = index
	b.mu.Unlock()
	return nil
}

// encodePasses resolves every ID up front so that a bad batch is rejected
// before any render pass is opened.
func (b *Backend) encodePasses(enc hal.CommandEncoder, batch *gpucore.CommandBatch) error {
	type resolvedDraw struct {
		pipeline hal.RenderPipeline
		vertex   hal.Buffer
		groups   []hal.BindGroup
		count    uint32
	}
	type resolvedPass struct {
		label string
		view  hal.TextureView
		clear gputypes.Color
		draws []resolvedDraw
	}

	passes := make([]resolvedPass, 0, len(batch.Passes))

	b.mu.Lock()
	for _, p := range batch.Passes {
		t, ok := b.textures[p.Target]
		if !ok {
			b.mu.Unlock()
			return fmt.Errorf("native: pass %q target %d: %w", p.Label, p.Target, ErrUnknownResource)
		}
		rp := resolvedPass{label: p.Label, view: t.view, clear: p.ClearColor}
		for _, d := range p.Draws {
			pipeline, ok := b.renderPipelines[d.Pipeline]
			if !ok {
				b.mu.Unlock()
				return fmt.Errorf("native: draw %q pipeline %d: %w", d.Label, d.Pipeline, ErrUnknownResource)
			}
			rd := resolvedDraw{pipeline: pipeline, count: d.VertexCount}
			if d.VertexBuffer != gpucore.InvalidID {
				vb, ok := b.buffers[d.VertexBuffer]
				if !ok {
					b.mu.Unlock()
					return fmt.Errorf("native: draw %q vertex buffer %d: %w", d.Label, d.VertexBuffer, ErrUnknownResource)
				}
				rd.vertex = vb.buf
			}
			for _, gid := range d.BindGroups {
				g, ok := b.bindGroups[gid]
				if !ok {
					b.mu.Unlock()
					return fmt.Errorf("native: draw %q bind group %d: %w", d.Label, gid, ErrUnknownResource)
				}
				rd.groups = append(rd.groups, g)
			}
			rp.draws = append(rp.draws, rd)
		}
		passes = append(passes, rp)
	}
	b.mu.Unlock()

	for _, p := range passes {
		rp := enc.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: p.label,
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:       p.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: p.clear,
			}},
		})
		for _, d := range p.draws {
			rp.SetPipeline(d.pipeline)
			for i, g := range d.groups {
				rp.SetBindGroup(uint32(i), g, nil)
			}
			if d.vertex != nil {
				rp.SetVertexBuffer(0, d.vertex, 0)
			}
			rp.Draw(d.count, 1, 0, 0)
		}
		rp.End()
	}
	return nil
}

// deferredRelease is a HAL destroy held back until every submission made
// before it has completed.
type deferredRelease struct {
	after   uint64
	release func()
}

// retire schedules release behind the latest submission. With nothing in
// flight it runs at once.
func (b *Backend) retire(release func()) {
	b.mu.Lock()
	b.deferred = append(b.deferred, deferredRelease{after: b.lastSubmit, release: release})
	b.mu.Unlock()
	b.reclaim(false)
}

// drain blocks until the device is idle when submissions are in flight and
// then reclaims everything.
func (b *Backend) drain() {
	if b.inflightCount() == 0 && b.deferredCount() == 0 {
		return
	}
	if err := b.device.WaitIdle(); err != nil {
		slogger().Warn("native: wait idle", "err", err)
	}
	b.reclaim(true)
}

// reclaim resets encoders whose submissions have completed, which releases
// their command buffers, returns them to the pool and runs the destroys
// queued behind them in order. With all set, everything is reclaimed; the
// caller must have waited for the device to go idle.
func (b *Backend) reclaim(all bool) {
	completed := b.queue.PollCompleted()

	b.mu.Lock()
	keep := b.inflight[:0]
	var done []inflightSubmission
	for _, s := range b.inflight {
		if all || s.index <= completed {
			done = append(done, s)
		} else {
			keep = append(keep, s)
		}
	}
	b.inflight = keep

	pending := b.deferred[:0]
	var releases []func()
	for _, d := range b.deferred {
		if all || d.after <= completed {
			releases = append(releases, d.release)
		} else {
			pending = append(pending, d)
		}
	}
	clear(b.deferred[len(pending):])
	b.deferred = pending
	b.mu.Unlock()

	for _, s := range done {
		s.encoder.ResetAll([]hal.CommandBuffer{s.cmd})
		b.encoders.release(s.encoder)
	}
	for _, release := range releases {
		release()
	}
}

// inflightCount returns the number of submissions not yet reclaimed.
func (b *Backend) inflightCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.inflight)
}

// deferredCount returns the number of destroys still waiting on the GPU.
func (b *Backend) deferredCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.deferred)
}

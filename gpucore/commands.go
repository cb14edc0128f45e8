// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

import "github.com/gogpu/gputypes"

// DrawCall records one non-indexed draw inside a render pass.
type DrawCall struct {
	// Label names the draw for logs and tests.
	Label string

	Pipeline RenderPipelineID

	// VertexBuffer is bound at vertex buffer slot 0.
	VertexBuffer BufferID

	// BindGroups are bound in order; the index is the bind group slot.
	BindGroups []BindGroupID

	VertexCount uint32
}

// RenderPass records a color render pass over a single attachment.
// The attachment is cleared to ClearColor when the pass begins.
type RenderPass struct {
	Label      string
	Target     TextureID
	ClearColor gputypes.Color
	Draws      []DrawCall
}

// CommandBatch is an ordered list of render passes submitted as one unit.
type CommandBatch struct {
	Label  string
	Passes []RenderPass
}

// BeginPass appends a new pass and returns a pointer to it for recording.
// The pointer is valid until the next BeginPass call.
func (b *CommandBatch) BeginPass(label string, target TextureID, clear gputypes.Color) *RenderPass {
	b.Passes = append(b.Passes, RenderPass{
		Label:      label,
		Target:     target,
		ClearColor: clear,
	})
	return &b.Passes[len(b.Passes)-1]
}

// Draw appends a draw call to the pass.
func (p *RenderPass) Draw(d DrawCall) {
	p.Draws = append(p.Draws, d)
}

// DrawCount returns the total number of draw calls across all passes.
func (b *CommandBatch) DrawCount() int {
	n := 0
	for i := range b.Passes {
		n += len(b.Passes[i].Draws)
	}
	return n
}

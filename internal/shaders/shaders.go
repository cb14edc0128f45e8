// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shaders holds the WGSL sources of the three render passes.
//
// Every module declares a vs_main vertex entry point taking position at
// location 0 and uv at location 1, and an fs_main fragment entry point.
package shaders

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Entry point names shared by all modules.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Effect draws the noise background into the offscreen target.
// Group 0: binding 0 uniforms {time, aspect}, binding 1 palette {bg, fg}.
//
//go:embed effect.wgsl
var Effect string

// Text draws the text bitmap.
// Group 0: binding 0 texture, binding 1 sampler.
//
//go:embed text.wgsl
var Text string

// Post samples the offscreen target with a time-varying distortion.
// Group 0: binding 0 uniforms. Group 1: binding 0 texture, binding 1 sampler.
//
//go:embed post.wgsl
var Post string

// Module is a named WGSL source.
type Module struct {
	Name string
	WGSL string
}

// All returns every module in pass order.
func All() []Module {
	return []Module{
		{Name: "effect", WGSL: Effect},
		{Name: "text", WGSL: Text},
		{Name: "post", WGSL: Post},
	}
}

// CompileSPIRV compiles WGSL source to SPIR-V words.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, err
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("spirv output is %d bytes, not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Validate compiles every module and reports the first failure.
func Validate() error {
	for _, m := range All() {
		if _, err := CompileSPIRV(m.WGSL); err != nil {
			return fmt.Errorf("shaders: compile %s: %w", m.Name, err)
		}
	}
	return nil
}

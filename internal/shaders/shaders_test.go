// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaders

import (
	"strings"
	"testing"
)

const spirvMagic = 0x07230203

func TestModulesCompile(t *testing.T) {
	for _, m := range All() {
		t.Run(m.Name, func(t *testing.T) {
			words, err := CompileSPIRV(m.WGSL)
			if err != nil {
				t.Fatalf("CompileSPIRV: %v", err)
			}
			if len(words) < 5 {
				t.Fatalf("got %d words, want a SPIR-V header", len(words))
			}
			if words[0] != spirvMagic {
				t.Errorf("magic = %#x, want %#x", words[0], spirvMagic)
			}
		})
	}
}

func TestModulesDeclareEntryPoints(t *testing.T) {
	for _, m := range All() {
		t.Run(m.Name, func(t *testing.T) {
			if m.WGSL == "" {
				t.Fatal("empty source")
			}
			for _, entry := range []string{"fn " + VertexEntry + "(", "fn " + FragmentEntry + "("} {
				if !strings.Contains(m.WGSL, entry) {
					t.Errorf("missing %q", entry)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestCompileSPIRVRejectsBrokenSource(t *testing.T) {
	if _, err := CompileSPIRV("fn broken( {"); err == nil {
		t.Error("expected an error for malformed WGSL")
	}
}

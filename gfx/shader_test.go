// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func newTestMaterial(t *testing.T) (*Material, *nopDriver) {
	t.Helper()
	device, drv := newTestDevice(t)
	drv.uniforms = []UniformInfo{
		{Name: "u_matrix", Type: UniformMat4x4},
		{Name: "u_range", Type: UniformFloat4},
		{Name: "u_weights", Type: UniformFloat, ArrayLength: 3},
		{Name: "u_texture", Type: UniformTexture2D},
		{Name: "u_sampler", Type: UniformSampler2D},
	}
	shader, err := device.NewShader("vs", "fs")
	if err != nil {
		t.Fatalf("NewShader() error = %v", err)
	}
	return NewMaterial(shader), drv
}

func TestUniformTypeSize(t *testing.T) {
	tests := []struct {
		typ  UniformType
		want int
	}{
		{UniformNone, 0},
		{UniformFloat, 4},
		{UniformFloat2, 8},
		{UniformFloat3, 12},
		{UniformFloat4, 16},
		{UniformMat3x2, 24},
		{UniformMat4x4, 64},
		{UniformTexture2D, 0},
		{UniformSampler2D, 0},
	}
	for _, tt := range tests {
		if got := tt.typ.Size(); got != tt.want {
			t.Errorf("UniformType(%d).Size() = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestMaterialSetFloats(t *testing.T) {
	m, _ := newTestMaterial(t)

	if err := m.SetVec4("u_range", 4, 0, 0, 0); err != nil {
		t.Errorf("SetVec4() error = %v", err)
	}
	if err := m.SetMat4x4("u_matrix", [16]float32{}); err != nil {
		t.Errorf("SetMat4x4() error = %v", err)
	}
	// Array uniforms take one float per element.
	if err := m.SetFloats("u_weights", 1, 2, 3); err != nil {
		t.Errorf("SetFloats() on array error = %v", err)
	}
}

func TestMaterialSetFloatsSizeMismatch(t *testing.T) {
	m, _ := newTestMaterial(t)
	if err := m.SetFloats("u_range", 1, 2); !errors.Is(err, ErrDataSize) {
		t.Errorf("short SetFloats() error = %v, want ErrDataSize", err)
	}
	if err := m.SetFloats("u_weights", 1, 2, 3, 4); !errors.Is(err, ErrDataSize) {
		t.Errorf("long SetFloats() error = %v, want ErrDataSize", err)
	}
}

func TestMaterialUnknownUniform(t *testing.T) {
	m, _ := newTestMaterial(t)

	var notFound *UniformNotFoundError
	if err := m.SetFloat("u_missing", 1); !errors.As(err, &notFound) {
		t.Fatalf("SetFloat() error = %T, want *UniformNotFoundError", err)
	}
	if notFound.Name != "u_missing" {
		t.Errorf("error names uniform %q, want %q", notFound.Name, "u_missing")
	}
	if err := m.SetSampler("u_missing", Sampler{}); !errors.As(err, &notFound) {
		t.Errorf("SetSampler() error = %T, want *UniformNotFoundError", err)
	}
}

func TestMaterialTextureBinding(t *testing.T) {
	m, _ := newTestMaterial(t)
	device, _ := newTestDevice(t)
	tex, err := device.NewTexture(4, 4, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	defer tex.Release()

	if err := m.SetTexture("u_texture", tex); err != nil {
		t.Fatalf("SetTexture() error = %v", err)
	}
	if m.textures["u_texture"] != tex {
		t.Error("SetTexture() did not record the binding")
	}
	// nil unbinds.
	if err := m.SetTexture("u_texture", nil); err != nil {
		t.Fatalf("SetTexture(nil) error = %v", err)
	}
	if _, bound := m.textures["u_texture"]; bound {
		t.Error("SetTexture(nil) left the binding in place")
	}
}

func TestMaterialHas(t *testing.T) {
	m, _ := newTestMaterial(t)
	if !m.Has("u_texture") {
		t.Error("Has(u_texture) = false, want true")
	}
	if m.Has("u_nope") {
		t.Error("Has(u_nope) = true, want false")
	}
}

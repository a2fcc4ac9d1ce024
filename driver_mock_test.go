// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"encoding/binary"
	"image"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/batch/gfx"
)

// mockDriver records driver calls so tests can assert on the compiled
// draw stream without a GPU.
type mockDriver struct {
	nextID  uint64
	uploads map[gfx.BufferID][][]byte
	bufCaps map[gfx.BufferID]int
	draws   []gfx.DrawCall
	clears  []gfx.ClearCall
}

func newMockDriver() *mockDriver {
	return &mockDriver{
		uploads: make(map[gfx.BufferID][][]byte),
		bufCaps: make(map[gfx.BufferID]int),
	}
}

func (d *mockDriver) id() uint64 {
	d.nextID++
	return d.nextID
}

func (d *mockDriver) Name() string { return "mock" }

func (d *mockDriver) CreateBuffer(kind gfx.BufferKind, stride, byteCapacity int) (gfx.BufferID, error) {
	id := gfx.BufferID(d.id())
	d.bufCaps[id] = byteCapacity
	return id, nil
}

func (d *mockDriver) UploadBufferData(id gfx.BufferID, byteOffset int, data []byte) error {
	d.uploads[id] = append(d.uploads[id], append([]byte(nil), data...))
	return nil
}

func (d *mockDriver) DestroyBuffer(id gfx.BufferID) {}

func (d *mockDriver) CreateTexture(w, h int, format gputypes.TextureFormat) (gfx.TextureID, error) {
	return gfx.TextureID(d.id()), nil
}

func (d *mockDriver) SetTextureData(id gfx.TextureID, rect gfx.RectI, data []byte) error {
	return nil
}

func (d *mockDriver) GetTextureData(id gfx.TextureID) (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (d *mockDriver) DestroyTexture(id gfx.TextureID) {}

func (d *mockDriver) CreateTarget(color gfx.TextureID, depthStencil bool) (gfx.TargetID, error) {
	return gfx.TargetID(d.id()), nil
}

func (d *mockDriver) DestroyTarget(id gfx.TargetID) {}

func (d *mockDriver) CreateShader(vertex, fragment string) (gfx.ShaderID, []gfx.UniformInfo, error) {
	return gfx.ShaderID(d.id()), []gfx.UniformInfo{
		{Name: "u_matrix", Type: gfx.UniformMat4x4, ArrayLength: 1},
		{Name: "u_range", Type: gfx.UniformFloat4, ArrayLength: 1},
		{Name: "u_texture", Type: gfx.UniformTexture2D, ArrayLength: 1},
		{Name: "u_sampler", Type: gfx.UniformSampler2D, ArrayLength: 1},
	}, nil
}

func (d *mockDriver) SetUniform(id gfx.ShaderID, name string, data []byte) error { return nil }

func (d *mockDriver) SetShaderTexture(id gfx.ShaderID, name string, tex gfx.TextureID) error {
	return nil
}

func (d *mockDriver) SetShaderSampler(id gfx.ShaderID, name string, s gfx.Sampler) error {
	return nil
}

func (d *mockDriver) DestroyShader(id gfx.ShaderID) {}

func (d *mockDriver) SupportsFormat(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatRGBA8Unorm
}

func (d *mockDriver) SurfaceSize() (int, int) { return 640, 360 }

func (d *mockDriver) Draw(call gfx.DrawCall) error {
	d.draws = append(d.draws, call)
	return nil
}

func (d *mockDriver) Clear(call gfx.ClearCall) error {
	d.clears = append(d.clears, call)
	return nil
}

// newTestBatcher builds a batcher on a mock device.
func newTestBatcher(t *testing.T) (*Batcher, *mockDriver) {
	t.Helper()
	drv := newMockDriver()
	device, err := gfx.NewDevice(drv)
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	b, err := NewBatcher(device)
	if err != nil {
		t.Fatalf("NewBatcher() error = %v", err)
	}
	return b, drv
}

// newTestTexture allocates a blank texture of the given size on the
// mock device.
func newTestTexture(t *testing.T, device *gfx.Device, w, h int) *gfx.Texture {
	t.Helper()
	tex, err := device.NewTexture(w, h, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	return tex
}

// float32FromBits decodes a little-endian float32 from packed vertex
// bytes.
func float32FromBits(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"image"

	"github.com/gogpu/gputypes"
)

// Texture is a GPU texture. Textures are comparable by pointer, which
// the batcher relies on for state-change detection.
type Texture struct {
	device   *Device
	id       TextureID
	width    int
	height   int
	format   gputypes.TextureFormat
	disposed bool
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Format returns the texel format.
func (t *Texture) Format() gputypes.TextureFormat {
	return t.format
}

// SetData replaces the texel rectangle rect with data, which must hold
// exactly rect.W*rect.H texels, tightly packed.
func (t *Texture) SetData(rect RectI, data []byte) error {
	if t.disposed {
		panic(ErrResourceDisposed)
	}
	if rect.X < 0 || rect.Y < 0 || rect.X+rect.W > t.width || rect.Y+rect.H > t.height {
		return ErrInvalidSize
	}
	return t.device.driver.SetTextureData(t.id, rect, data)
}

// SetFullData replaces the whole texture.
func (t *Texture) SetFullData(data []byte) error {
	return t.SetData(RectI{W: t.width, H: t.height}, data)
}

// Data reads the texture back into an RGBA image. Only RGBA8 formats
// are readable.
func (t *Texture) Data() (*image.RGBA, error) {
	if t.disposed {
		panic(ErrResourceDisposed)
	}
	return t.device.driver.GetTextureData(t.id)
}

// Release destroys the driver-side texture. Release is idempotent;
// further use panics with ErrResourceDisposed.
func (t *Texture) Release() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.device.driver.DestroyTexture(t.id)
}

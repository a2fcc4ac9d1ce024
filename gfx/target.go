// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// Target is an offscreen render target with a sampleable color texture.
// A nil *Target means the backbuffer throughout the package.
type Target struct {
	device   *Device
	id       TargetID
	color    *Texture
	disposed bool
}

// Texture returns the color attachment, usable as a sampled texture
// once rendering to the target has been submitted.
func (t *Target) Texture() *Texture {
	return t.color
}

// Width returns the target width in pixels.
func (t *Target) Width() int {
	return t.color.width
}

// Height returns the target height in pixels.
func (t *Target) Height() int {
	return t.color.height
}

// Release destroys the target and its color texture.
func (t *Target) Release() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.device.driver.DestroyTarget(t.id)
	t.color.Release()
}

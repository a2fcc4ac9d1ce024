// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/batch/gfx"
)

// Presentation errors.
var (
	// ErrInvalidRenderer is returned when the draw context exposes no
	// texture creator.
	ErrInvalidRenderer = errors.New("batch: renderer must implement gpucontext.TextureCreator")

	// ErrNilTarget is returned when a Presenter is created without a
	// target.
	ErrNilTarget = errors.New("batch: nil target")
)

// textureDestroyer matches the Destroy signature of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// Presenter copies an offscreen render target into a windowing context
// each frame. It bridges a Batcher rendering into a gfx.Target with a
// gogpu application context obtained from Context.AsTextureDrawer().
//
// Presenter is NOT safe for concurrent use.
type Presenter struct {
	target     *gfx.Target
	texture    any
	oldTexture any
}

// NewPresenter creates a presenter for the given target.
func NewPresenter(target *gfx.Target) (*Presenter, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	return &Presenter{target: target}, nil
}

// Present reads the target back and draws it at (x, y).
//
// The readback waits for all submitted GPU work, so the previous
// frame's context texture is safe to destroy once the new one exists.
func (p *Presenter) Present(dc gpucontext.TextureDrawer, x, y float32) error {
	img, err := p.target.Texture().Data()
	if err != nil {
		return fmt.Errorf("batch: read target: %w", err)
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrInvalidRenderer
	}

	tex, err := creator.NewTextureFromRGBA(p.target.Width(), p.target.Height(), img.Pix)
	if err != nil {
		return fmt.Errorf("batch: NewTextureFromRGBA failed: %w", err)
	}

	// Batcher output is premultiplied alpha. Mark the texture so the
	// context composites with a One source factor.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}

	p.oldTexture = p.texture
	p.texture = tex

	// NewTextureFromRGBA waits for the GPU, so the old texture's
	// descriptors are no longer in flight.
	if p.oldTexture != nil {
		if destroyer, ok := p.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		p.oldTexture = nil
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidRenderer
	}
	return dc.DrawTexture(gpuTex, x, y)
}

// Release destroys the presenter's context textures. The render target
// itself stays alive; its owner releases it.
func (p *Presenter) Release() {
	for _, t := range []any{p.texture, p.oldTexture} {
		if destroyer, ok := t.(textureDestroyer); ok {
			destroyer.Destroy()
		}
	}
	p.texture = nil
	p.oldTexture = nil
}

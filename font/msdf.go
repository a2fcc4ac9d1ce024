// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"image"

	"github.com/gogpu/batch/gfx"
)

// KernPair is one kerning adjustment in an MSDF descriptor.
type KernPair struct {
	First  rune
	Second rune
	Amount float32
}

// MSDFDescriptor describes a prebaked multi-channel signed distance
// field atlas, as produced by msdf-atlas-gen style tooling. Glyph
// offsets follow the same convention as Glyph: relative to the pen at
// the baseline, negative above it.
type MSDFDescriptor struct {
	// Size is the em size in pixels the metrics are expressed at.
	Size float32

	// DistanceRange is the field's distance range in atlas texels,
	// bound to the MSDF shader as u_range.
	DistanceRange float32

	Metrics Metrics
	Glyphs  []Glyph
	Kerning []KernPair
}

// NewMSDF creates an MSDF face from an atlas image and its descriptor.
// The face carries a material with the distance range bound, which the
// batcher applies automatically when drawing text with the face.
func NewMSDF(device *gfx.Device, atlas image.Image, desc MSDFDescriptor) (*Face, error) {
	if len(desc.Glyphs) == 0 {
		return nil, ErrNoGlyphs
	}
	texture, err := device.NewTextureFromImage(atlas)
	if err != nil {
		return nil, err
	}
	shader, err := device.MSDFShader()
	if err != nil {
		texture.Release()
		return nil, err
	}
	material := gfx.NewMaterial(shader)
	if err := material.SetVec4("u_range", desc.DistanceRange, 0, 0, 0); err != nil {
		texture.Release()
		return nil, err
	}

	face := &Face{
		kind:      KindMSDF,
		size:      desc.Size,
		metrics:   desc.Metrics,
		texture:   texture,
		material:  material,
		glyphs:    make(map[GlyphID]*Glyph, len(desc.Glyphs)),
		runeToGID: make(map[rune]GlyphID, len(desc.Glyphs)),
		kerning:   make(map[[2]GlyphID]float32, len(desc.Kerning)),
	}
	for i := range desc.Glyphs {
		g := desc.Glyphs[i]
		gid := GlyphID(g.Rune)
		face.runeToGID[g.Rune] = gid
		face.glyphs[gid] = &g
	}
	for _, k := range desc.Kerning {
		face.kerning[[2]GlyphID{GlyphID(k.First), GlyphID(k.Second)}] = k.Amount
	}
	return face, nil
}

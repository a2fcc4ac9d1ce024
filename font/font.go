// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"sync"

	"github.com/gogpu/batch/gfx"
)

// Kind discriminates how a face's atlas is rendered.
type Kind uint8

// Face kinds.
const (
	// KindBitmap is a prerendered alpha or color atlas drawn with the
	// plain batch shader.
	KindBitmap Kind = iota

	// KindMSDF is a multi-channel signed distance field atlas drawn
	// with the MSDF shader for crisp scaling.
	KindMSDF
)

// GlyphID is a font-internal glyph index. For bitmap and MSDF faces it
// is simply the rune value; for TrueType faces it is the real glyph
// index, which shaping can address directly.
type GlyphID uint32

// Glyph is one atlas entry.
type Glyph struct {
	Rune    rune
	Advance float32

	// OffsetX and OffsetY position the glyph quad relative to the pen
	// at the baseline. OffsetY is negative above the baseline.
	OffsetX float32
	OffsetY float32

	// Source is the glyph's pixel rect in the atlas.
	Source gfx.RectI

	// Visible is false for glyphs with no image, such as spaces, which
	// advance the pen but emit no quad.
	Visible bool
}

// Metrics are a face's vertical metrics in pixels at its loaded size.
// Ascent and Descent are both positive distances from the baseline.
type Metrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// LineHeight returns the baseline-to-baseline distance.
func (m Metrics) LineHeight() float32 {
	return m.Ascent + m.Descent + m.LineGap
}

// MissingMode selects what happens when a rune has no glyph.
type MissingMode uint8

// Missing-glyph modes.
const (
	// MissingBox substitutes a hollow box of the face's notdef size.
	MissingBox MissingMode = iota

	// MissingSkip drops the rune entirely, advancing nothing.
	MissingSkip
)

// Face is a loaded font at a fixed pixel size. Glyph lookup is safe
// for concurrent use; TrueType faces rasterize missing glyphs under
// the face lock on first lookup.
type Face struct {
	kind     Kind
	size     float32
	metrics  Metrics
	texture  *gfx.Texture
	material *gfx.Material
	missing  MissingMode

	mu        sync.Mutex
	glyphs    map[GlyphID]*Glyph
	runeToGID map[rune]GlyphID
	kerning   map[[2]GlyphID]float32

	// ttf is non-nil for faces that rasterize on demand.
	ttf *ttfBackend
}

// Kind returns how the face's atlas should be rendered.
func (f *Face) Kind() Kind {
	return f.kind
}

// Size returns the pixel size the face was loaded at.
func (f *Face) Size() float32 {
	return f.size
}

// Metrics returns the face's vertical metrics.
func (f *Face) Metrics() Metrics {
	return f.metrics
}

// LineHeight returns the baseline-to-baseline distance.
func (f *Face) LineHeight() float32 {
	return f.metrics.LineHeight()
}

// Texture returns the atlas texture.
func (f *Face) Texture() *gfx.Texture {
	return f.texture
}

// Material returns the face's material override, or nil when the face
// draws with the default batch material. MSDF faces carry a material
// with their distance range bound.
func (f *Face) Material() *gfx.Material {
	return f.material
}

// MissingMode returns the face's missing-glyph behavior.
func (f *Face) MissingMode() MissingMode {
	return f.missing
}

// SetMissingMode sets the missing-glyph behavior.
func (f *Face) SetMissingMode(mode MissingMode) {
	f.missing = mode
}

// Glyph returns the glyph for a rune, rasterizing it on first use for
// TrueType faces. ok is false when the face has no glyph for the rune,
// in which case the caller applies the face's MissingMode.
func (f *Face) Glyph(r rune) (g Glyph, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gid, known := f.runeToGID[r]
	if !known {
		if f.ttf == nil {
			return Glyph{}, false
		}
		var err error
		gid, err = f.ttf.lookup(r)
		if err != nil {
			f.runeToGID[r] = 0
			return Glyph{}, false
		}
		f.runeToGID[r] = gid
	}
	if gid == 0 && f.ttf != nil {
		return Glyph{}, false
	}
	return f.glyphByGIDLocked(gid, r)
}

// GlyphByID returns the glyph for a shaped glyph index. Only TrueType
// faces have meaningful indices beyond the rune value.
func (f *Face) GlyphByID(gid GlyphID) (Glyph, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.glyphByGIDLocked(gid, 0)
}

func (f *Face) glyphByGIDLocked(gid GlyphID, r rune) (Glyph, bool) {
	if g, ok := f.glyphs[gid]; ok {
		return *g, true
	}
	if f.ttf == nil {
		return Glyph{}, false
	}
	g, err := f.ttf.rasterize(f, gid, r)
	if err != nil {
		gfx.Logger().Warn("font: glyph rasterization failed",
			"gid", uint32(gid), "err", err)
		return Glyph{}, false
	}
	f.glyphs[gid] = g
	return *g, true
}

// Kern returns the kerning adjustment between two runes, zero when the
// pair has none.
func (f *Face) Kern(a, b rune) float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ga, oka := f.runeToGID[a]
	gb, okb := f.runeToGID[b]
	if f.ttf != nil {
		if !oka {
			ga, _ = f.ttf.lookup(a)
			f.runeToGID[a] = ga
		}
		if !okb {
			gb, _ = f.ttf.lookup(b)
			f.runeToGID[b] = gb
		}
		return f.ttf.kern(ga, gb)
	}
	if !oka || !okb {
		return 0
	}
	return f.kerning[[2]GlyphID{ga, gb}]
}

// WidthOf measures the advance width of a single line of text,
// including kerning.
func (f *Face) WidthOf(text string) float32 {
	var width float32
	var prev rune
	hasPrev := false
	for _, r := range text {
		if r == '\n' {
			break
		}
		g, ok := f.Glyph(r)
		if !ok {
			if f.missing == MissingSkip {
				continue
			}
			g = f.boxGlyph()
		}
		if hasPrev {
			width += f.Kern(prev, r)
		}
		width += g.Advance
		prev, hasPrev = r, true
	}
	return width
}

// Measure returns the bounding size of multi-line text, where height
// counts full line heights.
func (f *Face) Measure(text string) (w, h float32) {
	lineWidth := float32(0)
	lines := 1
	var prev rune
	hasPrev := false
	for _, r := range text {
		if r == '\n' {
			lines++
			lineWidth = 0
			hasPrev = false
			continue
		}
		g, ok := f.Glyph(r)
		if !ok {
			if f.missing == MissingSkip {
				continue
			}
			g = f.boxGlyph()
		}
		if hasPrev {
			lineWidth += f.Kern(prev, r)
		}
		lineWidth += g.Advance
		prev, hasPrev = r, true
		if lineWidth > w {
			w = lineWidth
		}
	}
	return w, float32(lines) * f.LineHeight()
}

// boxGlyph returns the substitute glyph for missing runes: an advance
// sized to the face with no atlas image. The batcher draws its outline.
func (f *Face) boxGlyph() Glyph {
	w := f.size * 0.6
	return Glyph{
		Advance: w,
		OffsetX: f.size * 0.05,
		OffsetY: -f.metrics.Ascent,
		Visible: false,
	}
}

// BoxGlyph exposes the missing-rune substitute for rendering.
func (f *Face) BoxGlyph() Glyph {
	return f.boxGlyph()
}

// Release frees the face's atlas texture. A face is not usable after
// Release.
func (f *Face) Release() {
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}

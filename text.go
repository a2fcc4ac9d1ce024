// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"strings"

	"github.com/gogpu/batch/font"
	"github.com/gogpu/batch/gfx"
)

// HAlign is horizontal text alignment within a rectangle.
type HAlign uint8

// Horizontal alignments.
const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical text alignment within a rectangle.
type VAlign uint8

// Vertical alignments. AlignBaseline puts the last line's baseline on
// the bottom edge of the rect, so descenders hang below it.
const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
	AlignBaseline
)

// Text emits text with its top-left corner at (x, y). Newlines start a
// new line one line height down. Kerning pairs apply between adjacent
// glyphs; missing runes follow the face's MissingMode.
func (b *Batcher) Text(face *font.Face, text string, x, y float32, col Color) {
	b.checkAlive()
	penX := x
	baseline := y + face.Metrics().Ascent
	var prev rune
	hasPrev := false
	for _, r := range text {
		if r == '\n' {
			penX = x
			baseline += face.LineHeight()
			hasPrev = false
			continue
		}
		if hasPrev {
			penX += face.Kern(prev, r)
		}
		penX += b.glyph(face, r, penX, baseline, col)
		prev, hasPrev = r, true
	}
}

// glyph emits one rune at the pen and returns its advance.
func (b *Batcher) glyph(face *font.Face, r rune, penX, baseline float32, col Color) float32 {
	g, ok := face.Glyph(r)
	if !ok {
		if face.MissingMode() == font.MissingSkip {
			return 0
		}
		g = face.BoxGlyph()
		b.missingBox(face, g, penX, baseline, col)
		return g.Advance
	}
	if g.Visible {
		b.glyphQuad(face, g, penX, baseline, col)
	}
	return g.Advance
}

// glyphQuad emits the textured quad for a visible glyph.
func (b *Batcher) glyphQuad(face *font.Face, g font.Glyph, penX, baseline float32, col Color) {
	texture := face.Texture()
	tw := float32(texture.Width())
	th := float32(texture.Height())
	u0 := float32(g.Source.X) / tw
	v0 := float32(g.Source.Y) / th
	u1 := float32(g.Source.X+g.Source.W) / tw
	v1 := float32(g.Source.Y+g.Source.H) / th

	x0 := penX + g.OffsetX
	y0 := baseline + g.OffsetY
	x1 := x0 + float32(g.Source.W)
	y1 := y0 + float32(g.Source.H)

	material := b.material
	if m := face.Material(); m != nil {
		material = m
	}
	batch := b.current(texture, material)
	b.pushQuad(batch,
		b.vert(x0, y0, u0, v0, col, modeMult),
		b.vert(x1, y0, u1, v0, col, modeMult),
		b.vert(x1, y1, u1, v1, col, modeMult),
		b.vert(x0, y1, u0, v1, col, modeMult),
	)
}

// missingBox draws the hollow substitute box for a missing rune.
func (b *Batcher) missingBox(face *font.Face, g font.Glyph, penX, baseline float32, col Color) {
	h := face.Metrics().Ascent * 0.9
	w := g.Advance * 0.9
	rect := Rect{X: penX + g.OffsetX, Y: baseline - h, W: w, H: h}
	thickness := max(face.Size()/16, 1)
	b.RectOutline(rect, thickness, col)
}

// TextAligned emits text aligned within rect. Each line aligns
// horizontally on its own; the block aligns vertically as a whole.
func (b *Batcher) TextAligned(face *font.Face, text string, rect Rect, h HAlign, v VAlign, col Color) {
	b.checkAlive()
	lines := strings.Split(text, "\n")
	blockH := float32(len(lines)) * face.LineHeight()

	y := rect.Y
	switch v {
	case AlignMiddle:
		y += (rect.H - blockH) / 2
	case AlignBottom:
		y += rect.H - blockH
	case AlignBaseline:
		y += rect.H - face.Metrics().Ascent - float32(len(lines)-1)*face.LineHeight()
	}

	for _, line := range lines {
		x := rect.X
		switch h {
		case AlignCenter:
			x += (rect.W - face.WidthOf(line)) / 2
		case AlignRight:
			x += rect.W - face.WidthOf(line)
		}
		b.Text(face, line, x, y, col)
		y += face.LineHeight()
	}
}

// TextWrapped emits text with its top-left corner at (x, y), greedily
// wrapping at spaces to stay within maxWidth. A word wider than
// maxWidth overflows on its own line rather than being split.
func (b *Batcher) TextWrapped(face *font.Face, text string, x, y, maxWidth float32, col Color) {
	b.checkAlive()
	for _, para := range strings.Split(text, "\n") {
		for _, line := range wrapLine(face, para, maxWidth) {
			b.Text(face, line, x, y, col)
			y += face.LineHeight()
		}
	}
}

// wrapLine splits one paragraph into wrapped lines.
func wrapLine(face *font.Face, para string, maxWidth float32) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	spaceW := face.WidthOf(" ")
	var lines []string
	current := words[0]
	currentW := face.WidthOf(words[0])
	for _, word := range words[1:] {
		wordW := face.WidthOf(word)
		if currentW+spaceW+wordW > maxWidth {
			lines = append(lines, current)
			current = word
			currentW = wordW
			continue
		}
		current += " " + word
		currentW += spaceW + wordW
	}
	return append(lines, current)
}

// TextShaped emits text positioned by a font.Shaper, applying
// ligatures, contextual alternates and bidirectional reordering. The
// pen starts at (x, y) on the baseline. Only TrueType faces shape;
// others return font.ErrNotShapeable.
func (b *Batcher) TextShaped(face *font.Face, shaper *font.Shaper, text string, x, y float32, col Color) error {
	b.checkAlive()
	shaped, err := shaper.Shape(face, text)
	if err != nil {
		return err
	}
	for _, sg := range shaped {
		g, ok := face.GlyphByID(sg.ID)
		if !ok || !g.Visible {
			continue
		}
		b.glyphQuad(face, g, x+sg.X, y+sg.Y, col)
	}
	return nil
}

// NearestSampler is the sampler state used when text should stay
// pixel-crisp.
var NearestSampler = gfx.NewSampler(gfx.FilterNearest, gfx.WrapClampToEdge)

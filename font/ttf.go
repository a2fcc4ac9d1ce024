// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/batch/gfx"
)

// Defaults for TrueType atlas construction.
const (
	defaultAtlasSize = 1024
	defaultPadding   = 1
)

// TTFOption configures LoadTTF.
type TTFOption func(*ttfConfig)

type ttfConfig struct {
	atlasSize int
	padding   int
	missing   MissingMode
}

// WithAtlasSize sets the square atlas texture size in pixels.
func WithAtlasSize(size int) TTFOption {
	return func(c *ttfConfig) { c.atlasSize = size }
}

// WithPadding sets the pixel gap between packed glyphs.
func WithPadding(padding int) TTFOption {
	return func(c *ttfConfig) { c.padding = padding }
}

// WithMissingMode sets the missing-glyph behavior.
func WithMissingMode(mode MissingMode) TTFOption {
	return func(c *ttfConfig) { c.missing = mode }
}

// ttfBackend rasterizes glyph outlines on demand into the face atlas.
// All methods run under the owning face's lock.
type ttfBackend struct {
	font   *sfnt.Font
	data   []byte
	buf    sfnt.Buffer
	ppem   fixed.Int26_6
	packer *shelfPacker
}

// LoadTTF parses TrueType or OpenType font data and creates a face at
// the given pixel size. Glyphs rasterize lazily on first use into a
// shelf-packed atlas, so load cost does not depend on the character
// set.
func LoadTTF(device *gfx.Device, data []byte, size float32, opts ...TTFOption) (*Face, error) {
	cfg := ttfConfig{atlasSize: defaultAtlasSize, padding: defaultPadding}
	for _, opt := range opts {
		opt(&cfg)
	}

	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
	}

	backend := &ttfBackend{
		font:   parsed,
		data:   data,
		ppem:   fixed.Int26_6(size * 64),
		packer: newShelfPacker(cfg.atlasSize, cfg.atlasSize, cfg.padding),
	}

	metrics, err := parsed.Metrics(&backend.buf, backend.ppem, xfont.HintingFull)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
	}
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	lineGap := fixedToFloat(metrics.Height) - ascent - descent
	if lineGap < 0 {
		lineGap = 0
	}

	texture, err := device.NewTexture(cfg.atlasSize, cfg.atlasSize, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}

	return &Face{
		kind:      KindBitmap,
		size:      size,
		metrics:   Metrics{Ascent: ascent, Descent: descent, LineGap: lineGap},
		texture:   texture,
		missing:   cfg.missing,
		glyphs:    make(map[GlyphID]*Glyph),
		runeToGID: make(map[rune]GlyphID),
		ttf:       backend,
	}, nil
}

// fontData returns the raw font bytes for shaping.
func (f *Face) fontData() []byte {
	if f.ttf == nil {
		return nil
	}
	return f.ttf.data
}

func (t *ttfBackend) lookup(r rune) (GlyphID, error) {
	gid, err := t.font.GlyphIndex(&t.buf, r)
	if err != nil {
		return 0, err
	}
	return GlyphID(gid), nil
}

func (t *ttfBackend) kern(a, b GlyphID) float32 {
	if a == 0 || b == 0 {
		return 0
	}
	k, err := t.font.Kern(&t.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), t.ppem, xfont.HintingFull)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// rasterize renders a glyph outline into the atlas and returns its
// entry. Rune is recorded for diagnostics and may be zero when the
// glyph arrives from shaping.
func (t *ttfBackend) rasterize(f *Face, gid GlyphID, r rune) (*Glyph, error) {
	segments, err := t.font.LoadGlyph(&t.buf, sfnt.GlyphIndex(gid), t.ppem, nil)
	if err != nil {
		return nil, err
	}
	advance, err := t.font.GlyphAdvance(&t.buf, sfnt.GlyphIndex(gid), t.ppem, xfont.HintingFull)
	if err != nil {
		return nil, err
	}

	glyph := &Glyph{Rune: r, Advance: fixedToFloat(advance)}
	if len(segments) == 0 {
		return glyph, nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	visit := func(p fixed.Point26_6) {
		x := float64(p.X) / 64
		y := float64(p.Y) / 64
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo, sfnt.SegmentOpLineTo:
			visit(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			visit(seg.Args[0])
			visit(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			visit(seg.Args[0])
			visit(seg.Args[1])
			visit(seg.Args[2])
		}
	}

	x0 := math.Floor(minX)
	y0 := math.Floor(minY)
	w := int(math.Ceil(maxX) - x0)
	h := int(math.Ceil(maxY) - y0)
	if w <= 0 || h <= 0 {
		return glyph, nil
	}

	// Rasterize with the outline shifted into the glyph-local box.
	// Glyph space is y-down with the baseline at zero, so ascenders
	// have negative coordinates and y0 is typically negative.
	rast := vector.NewRasterizer(w, h)
	dx, dy := float32(-x0), float32(-y0)
	at := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 + dx, float32(p.Y)/64 + dy
	}
	started := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				rast.ClosePath()
			}
			px, py := at(seg.Args[0])
			rast.MoveTo(px, py)
			started = true
		case sfnt.SegmentOpLineTo:
			px, py := at(seg.Args[0])
			rast.LineTo(px, py)
		case sfnt.SegmentOpQuadTo:
			cx, cy := at(seg.Args[0])
			px, py := at(seg.Args[1])
			rast.QuadTo(cx, cy, px, py)
		case sfnt.SegmentOpCubeTo:
			c0x, c0y := at(seg.Args[0])
			c1x, c1y := at(seg.Args[1])
			px, py := at(seg.Args[2])
			rast.CubeTo(c0x, c0y, c1x, c1y, px, py)
		}
	}
	if started {
		rast.ClosePath()
	}

	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	rast.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	ax, ay, ok := t.packer.pack(w, h)
	if !ok {
		return nil, ErrAtlasFull
	}

	// White premultiplied by coverage, so tinting is a pure multiply.
	pixels := make([]byte, w*h*4)
	for i, a := range coverage.Pix {
		pixels[i*4+0] = a
		pixels[i*4+1] = a
		pixels[i*4+2] = a
		pixels[i*4+3] = a
	}
	rect := gfx.RectI{X: ax, Y: ay, W: w, H: h}
	if err := f.texture.SetData(rect, pixels); err != nil {
		return nil, err
	}

	glyph.OffsetX = float32(x0)
	glyph.OffsetY = float32(y0)
	glyph.Source = rect
	glyph.Visible = true
	return glyph, nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

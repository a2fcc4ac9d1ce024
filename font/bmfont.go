// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"fmt"
	"image"
	_ "image/png" // BMFont page sheets are typically PNG.
	"os"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/gogpu/batch/gfx"
)

// LoadBMFont loads an AngelCode BMFont descriptor (.fnt) and its first
// page sheet into a bitmap face. Multi-page fonts are not supported;
// glyphs referencing pages beyond the first are dropped.
func LoadBMFont(device *gfx.Device, path string) (*Face, error) {
	loaded, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("font: load bmfont %q: %w", path, err)
	}
	desc := loaded.Descriptor
	if len(desc.Chars) == 0 {
		return nil, ErrNoGlyphs
	}

	page, ok := desc.Pages[0]
	if !ok {
		return nil, ErrMissingPage
	}
	sheet, err := loadPageImage(filepath.Join(filepath.Dir(path), page.File))
	if err != nil {
		return nil, err
	}
	texture, err := device.NewTextureFromImage(sheet)
	if err != nil {
		return nil, err
	}

	base := float32(desc.Common.Base)
	lineHeight := float32(desc.Common.LineHeight)
	descent := lineHeight - base
	if descent < 0 {
		descent = 0
	}

	face := &Face{
		kind:      KindBitmap,
		size:      float32(desc.Info.Size),
		metrics:   Metrics{Ascent: base, Descent: descent},
		texture:   texture,
		glyphs:    make(map[GlyphID]*Glyph, len(desc.Chars)),
		runeToGID: make(map[rune]GlyphID, len(desc.Chars)),
		kerning:   make(map[[2]GlyphID]float32, len(desc.Kerning)),
	}

	for _, ch := range desc.Chars {
		if ch.Page != 0 {
			continue
		}
		r := rune(ch.ID)
		gid := GlyphID(r)
		face.runeToGID[r] = gid
		face.glyphs[gid] = &Glyph{
			Rune:    r,
			Advance: float32(ch.XAdvance),
			OffsetX: float32(ch.XOffset),
			OffsetY: float32(ch.YOffset) - base,
			Source:  gfx.RectI{X: ch.X, Y: ch.Y, W: ch.Width, H: ch.Height},
			Visible: ch.Width > 0 && ch.Height > 0,
		}
	}
	for pair, kern := range desc.Kerning {
		key := [2]GlyphID{GlyphID(pair.First), GlyphID(pair.Second)}
		face.kerning[key] = float32(kern.Amount)
	}
	return face, nil
}

func loadPageImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingPage, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingPage, err)
	}
	return img, nil
}

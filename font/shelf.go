// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

// shelfPacker packs glyph rectangles into horizontal shelves. Each
// shelf takes the height of its tallest glyph; new glyphs go
// left-to-right until the shelf is full, then a new shelf opens below.
// Good enough for glyph atlases, where heights cluster tightly.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []packShelf
}

type packShelf struct {
	y      int
	height int
	x      int
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{width: width, height: height, padding: padding}
}

// pack finds space for a w by h rectangle. It reports the top-left
// corner, or ok=false when the atlas is full.
func (p *shelfPacker) pack(w, h int) (x, y int, ok bool) {
	pw := w + p.padding
	ph := h + p.padding
	if pw > p.width {
		return 0, 0, false
	}

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+pw > p.width {
			continue
		}
		if h > s.height {
			// Too tall for the shelf. The last shelf may grow
			// downward if nothing sits below it yet.
			if i == len(p.shelves)-1 && s.y+ph <= p.height {
				s.height = h
				x, y = s.x, s.y
				s.x += pw
				return x, y, true
			}
			continue
		}
		x, y = s.x, s.y
		s.x += pw
		return x, y, true
	}

	newY := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		newY = last.y + last.height + p.padding
	}
	if newY+ph > p.height {
		return 0, 0, false
	}
	p.shelves = append(p.shelves, packShelf{y: newY, height: h, x: pw})
	return 0, newY, true
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"image"
	"testing"

	"github.com/gogpu/batch/font"
	"github.com/gogpu/batch/gfx"
)

// newTestFace builds a small static MSDF face: 'A' advances 10, 'B'
// advances 12, space advances 5, and the pair AB kerns by -2.
func newTestFace(t *testing.T, b *Batcher) *font.Face {
	t.Helper()
	atlas := image.NewRGBA(image.Rect(0, 0, 64, 64))
	face, err := font.NewMSDF(b.Device(), atlas, font.MSDFDescriptor{
		Size:          12,
		DistanceRange: 4,
		Metrics:       font.Metrics{Ascent: 10, Descent: 3, LineGap: 1},
		Glyphs: []font.Glyph{
			{Rune: 'A', Advance: 10, OffsetY: -10, Source: gfx.RectI{W: 8, H: 10}, Visible: true},
			{Rune: 'B', Advance: 12, OffsetY: -10, Source: gfx.RectI{X: 8, W: 8, H: 10}, Visible: true},
			{Rune: ' ', Advance: 5},
		},
		Kerning: []font.KernPair{{First: 'A', Second: 'B', Amount: -2}},
	})
	if err != nil {
		t.Fatalf("NewMSDF() error = %v", err)
	}
	return face
}

// vertexPos reads the position of the i-th mesh vertex.
func vertexPos(b *Batcher, i int) (x, y float32) {
	v := b.mesh.vertices[i*VertexStride:]
	return float32FromBits(v[0:4]), float32FromBits(v[4:8])
}

func TestTextPenAdvanceAndKerning(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	b.Text(face, "AB", 0, 0, White)
	if got := b.mesh.VertexCount(); got != 8 {
		t.Fatalf("VertexCount() = %d, want 8 (two glyph quads)", got)
	}

	// First glyph sits at the pen with its top at the baseline offset.
	x, y := vertexPos(b, 0)
	if x != 0 || y != 0 {
		t.Errorf("glyph A top-left = (%g, %g), want (0, 0)", x, y)
	}
	// Second glyph pen = advance of A plus the AB kern pair.
	x, _ = vertexPos(b, 4)
	if x != 8 {
		t.Errorf("glyph B pen x = %g, want 8 (10 advance - 2 kern)", x)
	}
}

func TestTextNewlineResetsPen(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	b.Text(face, "A\nA", 0, 0, White)
	if got := b.mesh.VertexCount(); got != 8 {
		t.Fatalf("VertexCount() = %d, want 8", got)
	}
	x, y := vertexPos(b, 4)
	if x != 0 {
		t.Errorf("second line pen x = %g, want 0", x)
	}
	// Line height 14 moves the baseline, glyph top follows.
	if y != 14 {
		t.Errorf("second line glyph top = %g, want 14", y)
	}
}

func TestTextSpaceAdvancesWithoutQuad(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	b.Text(face, "A A", 0, 0, White)
	if got := b.mesh.VertexCount(); got != 8 {
		t.Fatalf("VertexCount() = %d, want 8 (space emits nothing)", got)
	}
	x, _ := vertexPos(b, 4)
	if x != 15 {
		t.Errorf("glyph after space pen x = %g, want 15", x)
	}
}

func TestTextMissingModes(t *testing.T) {
	t.Run("box outlines a substitute", func(t *testing.T) {
		b, _ := newTestBatcher(t)
		defer b.Release()
		face := newTestFace(t, b)
		defer face.Release()

		b.Text(face, "?", 0, 0, White)
		// A hollow box is four rect strips.
		if got := b.mesh.VertexCount(); got != 16 {
			t.Errorf("VertexCount() = %d, want 16", got)
		}
	})
	t.Run("skip emits nothing and holds the pen", func(t *testing.T) {
		b, _ := newTestBatcher(t)
		defer b.Release()
		face := newTestFace(t, b)
		defer face.Release()
		face.SetMissingMode(font.MissingSkip)

		b.Text(face, "?A", 0, 0, White)
		if got := b.mesh.VertexCount(); got != 4 {
			t.Fatalf("VertexCount() = %d, want 4", got)
		}
		x, _ := vertexPos(b, 0)
		if x != 0 {
			t.Errorf("glyph pen x = %g, want 0 (skipped rune advances nothing)", x)
		}
	})
}

func TestTextAlignedRightBottom(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	b.TextAligned(face, "A", NewRect(0, 0, 100, 100), AlignRight, AlignBottom, White)
	x, y := vertexPos(b, 0)
	if x != 90 {
		t.Errorf("right-aligned glyph x = %g, want 90", x)
	}
	if y != 86 {
		t.Errorf("bottom-aligned glyph top = %g, want 86", y)
	}
}

func TestTextAlignedCenter(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	b.TextAligned(face, "A", NewRect(0, 0, 100, 100), AlignCenter, AlignMiddle, White)
	x, y := vertexPos(b, 0)
	if x != 45 {
		t.Errorf("centered glyph x = %g, want 45", x)
	}
	if y != 43 {
		t.Errorf("middle-aligned glyph top = %g, want 43", y)
	}
}

func TestTextAlignedBaseline(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	// The last line's baseline lands on the bottom edge. With ascent
	// 10 and line height 14, two lines start at y = 100-10-14 = 76.
	b.TextAligned(face, "A\nA", NewRect(0, 0, 100, 100), AlignLeft, AlignBaseline, White)
	if _, y := vertexPos(b, 0); y != 76 {
		t.Errorf("first line glyph top = %g, want 76", y)
	}
	if _, y := vertexPos(b, 4); y != 90 {
		t.Errorf("last line glyph top = %g, want 90", y)
	}
}

func TestTextWrappedGreedy(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	// Each "AA" word is 20 wide, spaces are 5. Two words fill 45
	// exactly; the third wraps.
	b.TextWrapped(face, "AA AA AA", 0, 0, 45, White)
	if got := b.mesh.VertexCount(); got != 24 {
		t.Fatalf("VertexCount() = %d, want 24 (six glyphs)", got)
	}
	_, y := vertexPos(b, 16)
	if y != 14 {
		t.Errorf("wrapped word glyph top = %g, want 14 (second line)", y)
	}
}

func TestTextWrappedLongWordOverflows(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	// A word wider than the limit stays whole on its own line.
	b.TextWrapped(face, "AAAA A", 0, 0, 15, White)
	if got := b.mesh.VertexCount(); got != 20 {
		t.Fatalf("VertexCount() = %d, want 20", got)
	}
	_, y := vertexPos(b, 16)
	if y != 14 {
		t.Errorf("following word glyph top = %g, want 14", y)
	}
}

func TestTextUsesFaceMaterial(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	b.Text(face, "A", 0, 0, White)
	if got := b.BatchCount(); got != 1 {
		t.Fatalf("BatchCount() = %d, want 1", got)
	}
	if b.batches[0].material != face.Material() {
		t.Error("text batch does not carry the face material")
	}
}

func TestFaceMeasure(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()
	face := newTestFace(t, b)
	defer face.Release()

	tests := []struct {
		name string
		text string
		w, h float32
	}{
		{"single line with kerning", "AB", 20, 14},
		{"multi line keeps widest", "AB\nA", 20, 28},
		{"empty", "", 0, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := face.Measure(tt.text)
			if w != tt.w || h != tt.h {
				t.Errorf("Measure(%q) = (%g, %g), want (%g, %g)", tt.text, w, h, tt.w, tt.h)
			}
		})
	}
}

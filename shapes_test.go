// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"testing"
)

func TestRectDegenerateEmitsNothing(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
	}{
		{"zero size", NewRect(0, 0, 0, 0)},
		{"zero width", NewRect(0, 0, 0, 10)},
		{"zero height", NewRect(0, 0, 10, 0)},
		{"negative size", NewRect(0, 0, -5, -5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBatcher(t)
			defer b.Release()
			b.Rect(tt.rect, White)
			if got := b.mesh.VertexCount(); got != 0 {
				t.Errorf("VertexCount() = %d, want 0", got)
			}
		})
	}
}

func TestRectEmitsQuad(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.Rect(NewRect(10, 20, 30, 40), Red)
	if got := b.mesh.VertexCount(); got != 4 {
		t.Errorf("VertexCount() = %d, want 4", got)
	}
	if got := b.mesh.IndexCount(); got != 6 {
		t.Errorf("IndexCount() = %d, want 6", got)
	}
}

func TestRectAppliesTransform(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.PushMatrix(Translate(100, 200))
	b.Rect(NewRect(0, 0, 10, 10), White)
	b.PopMatrix()

	// First vertex is the top-left corner.
	v := b.mesh.vertices[:VertexStride]
	x := float32FromBits(v[0:4])
	y := float32FromBits(v[4:8])
	if x != 100 || y != 200 {
		t.Errorf("transformed corner = (%g, %g), want (100, 200)", x, y)
	}
}

func TestLineDegenerateEmitsNothing(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.Line(Pt(5, 5), Pt(5, 5), 2, White)
	b.Line(Pt(0, 0), Pt(10, 0), 0, White)
	b.Line(Pt(0, 0), Pt(10, 0), -1, White)

	if got := b.mesh.VertexCount(); got != 0 {
		t.Errorf("VertexCount() = %d, want 0", got)
	}
}

func TestLineEmitsQuad(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.Line(Pt(0, 0), Pt(10, 0), 4, White)
	if got := b.mesh.VertexCount(); got != 4 {
		t.Fatalf("VertexCount() = %d, want 4", got)
	}

	// A horizontal line of thickness 4 spans y in [-2, 2].
	minY, maxY := float32(0), float32(0)
	for i := 0; i < 4; i++ {
		y := float32FromBits(b.mesh.vertices[i*VertexStride+4 : i*VertexStride+8])
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	if minY != -2 || maxY != 2 {
		t.Errorf("line y extent = [%g, %g], want [-2, 2]", minY, maxY)
	}
}

func TestCircleSegmentCounts(t *testing.T) {
	tests := []struct {
		name     string
		radius   float32
		segments int
	}{
		{"tiny radius clamps to 3", 1, 3},
		{"mid radius", 50, 40},
		{"huge radius clamps to 128", 1000, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := circleSegments(tt.radius); got != tt.segments {
				t.Errorf("circleSegments(%g) = %d, want %d", tt.radius, got, tt.segments)
			}
		})
	}
}

func TestCircleSegmentsGeometry(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.CircleSegments(Pt(0, 0), 10, 8, White)
	if got := b.mesh.VertexCount(); got != 9 {
		t.Errorf("VertexCount() = %d, want 9 (center + 8 rim)", got)
	}
	if got := b.mesh.IndexCount(); got != 24 {
		t.Errorf("IndexCount() = %d, want 24", got)
	}
}

func TestCircleSegmentsClampsToTriangle(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.CircleSegments(Pt(0, 0), 10, 1, White)
	if got := b.mesh.IndexCount(); got != 9 {
		t.Errorf("IndexCount() = %d, want 9 (3 segments minimum)", got)
	}
}

func TestCircleZeroRadiusEmitsNothing(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.Circle(Pt(0, 0), 0, White)
	b.Circle(Pt(0, 0), -5, White)
	if got := b.mesh.VertexCount(); got != 0 {
		t.Errorf("VertexCount() = %d, want 0", got)
	}
}

func TestPolygonConvexFan(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	// Convex pentagon: fan of 3 triangles, 5 shared vertices.
	b.Polygon([]Point{
		Pt(0, 0), Pt(10, 0), Pt(12, 8), Pt(5, 12), Pt(-2, 8),
	}, White)
	if got := b.mesh.VertexCount(); got != 5 {
		t.Errorf("VertexCount() = %d, want 5", got)
	}
	if got := b.mesh.IndexCount(); got != 9 {
		t.Errorf("IndexCount() = %d, want 9", got)
	}
}

func TestPolygonConcaveEarClip(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	// An arrowhead: concave at the inner point. n-2 triangles.
	b.Polygon([]Point{
		Pt(0, 0), Pt(10, 5), Pt(0, 10), Pt(3, 5),
	}, White)
	if got := b.mesh.IndexCount(); got != 6 {
		t.Errorf("IndexCount() = %d, want 6 (2 triangles)", got)
	}
}

func TestPolygonTooFewPoints(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.Polygon(nil, White)
	b.Polygon([]Point{Pt(0, 0), Pt(1, 1)}, White)
	if got := b.mesh.VertexCount(); got != 0 {
		t.Errorf("VertexCount() = %d, want 0", got)
	}
}

func TestIsConvex(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   bool
	}{
		{"triangle", []Point{Pt(0, 0), Pt(10, 0), Pt(5, 10)}, true},
		{"square", []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}, true},
		{"arrowhead", []Point{Pt(0, 0), Pt(10, 5), Pt(0, 10), Pt(3, 5)}, false},
		{"collinear edge", []Point{Pt(0, 0), Pt(5, 0), Pt(10, 0), Pt(5, 10)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConvex(tt.points); got != tt.want {
				t.Errorf("isConvex(%v) = %v, want %v", tt.points, got, tt.want)
			}
		})
	}
}

func TestEarClipTriangleCount(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"quad", []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}},
		{"arrowhead", []Point{Pt(0, 0), Pt(10, 5), Pt(0, 10), Pt(3, 5)}},
		{"L shape", []Point{Pt(0, 0), Pt(10, 0), Pt(10, 4), Pt(4, 4), Pt(4, 10), Pt(0, 10)}},
		{"clockwise quad", []Point{Pt(0, 10), Pt(10, 10), Pt(10, 0), Pt(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := earClip(tt.points)
			if got, want := len(tris), len(tt.points)-2; got != want {
				t.Errorf("earClip yields %d triangles, want %d", got, want)
			}
		})
	}
}

func TestRectOutlineGeometry(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.RectOutline(NewRect(0, 0, 100, 50), 5, White)
	if got := b.mesh.VertexCount(); got != 16 {
		t.Errorf("VertexCount() = %d, want 16 (4 strips)", got)
	}

	// Thickness beyond half the short side clamps instead of
	// overlapping.
	b.Clear()
	b.RectOutline(NewRect(0, 0, 100, 10), 50, White)
	if got := b.mesh.VertexCount(); got != 8 {
		t.Errorf("clamped outline VertexCount() = %d, want 8 (side strips collapse)", got)
	}
}

func TestRoundedRectFallsBackToRect(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.RoundedRect(NewRect(0, 0, 20, 20), 0, White)
	if got := b.mesh.VertexCount(); got != 4 {
		t.Errorf("VertexCount() = %d, want 4 (plain rect)", got)
	}
}

func TestImageRectUVs(t *testing.T) {
	b, drv := newTestBatcher(t)
	defer b.Release()

	tex := newTestTexture(t, b.Device(), 64, 32)
	defer tex.Release()

	b.ImageRect(tex, NewRect(0, 0, 10, 10), NewRect(16, 8, 32, 16), White)
	if got := b.mesh.VertexCount(); got != 4 {
		t.Fatalf("VertexCount() = %d, want 4", got)
	}

	// Top-left vertex UV is src origin over texture size.
	v := b.mesh.vertices[:VertexStride]
	u := float32FromBits(v[8:12])
	vv := float32FromBits(v[12:16])
	if u != 0.25 || vv != 0.25 {
		t.Errorf("top-left UV = (%g, %g), want (0.25, 0.25)", u, vv)
	}

	if err := b.Render(nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := len(drv.draws); got != 1 {
		t.Errorf("driver draws = %d, want 1", got)
	}
}

func TestImageSplitsBatchOnTextureChange(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	texA := newTestTexture(t, b.Device(), 8, 8)
	defer texA.Release()
	texB := newTestTexture(t, b.Device(), 8, 8)
	defer texB.Release()

	b.Image(texA, 0, 0, White)
	b.Image(texA, 10, 0, White)
	b.Image(texB, 20, 0, White)

	if got := b.BatchCount(); got != 2 {
		t.Errorf("BatchCount() = %d, want 2", got)
	}
}

func TestNineSliceEmitsNineQuads(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	tex := newTestTexture(t, b.Device(), 30, 30)
	defer tex.Release()

	b.NineSlice(tex, NewRect(0, 0, 100, 100), 10, 10, 10, 10, White)
	if got := b.mesh.VertexCount(); got != 36 {
		t.Errorf("VertexCount() = %d, want 36", got)
	}
	if got := b.BatchCount(); got != 1 {
		t.Errorf("BatchCount() = %d, want 1 (single texture)", got)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/batch/gfx"
)

// Rect emits a filled axis-aligned rectangle. Empty rectangles emit
// nothing.
func (b *Batcher) Rect(rect Rect, col Color) {
	b.checkAlive()
	if rect.Empty() {
		return
	}
	batch := b.current(nil, b.material)
	b.pushQuad(batch,
		b.vert(rect.X, rect.Y, 0, 0, col, modeFill),
		b.vert(rect.Right(), rect.Y, 0, 0, col, modeFill),
		b.vert(rect.Right(), rect.Bottom(), 0, 0, col, modeFill),
		b.vert(rect.X, rect.Bottom(), 0, 0, col, modeFill),
	)
}

// RectGradient emits a filled rectangle with one color per corner,
// in top-left, top-right, bottom-right, bottom-left order.
func (b *Batcher) RectGradient(rect Rect, tl, tr, br, bl Color) {
	b.checkAlive()
	if rect.Empty() {
		return
	}
	batch := b.current(nil, b.material)
	b.pushQuad(batch,
		b.vert(rect.X, rect.Y, 0, 0, tl, modeFill),
		b.vert(rect.Right(), rect.Y, 0, 0, tr, modeFill),
		b.vert(rect.Right(), rect.Bottom(), 0, 0, br, modeFill),
		b.vert(rect.X, rect.Bottom(), 0, 0, bl, modeFill),
	)
}

// RectOutline emits the four edges of a rectangle as filled strips of
// the given thickness, inset into the rectangle.
func (b *Batcher) RectOutline(rect Rect, thickness float32, col Color) {
	b.checkAlive()
	if rect.Empty() || thickness <= 0 {
		return
	}
	t := min(thickness, min(rect.W, rect.H)/2)
	b.Rect(Rect{X: rect.X, Y: rect.Y, W: rect.W, H: t}, col)
	b.Rect(Rect{X: rect.X, Y: rect.Bottom() - t, W: rect.W, H: t}, col)
	b.Rect(Rect{X: rect.X, Y: rect.Y + t, W: t, H: rect.H - 2*t}, col)
	b.Rect(Rect{X: rect.Right() - t, Y: rect.Y + t, W: t, H: rect.H - 2*t}, col)
}

// Quad emits a filled quadrilateral from four corners in winding order.
func (b *Batcher) Quad(p0, p1, p2, p3 Point, col Color) {
	b.checkAlive()
	batch := b.current(nil, b.material)
	b.pushQuad(batch,
		b.vert(p0.X, p0.Y, 0, 0, col, modeFill),
		b.vert(p1.X, p1.Y, 0, 0, col, modeFill),
		b.vert(p2.X, p2.Y, 0, 0, col, modeFill),
		b.vert(p3.X, p3.Y, 0, 0, col, modeFill),
	)
}

// Triangle emits a filled triangle.
func (b *Batcher) Triangle(p0, p1, p2 Point, col Color) {
	b.checkAlive()
	batch := b.current(nil, b.material)
	b.pushTriangle(batch,
		b.vert(p0.X, p0.Y, 0, 0, col, modeFill),
		b.vert(p1.X, p1.Y, 0, 0, col, modeFill),
		b.vert(p2.X, p2.Y, 0, 0, col, modeFill),
	)
}

// Line emits a line segment of the given thickness as a quad. Zero or
// negative thickness, or coincident endpoints, emit nothing.
func (b *Batcher) Line(from, to Point, thickness float32, col Color) {
	b.checkAlive()
	if thickness <= 0 {
		return
	}
	dir := to.Sub(from)
	if dir.X == 0 && dir.Y == 0 {
		return
	}
	normal := dir.Normalize().Perpendicular().Mul(thickness / 2)
	b.Quad(
		from.Add(normal),
		to.Add(normal),
		to.Sub(normal),
		from.Sub(normal),
		col,
	)
}

// circleSegments derives a segment count from the on-screen radius so
// large circles stay round and small ones stay cheap.
func circleSegments(radius float32) int {
	n := int(math32.Ceil(radius * 0.8))
	if n < 3 {
		return 3
	}
	if n > 128 {
		return 128
	}
	return n
}

// Circle emits a filled circle as a triangle fan with a segment count
// derived from the radius. Non-positive radii emit nothing.
func (b *Batcher) Circle(center Point, radius float32, col Color) {
	b.checkAlive()
	if radius <= 0 {
		return
	}
	b.CircleSegments(center, radius, circleSegments(radius), col)
}

// CircleSegments emits a filled circle with an explicit segment count,
// clamped to at least 3.
func (b *Batcher) CircleSegments(center Point, radius float32, segments int, col Color) {
	b.checkAlive()
	if radius <= 0 {
		return
	}
	segments = max(segments, 3)
	batch := b.current(nil, b.material)

	b.mesh.Reserve(segments+1, segments*3)
	c := b.mesh.AppendVertex(b.vert(center.X, center.Y, 0, 0, col, modeFill))
	step := 2 * math32.Pi / float32(segments)
	first := b.mesh.AppendVertex(b.vert(center.X+radius, center.Y, 0, 0, col, modeFill))
	prev := first
	for i := 1; i < segments; i++ {
		angle := step * float32(i)
		next := b.mesh.AppendVertex(b.vert(
			center.X+radius*math32.Cos(angle),
			center.Y+radius*math32.Sin(angle),
			0, 0, col, modeFill))
		b.mesh.AppendIndices(c, prev, next)
		prev = next
	}
	b.mesh.AppendIndices(c, prev, first)
	batch.count += segments * 3
}

// RoundedRect emits a rectangle with quarter-circle corners of the
// given radius. A radius of zero falls back to Rect; the radius clamps
// to half the shorter side.
func (b *Batcher) RoundedRect(rect Rect, radius float32, col Color) {
	b.checkAlive()
	if rect.Empty() {
		return
	}
	radius = min(radius, min(rect.W, rect.H)/2)
	if radius <= 0 {
		b.Rect(rect, col)
		return
	}

	// Center cross.
	b.Rect(Rect{X: rect.X + radius, Y: rect.Y, W: rect.W - 2*radius, H: rect.H}, col)
	b.Rect(Rect{X: rect.X, Y: rect.Y + radius, W: radius, H: rect.H - 2*radius}, col)
	b.Rect(Rect{X: rect.Right() - radius, Y: rect.Y + radius, W: radius, H: rect.H - 2*radius}, col)

	segments := max(circleSegments(radius)/4, 2)
	corners := [4]struct {
		center Point
		start  float32
	}{
		{Point{rect.X + radius, rect.Y + radius}, math32.Pi},
		{Point{rect.Right() - radius, rect.Y + radius}, 3 * math32.Pi / 2},
		{Point{rect.Right() - radius, rect.Bottom() - radius}, 0},
		{Point{rect.X + radius, rect.Bottom() - radius}, math32.Pi / 2},
	}
	batch := b.current(nil, b.material)
	for _, corner := range corners {
		b.mesh.Reserve(segments+2, segments*3)
		c := b.mesh.AppendVertex(b.vert(corner.center.X, corner.center.Y, 0, 0, col, modeFill))
		step := math32.Pi / 2 / float32(segments)
		prev := b.mesh.AppendVertex(b.vert(
			corner.center.X+radius*math32.Cos(corner.start),
			corner.center.Y+radius*math32.Sin(corner.start),
			0, 0, col, modeFill))
		for i := 1; i <= segments; i++ {
			angle := corner.start + step*float32(i)
			next := b.mesh.AppendVertex(b.vert(
				corner.center.X+radius*math32.Cos(angle),
				corner.center.Y+radius*math32.Sin(angle),
				0, 0, col, modeFill))
			b.mesh.AppendIndices(c, prev, next)
			prev = next
		}
		batch.count += segments * 3
	}
}

// Polygon emits a filled simple polygon. Convex polygons triangulate
// as a fan; concave ones fall back to ear clipping. Fewer than three
// points emit nothing.
func (b *Batcher) Polygon(points []Point, col Color) {
	b.checkAlive()
	if len(points) < 3 {
		return
	}
	batch := b.current(nil, b.material)
	if isConvex(points) {
		b.mesh.Reserve(len(points), (len(points)-2)*3)
		first := b.mesh.AppendVertex(b.vert(points[0].X, points[0].Y, 0, 0, col, modeFill))
		prev := b.mesh.AppendVertex(b.vert(points[1].X, points[1].Y, 0, 0, col, modeFill))
		for i := 2; i < len(points); i++ {
			next := b.mesh.AppendVertex(b.vert(points[i].X, points[i].Y, 0, 0, col, modeFill))
			b.mesh.AppendIndices(first, prev, next)
			prev = next
		}
		batch.count += (len(points) - 2) * 3
		return
	}
	for _, tri := range earClip(points) {
		b.pushTriangle(batch,
			b.vert(tri[0].X, tri[0].Y, 0, 0, col, modeFill),
			b.vert(tri[1].X, tri[1].Y, 0, 0, col, modeFill),
			b.vert(tri[2].X, tri[2].Y, 0, 0, col, modeFill),
		)
	}
}

// isConvex reports whether the polygon's turns all share a sign.
func isConvex(points []Point) bool {
	n := len(points)
	sign := float32(0)
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if (sign > 0) != (cross > 0) {
			return false
		}
	}
	return true
}

// earClip triangulates a simple polygon by repeatedly cutting ears.
// Degenerate inputs yield a best-effort fan of the remainder.
func earClip(points []Point) [][3]Point {
	verts := make([]Point, len(points))
	copy(verts, points)

	// Normalize to counterclockwise winding.
	area := float32(0)
	for i := range verts {
		j := (i + 1) % len(verts)
		area += verts[i].Cross(verts[j])
	}
	if area < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}

	tris := make([][3]Point, 0, len(verts)-2)
	for len(verts) > 3 {
		clipped := false
		for i := 0; i < len(verts); i++ {
			prev := verts[(i+len(verts)-1)%len(verts)]
			cur := verts[i]
			next := verts[(i+1)%len(verts)]
			if cur.Sub(prev).Cross(next.Sub(cur)) <= 0 {
				continue
			}
			ear := true
			for j := 0; j < len(verts); j++ {
				p := verts[j]
				if p == prev || p == cur || p == next {
					continue
				}
				if pointInTriangle(p, prev, cur, next) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}
			tris = append(tris, [3]Point{prev, cur, next})
			verts = append(verts[:i], verts[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	if len(verts) == 3 {
		tris = append(tris, [3]Point{verts[0], verts[1], verts[2]})
	} else {
		for i := 2; i < len(verts); i++ {
			tris = append(tris, [3]Point{verts[0], verts[i-1], verts[i]})
		}
	}
	return tris
}

func pointInTriangle(p, a, b, c Point) bool {
	d0 := b.Sub(a).Cross(p.Sub(a))
	d1 := c.Sub(b).Cross(p.Sub(b))
	d2 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d0 < 0 || d1 < 0 || d2 < 0
	hasPos := d0 > 0 || d1 > 0 || d2 > 0
	return !(hasNeg && hasPos)
}

// Image emits texture at (x, y) at its native size, tinted by col.
func (b *Batcher) Image(texture *gfx.Texture, x, y float32, col Color) {
	b.ImageRect(texture,
		Rect{X: x, Y: y, W: float32(texture.Width()), H: float32(texture.Height())},
		Rect{W: float32(texture.Width()), H: float32(texture.Height())},
		col)
}

// ImageRect emits the src pixel region of texture into the dst
// rectangle. Empty source or destination rectangles emit nothing.
func (b *Batcher) ImageRect(texture *gfx.Texture, dst, src Rect, col Color) {
	b.checkAlive()
	if dst.Empty() || src.Empty() {
		return
	}
	tw := float32(texture.Width())
	th := float32(texture.Height())
	u0, v0 := src.X/tw, src.Y/th
	u1, v1 := src.Right()/tw, src.Bottom()/th
	batch := b.current(texture, b.material)
	b.pushQuad(batch,
		b.vert(dst.X, dst.Y, u0, v0, col, modeMult),
		b.vert(dst.Right(), dst.Y, u1, v0, col, modeMult),
		b.vert(dst.Right(), dst.Bottom(), u1, v1, col, modeMult),
		b.vert(dst.X, dst.Bottom(), u0, v1, col, modeMult),
	)
}

// NineSlice emits texture stretched into dst with fixed-size borders:
// corners keep their size, edges stretch along one axis and the center
// stretches both ways. Border widths clamp to the available space.
func (b *Batcher) NineSlice(texture *gfx.Texture, dst Rect, left, top, right, bottom float32, col Color) {
	b.checkAlive()
	if dst.Empty() {
		return
	}
	tw := float32(texture.Width())
	th := float32(texture.Height())
	left = min(left, min(tw, dst.W)/2)
	right = min(right, min(tw, dst.W)/2)
	top = min(top, min(th, dst.H)/2)
	bottom = min(bottom, min(th, dst.H)/2)

	srcX := [4]float32{0, left, tw - right, tw}
	srcY := [4]float32{0, top, th - bottom, th}
	dstX := [4]float32{dst.X, dst.X + left, dst.Right() - right, dst.Right()}
	dstY := [4]float32{dst.Y, dst.Y + top, dst.Bottom() - bottom, dst.Bottom()}

	for row := 0; row < 3; row++ {
		for colIdx := 0; colIdx < 3; colIdx++ {
			b.ImageRect(texture,
				Rect{X: dstX[colIdx], Y: dstY[row], W: dstX[colIdx+1] - dstX[colIdx], H: dstY[row+1] - dstY[row]},
				Rect{X: srcX[colIdx], Y: srcY[row], W: srcX[colIdx+1] - srcX[colIdx], H: srcY[row+1] - srcY[row]},
				col)
		}
	}
}

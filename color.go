// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "image/color"

// Color is an 8-bit RGBA color, the format vertices carry. Alpha is
// straight (not premultiplied); the default blend mode expects texture
// data premultiplied but vertex tints straight.
type Color struct {
	R, G, B, A uint8
}

// Predefined colors.
var (
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
	Transparent = Color{0, 0, 0, 0}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Cyan        = Color{0, 255, 255, 255}
	Magenta     = Color{255, 0, 255, 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex creates an opaque color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 255,
	}
}

// FromColor converts a standard library color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Scale multiplies all four channels by s, clamped to [0, 1].
func (c Color) Scale(s float32) Color {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return Color{
		R: uint8(float32(c.R) * s),
		G: uint8(float32(c.G) * s),
		B: uint8(float32(c.B) * s),
		A: uint8(float32(c.A) * s),
	}
}

// Lerp interpolates linearly between c and o by t in [0, 1].
func (c Color) Lerp(o Color, t float32) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	return Color{
		R: lerp(c.R, o.R),
		G: lerp(c.G, o.G),
		B: lerp(c.B, o.B),
		A: lerp(c.A, o.A),
	}
}

// RGBA implements color.Color, reporting straight alpha channels
// premultiplied as the interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	a16 := uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * a16 / 0xFFFF
	g = uint32(c.G) * 0x101 * a16 / 0xFFFF
	b = uint32(c.B) * 0x101 * a16 / 0xFFFF
	return r, g, b, a16
}

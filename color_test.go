// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"image/color"
	"testing"
)

func TestColorConstructors(t *testing.T) {
	if got := RGB(10, 20, 30); got != (Color{10, 20, 30, 255}) {
		t.Errorf("RGB() = %v, want {10 20 30 255}", got)
	}
	if got := RGBA(10, 20, 30, 40); got != (Color{10, 20, 30, 40}) {
		t.Errorf("RGBA() = %v, want {10 20 30 40}", got)
	}
	if got := Hex(0xFF8040); got != (Color{255, 128, 64, 255}) {
		t.Errorf("Hex(0xFF8040) = %v, want {255 128 64 255}", got)
	}
}

func TestColorWithAlpha(t *testing.T) {
	if got := White.WithAlpha(128); got != (Color{255, 255, 255, 128}) {
		t.Errorf("WithAlpha(128) = %v, want {255 255 255 128}", got)
	}
}

func TestColorScale(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		s    float32
		want Color
	}{
		{"half", Color{200, 100, 50, 255}, 0.5, Color{100, 50, 25, 127}},
		{"clamps high", White, 2, White},
		{"clamps low", White, -1, Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Scale(tt.s); got != tt.want {
				t.Errorf("Scale(%v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestColorLerp(t *testing.T) {
	if got := Black.Lerp(White, 0); got != Black {
		t.Errorf("Lerp(0) = %v, want black", got)
	}
	if got := Black.Lerp(White, 1); got != White {
		t.Errorf("Lerp(1) = %v, want white", got)
	}
	mid := Black.Lerp(White, 0.5)
	if mid.R < 126 || mid.R > 128 {
		t.Errorf("Lerp(0.5).R = %d, want about 127", mid.R)
	}
	// t clamps outside [0, 1].
	if got := Black.Lerp(White, 2); got != White {
		t.Errorf("Lerp(2) = %v, want white", got)
	}
}

func TestColorImplementsColor(t *testing.T) {
	var _ color.Color = White

	// Straight alpha reports premultiplied through the interface.
	r, g, b, a := RGBA(255, 0, 0, 128).RGBA()
	if a != 128*0x101 {
		t.Errorf("alpha = %d, want %d", a, 128*0x101)
	}
	if r != uint32(255)*0x101*(128*0x101)/0xFFFF {
		t.Errorf("red = %d not premultiplied by alpha", r)
	}
	if g != 0 || b != 0 {
		t.Errorf("green, blue = %d, %d, want 0, 0", g, b)
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	if got != Red {
		t.Errorf("FromColor(opaque red) = %v, want %v", Red, got)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package font loads fonts for the batcher: TrueType/OpenType faces
// rasterized on demand into a shelf-packed atlas, prebaked BMFont
// bitmap fonts, and multi-channel signed distance field (MSDF) fonts
// for resolution-independent text.
//
// All three load into a Face, which the batcher consumes uniformly: a
// glyph table, kerning pairs, vertical metrics and an atlas texture.
// TrueType faces rasterize glyphs lazily on first use; a Face is safe
// for concurrent glyph lookup.
package font

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import "errors"

var (
	// ErrUnsupportedFont is returned when font data cannot be parsed.
	ErrUnsupportedFont = errors.New("font: unsupported font data")

	// ErrAtlasFull is returned when a glyph does not fit the atlas.
	ErrAtlasFull = errors.New("font: glyph atlas full")

	// ErrNoGlyphs is returned when a font descriptor declares no glyphs.
	ErrNoGlyphs = errors.New("font: no glyphs in font")

	// ErrMissingPage is returned when a bitmap font references a page
	// image that cannot be loaded.
	ErrMissingPage = errors.New("font: missing font page image")

	// ErrNotShapeable is returned when shaping is requested for a face
	// without outline font data, such as a bitmap or MSDF face.
	ErrNotShapeable = errors.New("font: face does not support shaping")
)

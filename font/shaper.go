// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedGlyph is one positioned glyph from shaping: a glyph index, the
// rune index it maps back to, and its pen-relative position.
type ShapedGlyph struct {
	ID      GlyphID
	Cluster int
	X       float32
	Y       float32
	Advance float32
}

// Shaper shapes text with HarfBuzz via go-text/typesetting, applying
// ligatures, kerning pairs, contextual alternates and bidirectional
// reordering. Only TrueType faces can shape; bitmap and MSDF faces
// return ErrNotShapeable.
//
// A Shaper is safe for concurrent use. Parsed fonts are cached per
// face; HarfbuzzShaper instances carry mutable state and are pooled.
type Shaper struct {
	pool sync.Pool

	mu    sync.RWMutex
	cache map[*Face]*gtfont.Font
}

// NewShaper creates an empty shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		cache: make(map[*Face]*gtfont.Font),
	}
}

// Shape converts text into positioned glyphs for the face, resolving
// bidirectional runs first and shaping each run in its own direction.
// Positions are relative to the starting pen at the baseline.
func (s *Shaper) Shape(face *Face, text string) ([]ShapedGlyph, error) {
	if text == "" {
		return nil, nil
	}
	parsed, err := s.fontFor(face)
	if err != nil {
		return nil, err
	}

	// gtfont.Face is not safe for concurrent use; build one per call
	// around the cached thread-safe Font.
	gtFace := gtfont.NewFace(parsed)
	runes := []rune(text)
	size := fixed.Int26_6(face.size * 64)

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	defer s.pool.Put(hb)

	var out []ShapedGlyph
	var penX float32
	for _, run := range SplitRuns(text, DirectionLTR) {
		dir := di.DirectionLTR
		if run.Direction == DirectionRTL {
			dir = di.DirectionRTL
		}
		input := shaping.Input{
			Text:      runes,
			RunStart:  run.Start,
			RunEnd:    run.End,
			Direction: dir,
			Face:      gtFace,
			Size:      size,
			Script:    scriptOf(runes[run.Start:run.End]),
			Language:  language.NewLanguage("en"),
		}
		output := hb.Shape(input)
		for _, g := range output.Glyphs {
			out = append(out, ShapedGlyph{
				ID:      GlyphID(g.GlyphID),
				Cluster: g.TextIndex(),
				X:       penX + fixedToFloat(g.XOffset),
				Y:       -fixedToFloat(g.YOffset),
				Advance: fixedToFloat(g.Advance),
			})
			penX += fixedToFloat(g.Advance)
		}
	}
	return out, nil
}

// fontFor returns the cached typesetting font for a face, parsing the
// face's raw data on first use.
func (s *Shaper) fontFor(face *Face) (*gtfont.Font, error) {
	data := face.fontData()
	if data == nil {
		return nil, ErrNotShapeable
	}

	s.mu.RLock()
	cached, ok := s.cache[face]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[face]; ok {
		return cached, nil
	}
	gtFace, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s.cache[face] = gtFace.Font
	return gtFace.Font, nil
}

// Evict drops the cached parsed font for a face, typically after the
// face is released.
func (s *Shaper) Evict(face *Face) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, face)
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import "golang.org/x/text/unicode/bidi"

// Direction is a text run direction.
type Direction uint8

// Directions.
const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// Run is a maximal span of text with one resolved direction, in rune
// indices.
type Run struct {
	Start     int
	End       int
	Direction Direction
}

// SplitRuns resolves bidirectional runs in text with the Unicode bidi
// algorithm, using base as the paragraph direction hint. Pure LTR text
// yields a single run.
func SplitRuns(text string, base Direction) []Run {
	if text == "" {
		return nil
	}

	defaultDir := bidi.Neutral
	if base == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(defaultDir)); err != nil {
		return []Run{{Start: 0, End: runeLen(text), Direction: base}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []Run{{Start: 0, End: runeLen(text), Direction: base}}
	}

	runs := make([]Run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		dir := DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = DirectionRTL
		}
		runs = append(runs, Run{Start: start, End: end + 1, Direction: dir})
	}
	return runs
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

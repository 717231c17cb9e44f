package parse_engine

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// Fragments whose baselines differ by more than this belong to
	// different visual lines (page-space units).
	lineYTolerance = 5.0

	// Fraction of the average character width below which a horizontal
	// gap is treated as intra-word spacing and merged away.
	mergeWidthFactor = 0.8
)

// reconstructLines runs stage two: it merges the ordered fragment
// sequence into visual lines. Fragments on the same baseline whose
// horizontal gap is at or below the merge threshold are fused into one
// run; larger gaps stay separate fragments within the line.
func reconstructLines(fragments []TextFragment) []Line {
	if len(fragments) == 0 {
		return nil
	}

	threshold := mergeWidthFactor * averageCharWidth(fragments)

	var lines []Line
	current := []TextFragment{fragments[0]}
	currentY := fragments[0].Y
	currentPage := fragments[0].Page

	for _, frag := range fragments[1:] {
		sameLine := frag.Page == currentPage && abs(frag.Y-currentY) <= lineYTolerance
		if !sameLine {
			lines = append(lines, organizeLine(current))
			current = []TextFragment{frag}
			currentY = frag.Y
			currentPage = frag.Page
			continue
		}

		prev := &current[len(current)-1]
		if frag.X1-prev.X2 <= threshold {
			prev.Text += frag.Text
			prev.X2 = frag.X2
			prev.Bold = prev.Bold && frag.Bold
			prev.AllCaps = isAllCaps(prev.Text)
		} else {
			current = append(current, frag)
		}
	}
	lines = append(lines, organizeLine(current))

	return lines
}

// averageCharWidth estimates the glyph width over non-bold fragments
// with non-empty text. Falls back to the default width when no such
// fragment exists (all-bold documents happen).
func averageCharWidth(fragments []TextFragment) float64 {
	var total float64
	var chars int
	for _, f := range fragments {
		if f.Bold || f.Text == "" {
			continue
		}
		total += f.X2 - f.X1
		chars += utf8.RuneCountInString(f.Text)
	}
	if chars == 0 {
		return charWidthDefault
	}
	return total / float64(chars)
}

// organizeLine finalizes one line: fragments sorted by X1, text joined
// with single spaces, bold only when every fragment is bold, bullet
// when the trimmed text starts with a bullet glyph or hyphen.
func organizeLine(fragments []TextFragment) Line {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].X1 < fragments[j].X1
	})

	parts := make([]string, 0, len(fragments))
	bold := true
	for _, f := range fragments {
		parts = append(parts, f.Text)
		bold = bold && f.Bold
	}
	text := strings.Join(parts, " ")
	trimmed := strings.TrimSpace(text)

	return Line{
		Text:      text,
		Fragments: fragments,
		Bold:      bold,
		AllCaps:   isAllCaps(text),
		Bullet:    strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-"),
		Y:         fragments[0].Y,
		Page:      fragments[0].Page,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

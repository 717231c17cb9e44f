package parse_engine

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// PageItem is one text-content item as emitted by a PDF reader: the
// string, its 6-tuple transform (indices 4 and 5 carry the x/y
// translation), the font name, and an optional explicit bold flag.
type PageItem struct {
	Str       string
	Transform [6]float64
	FontName  string
	Bold      bool
}

// DocumentSource is the minimum contract required of a PDF-reading
// collaborator: pages exposing positioned text-content items. Pages are
// 1-based.
type DocumentSource interface {
	PageCount() int
	PageItems(page int) []PageItem
}

// Approximate glyph widths used to derive X2 from X1 and character
// count. These stand in for true font metrics; downstream thresholds
// tolerate the error.
const (
	charWidthDefault = 5.0
	charWidthBold    = 5.5
	charWidthMono    = 6.0
)

// extractFragments runs stage one: it walks every page of src and turns
// each non-empty text item into a TextFragment. A page with no
// extractable text simply contributes nothing; zero fragments across
// all pages is an EmptyDocumentError.
func extractFragments(src DocumentSource) ([]TextFragment, error) {
	var fragments []TextFragment

	pages := src.PageCount()
	for page := 1; page <= pages; page++ {
		for _, item := range src.PageItems(page) {
			if item.Str == "" {
				continue
			}

			bold := item.Bold || strings.Contains(strings.ToLower(item.FontName), "bold")
			mono := fontIsMono(item.FontName)

			x1 := item.Transform[4]
			y := item.Transform[5]

			width := charWidthDefault
			switch {
			case mono:
				width = charWidthMono
			case bold:
				width = charWidthBold
			}

			fragments = append(fragments, TextFragment{
				Text:    item.Str,
				X1:      x1,
				X2:      x1 + float64(utf8.RuneCountInString(item.Str))*width,
				Y:       y,
				Page:    page,
				Bold:    bold,
				AllCaps: isAllCaps(item.Str),
			})
		}
	}

	if len(fragments) == 0 {
		return nil, &EmptyDocumentError{Pages: pages}
	}

	// Reading order: top of page first, left to right.
	sort.SliceStable(fragments, func(i, j int) bool {
		a, b := fragments[i], fragments[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		return a.X1 < b.X1
	})

	return fragments, nil
}

func fontIsMono(fontName string) bool {
	name := strings.ToLower(fontName)
	return strings.Contains(name, "mono") || strings.Contains(name, "courier")
}

// isAllCaps reports whether s uppercased equals itself and s actually
// carries case (a string of digits or punctuation is not all-caps).
func isAllCaps(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}

package parse_engine

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// pdfSource adapts a PDF byte buffer to the DocumentSource contract
// using ledongthuc/pdf, which exposes positioned text runs per page.
// All pages are materialized up front so the rest of the pipeline never
// touches the reader.
type pdfSource struct {
	pages [][]PageItem
}

// newPDFSource reads every page of the buffer into PageItems. The
// underlying reader panics on some malformed files, so decoding is
// fenced with a recover and surfaced as an error.
func newPDFSource(data []byte) (src *pdfSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf decode: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdf open: %w", err)
	}

	src = &pdfSource{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			src.pages = append(src.pages, nil)
			continue
		}

		content := page.Content()
		items := make([]PageItem, 0, len(content.Text))
		for _, t := range content.Text {
			items = append(items, PageItem{
				Str:      t.S,
				FontName: t.Font,
				Transform: [6]float64{
					t.FontSize, 0, 0, t.FontSize, t.X, t.Y,
				},
			})
		}
		src.pages = append(src.pages, items)
	}

	return src, nil
}

func (s *pdfSource) PageCount() int { return len(s.pages) }

func (s *pdfSource) PageItems(page int) []PageItem {
	if page < 1 || page > len(s.pages) {
		return nil
	}
	return s.pages[page-1]
}

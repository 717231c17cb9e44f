package parse_engine

import "fmt"

// EmptyDocumentError reports that no usable text was extracted from any
// page. It is fatal: there is nothing to segment.
type EmptyDocumentError struct {
	Pages int
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("empty document: no extractable text across %d page(s)", e.Pages)
}

// TooShortError reports that extracted text exists but is implausibly
// small to be a genuine resume. Applied only at the text-extraction
// boundary, never inside the later stages.
type TooShortError struct {
	Chars int
	Min   int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("document too short: %d chars extracted, need at least %d", e.Chars, e.Min)
}

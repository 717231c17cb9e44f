package parse_engine

import (
	"bytes"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// ExtractPlainText converts a non-PDF upload (docx, txt, html, ...) to
// raw text using docconv. The result feeds ParseText, the lenient
// entry path without position or font information.
func ExtractPlainText(data []byte, contentType string) (string, error) {
	if contentType == "text/plain" {
		return string(data), nil
	}

	res, err := docconv.Convert(bytes.NewReader(data), contentType, false)
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", contentType, err)
	}
	if strings.TrimSpace(res.Body) == "" {
		return "", &EmptyDocumentError{Pages: 1}
	}
	return res.Body, nil
}

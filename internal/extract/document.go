// Package extract provides the text extraction collaborators: plain text
// from stored PDF documents and cleaned visible text from web pages.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"rsc.io/pdf"
)

// Document extracts plain text from PDF files on disk.
type Document struct {
	logger *slog.Logger
}

// NewDocument creates a document extractor.
func NewDocument(logger *slog.Logger) *Document {
	return &Document{logger: logger.With("system", "extract")}
}

// Text extracts the text content of every page, pages separated by
// newlines. Extraction failures are reported as errors, never embedded
// in the returned text.
func (d *Document) Text(path string) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract text from %s: %v", path, r)
		}
	}()

	reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		sb.WriteString(pageText(page))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// pageText joins a page's positioned text fragments, inserting line
// breaks when the vertical position changes.
func pageText(page pdf.Page) string {
	content := page.Content()

	var sb strings.Builder
	var lastY float64
	for i, t := range content.Text {
		if i > 0 && t.Y != lastY {
			sb.WriteString("\n")
		}
		sb.WriteString(t.S)
		lastY = t.Y
	}
	return sb.String()
}

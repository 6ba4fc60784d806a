// Package pdfx extracts plain text from PDF resumes.
package pdfx

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"recruitdesk/internal/errors"
)

// pdfMagic is the signature every PDF file starts with
var pdfMagic = []byte("%PDF-")

// IsPDF reports whether the given content starts with the PDF signature
func IsPDF(content []byte) bool {
	return bytes.HasPrefix(content, pdfMagic)
}

// ExtractText extracts the plain text of a PDF file on disk.
// Pages that fail to decode are skipped; a document with no
// extractable text at all is an extraction error.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to open PDF file", err)
	}
	defer func() { _ = f.Close() }()

	return extractPages(r)
}

// ExtractTextFromReader extracts the plain text of an in-memory PDF
func ExtractTextFromReader(ra io.ReaderAt, size int64) (string, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to read PDF content", err)
	}

	return extractPages(r)
}

func extractPages(r *pdf.Reader) (string, error) {
	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip undecodable pages, keep what the rest yields
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"No text content found in PDF", nil)
	}

	return text, nil
}

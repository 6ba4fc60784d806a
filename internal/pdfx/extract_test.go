package pdfx

import (
	"bytes"
	"testing"
)

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected bool
	}{
		{
			name:     "valid PDF header",
			content:  []byte("%PDF-1.7\n%âãÏÓ"),
			expected: true,
		},
		{
			name:     "plain text",
			content:  []byte("just a text file"),
			expected: false,
		},
		{
			name:     "empty content",
			content:  nil,
			expected: false,
		},
		{
			name:     "header not at start",
			content:  []byte(" %PDF-1.4"),
			expected: false,
		},
		{
			name:     "truncated header",
			content:  []byte("%PD"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPDF(tt.content); got != tt.expected {
				t.Errorf("IsPDF(%q) = %v, want %v", tt.content, got, tt.expected)
			}
		})
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := ExtractText("/nonexistent/resume.pdf")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestExtractTextFromReaderInvalidContent(t *testing.T) {
	content := []byte("not a pdf at all")
	_, err := ExtractTextFromReader(bytes.NewReader(content), int64(len(content)))
	if err == nil {
		t.Fatal("Expected error for non-PDF content")
	}
}

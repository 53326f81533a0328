package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
)

// Format identifies how a job description was encoded at its source.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// Document is a cleaned job description and where it came from.
type Document struct {
	Text   string
	Source string
	Format Format
	Hash   string // SHA256 hex digest of Text
}

// newDocument cleans raw text and fails with ErrEmptyDocument if nothing remains.
func newDocument(raw, source string, format Format) (*Document, error) {
	text := CleanText(raw)
	if text == "" {
		return nil, &Error{Source: source, Message: "no text found", Cause: ErrEmptyDocument}
	}
	return &Document{
		Text:   text,
		Source: source,
		Format: format,
		Hash:   computeHash(text),
	}, nil
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// FromFile loads a job description, choosing a decoder from the file extension.
// Unknown extensions are read as plain text.
func FromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &Error{Source: path, Message: "failed to read file", Cause: err}
	}

	format := formatFromExtension(path)
	text, err := decode(data, format)
	if err != nil {
		return nil, &Error{Source: path, Message: fmt.Sprintf("failed to decode %s", format), Cause: err}
	}
	return newDocument(text, path, format)
}

// FromReader reads a plain-text job description until EOF.
func FromReader(r io.Reader, source string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to read input", Cause: err}
	}
	return newDocument(string(data), source, FormatText)
}

func formatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatText
	}
}

func decode(data []byte, format Format) (string, error) {
	switch format {
	case FormatText, FormatMarkdown:
		return string(data), nil
	case FormatHTML:
		return htmlToMarkdown(string(data))
	case FormatPDF:
		return pdfText(data)
	case FormatDOCX:
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// htmlToMarkdown converts an HTML posting to markdown so headings and lists survive.
func htmlToMarkdown(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML: %w", err)
	}
	return markdown, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxLineBreak    = regexp.MustCompile(`<w:br\s*/>|<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// docxText returns the paragraph text of a .docx file, one paragraph per line.
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxLineBreak.ReplaceAllString(content, " ")
	content = xmlTag.ReplaceAllString(content, "")
	return unescapeXML(content), nil
}

var xmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	return xmlEntities.Replace(s)
}

package ingestion

import (
	"context"
	"strings"

	"github.com/jonathan/interview-roadmap/internal/fetch"
)

// FromURL fetches a job posting page and keeps the description block.
// Plain-text and markdown responses are used as-is.
func FromURL(ctx context.Context, urlStr string, opts *fetch.Options) (*Document, error) {
	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return nil, &Error{Source: urlStr, Message: "request failed", Cause: err}
	}

	contentType := strings.ToLower(result.ContentType)
	if strings.HasPrefix(contentType, "text/plain") || strings.HasPrefix(contentType, "text/markdown") {
		return newDocument(result.Body, urlStr, FormatText)
	}

	text, err := fetch.ExtractMainText(result.Body, fetch.JobPostingSelectors())
	if err != nil {
		return nil, &Error{Source: urlStr, Message: "content extraction failed", Cause: err}
	}
	return newDocument(text, urlStr, FormatHTML)
}

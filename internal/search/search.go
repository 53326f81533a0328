// Package search looks up public information about a company's interview
// process through web-search providers.
package search

import (
	"context"
	"errors"
	"strings"
)

// Result is the text a provider returned for one query.
type Result struct {
	Query    string
	Abstract string
	Snippets []string
}

// Text joins the abstract and snippets into one space-separated string.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Snippets)+1)
	if s := strings.TrimSpace(r.Abstract); s != "" {
		parts = append(parts, s)
	}
	for _, snippet := range r.Snippets {
		if s := strings.TrimSpace(snippet); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Empty reports whether the result carries no text.
func (r *Result) Empty() bool {
	return r.Text() == ""
}

// Searcher runs a single web query.
// Implementations return ErrNoResults when the query succeeded but found nothing.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string) (*Result, error)
}

// Chain tries each searcher in order and returns the first non-empty result.
type Chain []Searcher

// Name returns the provider names joined with "+".
func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, s := range c {
		names = append(names, s.Name())
	}
	return strings.Join(names, "+")
}

// Search returns the first non-empty result. If every provider fails, the
// last transport error is returned; if all simply found nothing, ErrNoResults.
func (c Chain) Search(ctx context.Context, query string) (*Result, error) {
	var lastErr error
	for _, s := range c {
		result, err := s.Search(ctx, query)
		if err == nil && !result.Empty() {
			return result, nil
		}
		if err != nil && !errors.Is(err, ErrNoResults) {
			lastErr = err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoResults
}

package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Google queries a Google Programmable Search Engine.
type Google struct {
	svc *customsearch.Service
	cx  string
	num int64
}

// NewGoogle creates a Custom Search client. Extra client options (endpoint,
// HTTP client) are passed through to the API library.
func NewGoogle(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*Google, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("google search requires an API key and a search engine ID")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Google{svc: svc, cx: cx, num: DefaultMaxTopics}, nil
}

// Name implements Searcher.
func (g *Google) Name() string { return "google" }

// Search implements Searcher. Result snippets become the Result's snippets.
func (g *Google) Search(ctx context.Context, query string) (*Result, error) {
	resp, err := g.svc.Cse.List().Cx(g.cx).Q(query).Num(g.num).Context(ctx).Do()
	if err != nil {
		return nil, &Error{Provider: g.Name(), Query: query, Message: "custom search request failed", Cause: err}
	}

	result := &Result{Query: query}
	for _, item := range resp.Items {
		if item.Snippet != "" {
			result.Snippets = append(result.Snippets, item.Snippet)
		}
	}

	if result.Empty() {
		return nil, ErrNoResults
	}
	return result, nil
}

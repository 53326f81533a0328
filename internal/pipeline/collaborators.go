package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/interview-roadmap/internal/config"
	"github.com/jonathan/interview-roadmap/internal/fetch"
	"github.com/jonathan/interview-roadmap/internal/llm"
	"github.com/jonathan/interview-roadmap/internal/search"
)

// NewSearcher builds the company search collaborator named by cfg.
// It returns nil when search is disabled.
func NewSearcher(ctx context.Context, cfg *config.Config) (search.Searcher, error) {
	opts := fetch.DefaultOptions()
	if cfg.SearchTimeout > 0 {
		opts.Timeout = cfg.SearchTimeout
	}

	switch cfg.SearchProvider {
	case config.SearchNone, "":
		return nil, nil
	case config.SearchDuckDuckGo:
		ddg := search.NewDuckDuckGo(opts)
		if cfg.SearchBaseURL != "" {
			ddg.BaseURL = cfg.SearchBaseURL
		}
		if !cfg.SearchFallbackHTML {
			return ddg, nil
		}
		return search.Chain{ddg, search.NewDuckDuckGoHTML(opts)}, nil
	case config.SearchDuckDuckGoHTML:
		html := search.NewDuckDuckGoHTML(opts)
		if cfg.SearchBaseURL != "" {
			html.BaseURL = cfg.SearchBaseURL
		}
		return html, nil
	case config.SearchGoogle:
		g, err := search.NewGoogle(ctx, cfg.GoogleSearchAPIKey, cfg.GoogleSearchCX)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.SearchProvider)
	}
}

// NewModel builds the Gemini client from cfg.
func NewModel(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	return llm.NewClient(ctx, cfg.LLMConfig(), cfg.GeminiAPIKey)
}

package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Company lookup limits.
const (
	DefaultMaxQueries    = 2
	DefaultPerQueryLimit = 1500
	DefaultSummaryLimit  = 2000
)

// CompanyLookup summarizes what the web says about a company's interview process.
type CompanyLookup struct {
	Searcher      Searcher
	MaxQueries    int
	PerQueryLimit int
	SummaryLimit  int
	Logger        *slog.Logger
}

// NewCompanyLookup creates a CompanyLookup with the default limits.
func NewCompanyLookup(searcher Searcher, logger *slog.Logger) *CompanyLookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyLookup{
		Searcher:      searcher,
		MaxQueries:    DefaultMaxQueries,
		PerQueryLimit: DefaultPerQueryLimit,
		SummaryLimit:  DefaultSummaryLimit,
		Logger:        logger,
	}
}

// Queries returns the candidate queries for a company and role, most specific first.
func Queries(company, role string) []string {
	return []string{
		fmt.Sprintf("%s %s interview process", company, role),
		fmt.Sprintf("%s technical interview questions %s", company, role),
		fmt.Sprintf("%s hiring process %s", company, role),
		fmt.Sprintf("how to prepare for %s %s interview", company, role),
	}
}

// CompanyInfo runs the first MaxQueries queries and joins their text.
// Failed or empty queries are skipped. When nothing was found it returns the
// last transport error, or ErrNoResults if no query failed outright.
func (l *CompanyLookup) CompanyInfo(ctx context.Context, company, role string) (string, error) {
	if l.Searcher == nil {
		return "", ErrNoResults
	}

	queries := Queries(company, role)
	if l.MaxQueries > 0 && l.MaxQueries < len(queries) {
		queries = queries[:l.MaxQueries]
	}

	var (
		found   []string
		lastErr error
	)
	for _, query := range queries {
		result, err := l.Searcher.Search(ctx, query)
		switch {
		case errors.Is(err, ErrNoResults):
			l.Logger.Debug("search returned no results", "provider", l.Searcher.Name(), "query", query)
			continue
		case err != nil:
			l.Logger.Warn("search query failed", "provider", l.Searcher.Name(), "query", query, "error", err)
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		if text := truncateRunes(result.Text(), l.PerQueryLimit); text != "" {
			found = append(found, text)
		}
	}

	if len(found) == 0 {
		if lastErr != nil {
			return "", lastErr
		}
		return "", ErrNoResults
	}

	return truncateRunes(strings.Join(found, " "), l.SummaryLimit), nil
}

// truncateRunes cuts s to at most limit runes; limit <= 0 means no limit.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/interview-roadmap/internal/fetch"
)

// Default DuckDuckGo endpoints.
const (
	DefaultInstantAnswerURL = "https://api.duckduckgo.com/"
	DefaultHTMLSearchURL    = "https://html.duckduckgo.com/html/"
)

// DefaultMaxTopics is how many related topics are kept per instant answer.
const DefaultMaxTopics = 3

// DuckDuckGo queries the free DuckDuckGo Instant Answer API.
type DuckDuckGo struct {
	BaseURL   string
	MaxTopics int
	Options   *fetch.Options
}

// NewDuckDuckGo creates an Instant Answer client with default settings.
func NewDuckDuckGo(opts *fetch.Options) *DuckDuckGo {
	return &DuckDuckGo{
		BaseURL:   DefaultInstantAnswerURL,
		MaxTopics: DefaultMaxTopics,
		Options:   opts,
	}
}

// instantAnswer is the subset of the Instant Answer response we read.
type instantAnswer struct {
	Abstract      string         `json:"Abstract"`
	AbstractText  string         `json:"AbstractText"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

// relatedTopic is either a topic with Text or a named group of Topics.
type relatedTopic struct {
	Text   string         `json:"Text"`
	Name   string         `json:"Name"`
	Topics []relatedTopic `json:"Topics"`
}

// Name implements Searcher.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search implements Searcher.
func (d *DuckDuckGo) Search(ctx context.Context, query string) (*Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	var answer instantAnswer
	if err := fetch.JSON(ctx, d.BaseURL+"?"+params.Encode(), d.Options, &answer); err != nil {
		return nil, &Error{Provider: d.Name(), Query: query, Message: "instant answer request failed", Cause: err}
	}

	result := &Result{Query: query, Abstract: answer.AbstractText}
	if result.Abstract == "" {
		result.Abstract = answer.Abstract
	}

	maxTopics := d.MaxTopics
	if maxTopics <= 0 {
		maxTopics = DefaultMaxTopics
	}
	for _, topic := range answer.RelatedTopics {
		if len(result.Snippets) >= maxTopics {
			break
		}
		// Grouped topics carry no text of their own
		if strings.TrimSpace(topic.Text) != "" {
			result.Snippets = append(result.Snippets, topic.Text)
		}
	}

	if result.Empty() {
		return nil, ErrNoResults
	}
	return result, nil
}

// DuckDuckGoHTML scrapes the DuckDuckGo HTML results page. Instant answers
// are empty for most long-tail queries, so this is used as a second source.
type DuckDuckGoHTML struct {
	BaseURL     string
	MaxSnippets int
	Options     *fetch.Options
}

// NewDuckDuckGoHTML creates an HTML results client with default settings.
func NewDuckDuckGoHTML(opts *fetch.Options) *DuckDuckGoHTML {
	return &DuckDuckGoHTML{
		BaseURL:     DefaultHTMLSearchURL,
		MaxSnippets: DefaultMaxTopics,
		Options:     opts,
	}
}

// Name implements Searcher.
func (d *DuckDuckGoHTML) Name() string { return "duckduckgo-html" }

// Search implements Searcher.
func (d *DuckDuckGoHTML) Search(ctx context.Context, query string) (*Result, error) {
	params := url.Values{}
	params.Set("q", query)

	page, err := fetch.URL(ctx, d.BaseURL+"?"+params.Encode(), d.Options)
	if err != nil {
		return nil, &Error{Provider: d.Name(), Query: query, Message: "results page request failed", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, &Error{Provider: d.Name(), Query: query, Message: "failed to parse results page", Cause: err}
	}

	maxSnippets := d.MaxSnippets
	if maxSnippets <= 0 {
		maxSnippets = DefaultMaxTopics
	}

	result := &Result{Query: query}
	doc.Find(".result__snippet").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			result.Snippets = append(result.Snippets, text)
		}
		return len(result.Snippets) < maxSnippets
	})

	if result.Empty() {
		return nil, ErrNoResults
	}
	return result, nil
}

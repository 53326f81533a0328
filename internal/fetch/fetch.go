// Package fetch performs the outbound HTTP GETs of a run: search provider
// queries and job postings given by URL.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (compatible; InterviewRoadmap/1.0)"
	DefaultMaxBodyBytes = 4 << 20
)

// Result is a fetched response body.
type Result struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
	Truncated   bool // the body was cut at MaxBodyBytes
}

// Options configures a request.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client *http.Client
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func (o *Options) httpClient() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: o.Timeout}
}

func (o *Options) bodyLimit() int64 {
	if o.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return o.MaxBodyBytes
}

// URL GETs an absolute http(s) URL. A non-2xx response returns the Result
// together with an *Error carrying the status.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := opts.httpClient().Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// one byte past the limit tells a full body from a cut one
	limit := opts.bodyLimit()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	truncated := int64(len(body)) > limit
	if truncated {
		body = body[:limit]
	}

	result := &Result{
		URL:         urlStr,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		Truncated:   truncated,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{
			URL:     urlStr,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}
	return result, nil
}

// JSON GETs urlStr and decodes the body into v. A truncated body is an error
// rather than a confusing decode failure.
func JSON(ctx context.Context, urlStr string, opts *Options, v any) error {
	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return err
	}
	if result.Truncated {
		return &Error{URL: urlStr, Message: "JSON response exceeds body limit"}
	}
	if err := json.Unmarshal([]byte(result.Body), v); err != nil {
		return &Error{URL: urlStr, Message: "failed to decode JSON response", Cause: err}
	}
	return nil
}

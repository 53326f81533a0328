package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Backend Engineer</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.Body, "<h1>Backend Engineer</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
	assert.False(t, result.Truncated)
}

func TestURL_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	opts := DefaultOptions()
	opts.UserAgent = "custom-agent"
	opts.Headers = map[string]string{"Accept": "application/json"}

	result, err := URL(context.Background(), server.URL, opts)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, urlStr := range []string{"", "not-a-valid-url", "example.com/jobs", "ftp://example.com/jd.txt", "http://"} {
		t.Run(urlStr, func(t *testing.T) {
			_, err := URL(context.Background(), urlStr, nil)
			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "invalid URL", fetchErr.Message)
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result, "the response is returned with the error")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Contains(t, err.Error(), "404")
}

func TestURL_TransportErrorIsNotStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := URL(context.Background(), url, nil)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "HTTP request failed", fetchErr.Message)
	assert.False(t, errors.Is(err, ErrStatus))
}

func TestURL_BodyLimit(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		limit     int64
		wantLen   int
		truncated bool
	}{
		{name: "over the limit", body: strings.Repeat("a", 100), limit: 10, wantLen: 10, truncated: true},
		{name: "exactly the limit", body: strings.Repeat("a", 10), limit: 10, wantLen: 10},
		{name: "under the limit", body: "abc", limit: 10, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			opts := DefaultOptions()
			opts.MaxBodyBytes = tt.limit

			result, err := URL(context.Background(), server.URL, opts)
			require.NoError(t, err)
			assert.Len(t, result.Body, tt.wantLen)
			assert.Equal(t, tt.truncated, result.Truncated)
		})
	}
}

func TestURL_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad":
			_, _ = w.Write([]byte("not json"))
		case "/big":
			_, _ = w.Write([]byte(`{"Abstract": "` + strings.Repeat("x", 64) + `"}`))
		default:
			_, _ = w.Write([]byte(`{"Abstract": "Acme interviews in four rounds."}`))
		}
	}))
	defer server.Close()

	var payload struct {
		Abstract string `json:"Abstract"`
	}
	require.NoError(t, JSON(context.Background(), server.URL, nil, &payload))
	assert.Equal(t, "Acme interviews in four rounds.", payload.Abstract)

	err := JSON(context.Background(), server.URL+"/bad", nil, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JSON response")

	small := DefaultOptions()
	small.MaxBodyBytes = 16
	err = JSON(context.Background(), server.URL+"/big", small, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds body limit")
}

package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewGoogle_RequiresCredentials(t *testing.T) {
	_, err := NewGoogle(context.Background(), "", "cx")
	require.Error(t, err)

	_, err = NewGoogle(context.Background(), "key", "")
	require.Error(t, err)
}

func TestGoogle_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "engine-id", r.URL.Query().Get("cx"))
		assert.Equal(t, "Acme SRE interview process", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [
			{"title": "Acme interview", "link": "https://example.com/1", "snippet": "Four rounds."},
			{"title": "No snippet", "link": "https://example.com/2"}
		]}`))
	}))
	defer server.Close()

	g, err := NewGoogle(context.Background(), "key", "engine-id",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	result, err := g.Search(context.Background(), "Acme SRE interview process")
	require.NoError(t, err)
	assert.Equal(t, []string{"Four rounds."}, result.Snippets)
	assert.Equal(t, "google", g.Name())
}

func TestGoogle_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	g, err := NewGoogle(context.Background(), "key", "engine-id",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	_, err = g.Search(context.Background(), "anything")
	assert.True(t, errors.Is(err, ErrNoResults))
}

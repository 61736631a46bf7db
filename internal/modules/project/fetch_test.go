package project

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abcdef", 3))
	assert.Equal(t, "żół", truncateRunes("żółw", 3))
	assert.Equal(t, "ab", truncateRunes("ab", 5))
	assert.Equal(t, "", truncateRunes("ab", 0))
}

func TestHTTPFetcherTruncatesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(strings.Repeat("ą", 20)))
	}))
	defer srv.Close()

	text, err := NewHTTPFetcher(time.Second, 7).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ą", 7), text)
}

func TestHTTPFetcherUsesErrorPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Location: nowhere", http.StatusNotFound)
	}))
	defer srv.Close()

	text, err := NewHTTPFetcher(time.Second, 5000).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Location: nowhere")
}

func TestHTTPFetcherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(50*time.Millisecond, 5000).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcherBadURL(t *testing.T) {
	_, err := NewHTTPFetcher(time.Second, 5000).Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)

	_, err = NewHTTPFetcher(time.Second, 5000).Fetch(context.Background(), "::not a url")
	assert.Error(t, err)
}

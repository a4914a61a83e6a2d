package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPImageFetcherSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(5 * time.Second)

	data, err := fetcher.Fetch(context.Background(), server.URL+"/tee.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestHTTPImageFetcherNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(5 * time.Second)

	_, err := fetcher.Fetch(context.Background(), server.URL+"/missing.jpg")
	assert.Error(t, err)
}

func TestHTTPImageFetcherEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(5 * time.Second)

	_, err := fetcher.Fetch(context.Background(), server.URL+"/empty.jpg")
	assert.Error(t, err)
}

func TestHTTPImageFetcherContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, server.URL+"/slow.jpg")
	assert.Error(t, err)
}

package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageFetcher downloads a product image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPImageFetcher fetches images with a plain GET and a hard timeout.
// There is deliberately no retry: a lost image only costs a blank cell
// in the report.
type HTTPImageFetcher struct {
	client *http.Client
}

func NewHTTPImageFetcher(timeout time.Duration) *HTTPImageFetcher {
	return &HTTPImageFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image request returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image body is empty")
	}

	return data, nil
}

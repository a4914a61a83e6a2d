package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/usmandev/daraz-catalog/internal/models"
	"github.com/usmandev/daraz-catalog/internal/site"
)

// Extractor turns one rendered results page into product records.
type Extractor struct {
	site   site.Adapter
	images ImageFetcher
	logger *slog.Logger
}

func New(adapter site.Adapter, images ImageFetcher, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		site:   adapter,
		images: images,
		logger: logger.With("component", "extractor"),
	}
}

// Extract parses html and returns one record per listing container, in
// DOM order. A listing missing title, price or link is dropped silently;
// a failed or missing image leaves the record's Image nil. Identical
// input always yields identical output.
func (e *Extractor) Extract(ctx context.Context, html string, pageNum int) ([]models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records []models.Record

	doc.Find(e.site.ListingSelector()).Each(func(i int, s *goquery.Selection) {
		record := models.Record{
			Title: strings.TrimSpace(s.Find(e.site.TitleSelector()).First().Text()),
			Price: strings.TrimSpace(s.Find(e.site.PriceSelector()).First().Text()),
			Page:  pageNum,
		}

		if href, ok := s.Find(e.site.LinkSelector()).First().Attr("href"); ok {
			record.Link = e.site.NormalizeURL(href)
		}

		if !record.Complete() {
			e.logger.Debug("dropping incomplete listing", "index", i, "page", pageNum)
			return
		}

		if src, ok := s.Find(e.site.ImageSelector()).First().Attr("src"); ok {
			record.Image = e.fetchImage(ctx, e.site.NormalizeURL(src))
		}

		records = append(records, record)
	})

	e.logger.Info("extracted listings", "page", pageNum, "count", len(records))
	return records, nil
}

// fetchImage downloads the listing image. Any failure leaves the record
// without one; the report renders placeholder space instead.
func (e *Extractor) fetchImage(ctx context.Context, url string) []byte {
	if e.images == nil || url == "" {
		return nil
	}

	data, err := e.images.Fetch(ctx, url)
	if err != nil {
		e.logger.Debug("image download failed", "url", url, "error", err)
		return nil
	}
	return data
}

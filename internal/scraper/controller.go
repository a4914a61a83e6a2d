package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usmandev/daraz-catalog/internal/models"
)

var (
	// ErrNoKeyword means Run was called with an empty search keyword.
	ErrNoKeyword = errors.New("search keyword is empty")
)

// PageFetcher is the browser-facing collaborator of the controller.
type PageFetcher interface {
	Open(ctx context.Context, keyword string) error
	RenderCurrentPage(ctx context.Context) (string, error)
	AdvancePage(ctx context.Context) (bool, error)
}

// Extractor turns one page's rendered markup into records.
type Extractor interface {
	Extract(ctx context.Context, html string, pageNum int) ([]models.Record, error)
}

// State tracks where the controller is in its scrape cycle.
type State int

const (
	StateSearching State = iota
	StateScrapingPage
	StatePaginating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateScrapingPage:
		return "scraping_page"
	case StatePaginating:
		return "paginating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Controller drives the scrape loop: render a page, extract it, advance,
// and stop when the next control is gone or the page cap is hit.
type Controller struct {
	fetcher   PageFetcher
	extractor Extractor
	logger    *slog.Logger

	// maxPages bounds the loop; 0 means no cap and the disabled next
	// control is the only terminal condition.
	maxPages int
	state    State
}

func NewController(fetcher PageFetcher, extractor Extractor, maxPages int, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fetcher:   fetcher,
		extractor: extractor,
		maxPages:  maxPages,
		logger:    logger.With("component", "controller"),
		state:     StateSearching,
	}
}

// State returns the controller's current scrape state. Done is terminal;
// no fetch happens after it.
func (c *Controller) State() State {
	return c.state
}

// Run executes the full search-and-paginate cycle and returns every
// record in page-then-DOM order. Duplicates are possible if the site
// re-renders a page; none are filtered.
func (c *Controller) Run(ctx context.Context, keyword string) ([]models.Record, error) {
	defer func() { c.state = StateDone }()

	if keyword == "" {
		return nil, ErrNoKeyword
	}

	c.state = StateSearching
	if err := c.fetcher.Open(ctx, keyword); err != nil {
		return nil, fmt.Errorf("failed to open search for %q: %w", keyword, err)
	}

	var records []models.Record

	for pageNum := 1; ; pageNum++ {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		c.state = StateScrapingPage
		c.logger.Info("scraping page", "page", pageNum)

		html, err := c.fetcher.RenderCurrentPage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to render page %d: %w", pageNum, err)
		}

		pageRecords, err := c.extractor.Extract(ctx, html, pageNum)
		if err != nil {
			return records, fmt.Errorf("failed to extract page %d: %w", pageNum, err)
		}
		records = append(records, pageRecords...)

		if c.maxPages > 0 && pageNum >= c.maxPages {
			c.logger.Info("page cap reached", "pages", pageNum, "records", len(records))
			break
		}

		c.state = StatePaginating
		advanced, err := c.fetcher.AdvancePage(ctx)
		if err != nil {
			return records, fmt.Errorf("failed to advance past page %d: %w", pageNum, err)
		}
		if !advanced {
			c.logger.Info("last page reached", "pages", pageNum, "records", len(records))
			break
		}
	}

	return records, nil
}

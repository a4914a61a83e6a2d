package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/usmandev/daraz-catalog/internal/site"
	"github.com/usmandev/daraz-catalog/internal/wait"
)

// ErrSearchBoxNotFound means the home page loaded but the search input
// never appeared. Failing the search entry point is fatal; everything
// after it degrades to empty extractions instead.
var ErrSearchBoxNotFound = errors.New("search box not found")

// Options controls the fixed delays of the render/advance cycle.
// Defaults match the chunked-scroll behavior the site needs for its
// lazy-loaded listing grid.
type Options struct {
	// ScrollChunk is the pixel step of one scroll increment.
	ScrollChunk int
	// ScrollDelay is the settle pause between scroll increments.
	ScrollDelay time.Duration
	// PageSettle is the pause after clicking the next-page control.
	PageSettle time.Duration
	// WaitTimeout bounds every wait-for-element poll.
	WaitTimeout time.Duration
	// PollInterval is the wait-for-element polling step.
	PollInterval time.Duration
}

func DefaultOptions() Options {
	return Options{
		ScrollChunk:  800,
		ScrollDelay:  300 * time.Millisecond,
		PageSettle:   2 * time.Second,
		WaitTimeout:  15 * time.Second,
		PollInterval: 250 * time.Millisecond,
	}
}

// Fetcher drives one browser page through search, scroll rendering and
// pagination. It holds transient page state only; records never live here.
type Fetcher struct {
	page   playwright.Page
	site   site.Adapter
	opts   Options
	logger *slog.Logger
}

func New(page playwright.Page, adapter site.Adapter, opts Options, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		page:   page,
		site:   adapter,
		opts:   opts,
		logger: logger.With("component", "fetcher"),
	}
}

// Open navigates to the site's home page, fills the search box with
// keyword and submits it. Unreachable site or missing search box is fatal.
func (f *Fetcher) Open(ctx context.Context, keyword string) error {
	f.logger.Info("opening search", "url", f.site.BaseURL(), "keyword", keyword)

	if _, err := f.page.Goto(f.site.BaseURL(), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(f.opts.WaitTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("failed to open %s: %w", f.site.BaseURL(), err)
	}

	searchBox := f.page.Locator(f.site.SearchInputSelector()).First()
	err := wait.For(ctx, f.opts.WaitTimeout, f.opts.PollInterval, func() (bool, error) {
		count, err := searchBox.Count()
		if err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if err != nil {
		if errors.Is(err, wait.ErrTimeout) {
			return ErrSearchBoxNotFound
		}
		return fmt.Errorf("waiting for search box: %w", err)
	}

	if err := searchBox.Fill(keyword); err != nil {
		return fmt.Errorf("failed to fill search box: %w", err)
	}
	if err := searchBox.Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit search: %w", err)
	}

	return f.waitForListings(ctx)
}

// RenderCurrentPage scrolls the page top to bottom in fixed chunks,
// pausing between increments so lazy content loads, then returns the
// rendered markup. A page with no listings is not an error; it simply
// extracts to nothing downstream.
func (f *Fetcher) RenderCurrentPage(ctx context.Context) (string, error) {
	position := 0

	for {
		if _, err := f.page.Evaluate(fmt.Sprintf("window.scrollTo(0, %d)", position)); err != nil {
			return "", fmt.Errorf("scroll failed: %w", err)
		}
		if err := wait.Sleep(ctx, f.opts.ScrollDelay); err != nil {
			return "", err
		}

		position += f.opts.ScrollChunk

		// Re-read the height each pass; lazily appended content
		// extends the scroll run.
		height, err := f.scrollHeight()
		if err != nil {
			return "", err
		}
		if position >= height {
			break
		}
	}

	html, err := f.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return html, nil
}

// AdvancePage clicks the next-page control when present and enabled and
// reports whether it navigated. An absent or disabled control is the
// normal last-page signal, not an error.
func (f *Fetcher) AdvancePage(ctx context.Context) (bool, error) {
	control := f.page.Locator(f.site.NextControlSelector()).First()

	count, err := control.Count()
	if err != nil {
		return false, fmt.Errorf("failed to locate next control: %w", err)
	}
	if count == 0 {
		f.logger.Info("next control not found, last page reached")
		return false, nil
	}

	ariaDisabled, err := control.GetAttribute("aria-disabled")
	if err != nil {
		ariaDisabled = ""
	}
	if f.site.NextControlDisabled(ariaDisabled) {
		f.logger.Info("next control disabled, last page reached")
		return false, nil
	}

	if err := control.Click(); err != nil {
		return false, fmt.Errorf("failed to click next control: %w", err)
	}

	if err := wait.Sleep(ctx, f.opts.PageSettle); err != nil {
		return false, err
	}
	if err := f.waitForListings(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// waitForListings polls for the listing container with a bounded wait.
// Timing out is tolerated: a results page can legitimately be empty.
func (f *Fetcher) waitForListings(ctx context.Context) error {
	listings := f.page.Locator(f.site.ListingSelector())

	err := wait.For(ctx, f.opts.WaitTimeout, f.opts.PollInterval, func() (bool, error) {
		count, err := listings.Count()
		if err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if errors.Is(err, wait.ErrTimeout) {
		f.logger.Warn("no listings appeared within wait timeout")
		return nil
	}
	return err
}

func (f *Fetcher) scrollHeight() (int, error) {
	result, err := f.page.Evaluate("document.body.scrollHeight")
	if err != nil {
		return 0, fmt.Errorf("failed to read scroll height: %w", err)
	}

	switch v := result.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("unexpected scroll height type %T", result)
	}
}

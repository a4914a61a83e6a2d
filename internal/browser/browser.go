package browser

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Browser owns the single Chromium session for the process lifetime.
// It must be closed on every exit path, including failures.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	logger  *slog.Logger
}

type Options struct {
	Headless       bool
	Timeout        time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	Locale         string
}

func DefaultOptions() *Options {
	return &Options{
		Headless:       true,
		Timeout:        30 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		Locale:         "en-US",
	}
}

func New(opts *Options) (*Browser, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--disable-gpu",
			"--no-sandbox",
			"--start-maximized",
			"--user-agent=" + opts.UserAgent,
		},
	}

	b, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		UserAgent:         &opts.UserAgent,
		AcceptDownloads:   playwright.Bool(false),
		JavaScriptEnabled: playwright.Bool(true),
		Locale:            &opts.Locale,
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	}

	context, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	return &Browser{
		pw:      pw,
		browser: b,
		context: context,
		logger:  slog.Default().With("component", "browser"),
	}, nil
}

// NewPage opens a page in the shared context with the default timeout applied.
func (b *Browser) NewPage() (playwright.Page, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}

	page.SetDefaultTimeout(float64(DefaultOptions().Timeout.Milliseconds()))

	return page, nil
}

// Close releases the context, the browser and the driver in order,
// collecting whatever fails along the way.
func (b *Browser) Close() error {
	b.logger.Debug("closing browser session")

	var errs []error

	if b.context != nil {
		if err := b.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}

	return nil
}

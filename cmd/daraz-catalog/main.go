package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"

	"github.com/usmandev/daraz-catalog/internal/browser"
	"github.com/usmandev/daraz-catalog/internal/config"
	"github.com/usmandev/daraz-catalog/internal/extractor"
	"github.com/usmandev/daraz-catalog/internal/fetcher"
	"github.com/usmandev/daraz-catalog/internal/report"
	"github.com/usmandev/daraz-catalog/internal/scraper"
	"github.com/usmandev/daraz-catalog/internal/site"
	"github.com/usmandev/daraz-catalog/pkg/logger"
)

func main() {
	var (
		keyword  = flag.String("keyword", "", "Search keyword (required)")
		output   = flag.String("output", "", "Output PDF path (default from config)")
		headless = flag.Bool("headless", true, "Run browser in headless mode")
		maxPages = flag.Int("max-pages", -1, "Page cap, 0 for unbounded (default from config)")
	)
	flag.Parse()

	if *keyword == "" {
		fmt.Println("Please provide a search keyword with -keyword")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *output != "" {
		cfg.Report.OutputPath = *output
	}
	if *maxPages >= 0 {
		cfg.Scraper.MaxPages = *maxPages
	}
	cfg.Browser.Headless = *headless && cfg.Browser.Headless

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	l := logger.New(cfg.Logging.Level, cfg.Logging.Format).With("run_id", uuid.NewString())
	l.Info("Starting Daraz catalog scraper", "keyword", *keyword, "output", cfg.Report.OutputPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		l.Info("Shutdown signal received")
		cancel()
	}()

	b, err := browser.New(&browser.Options{
		Headless:       cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      cfg.Browser.UserAgent,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		Locale:         cfg.Browser.Locale,
	})
	if err != nil {
		l.Error("Failed to initialize browser", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	page, err := b.NewPage()
	if err != nil {
		l.Error("Failed to open page", "error", err)
		os.Exit(1)
	}
	defer page.Close()

	daraz := site.NewDaraz()

	f := fetcher.New(page, daraz, fetcher.Options{
		ScrollChunk:  cfg.Scraper.ScrollChunk,
		ScrollDelay:  cfg.Scraper.ScrollDelay,
		PageSettle:   cfg.Scraper.PageSettle,
		WaitTimeout:  cfg.Scraper.WaitTimeout,
		PollInterval: cfg.Scraper.PollInterval,
	}, l)

	images := extractor.NewHTTPImageFetcher(cfg.Scraper.ImageTimeout)
	ext := extractor.New(daraz, images, l)
	controller := scraper.NewController(f, ext, cfg.Scraper.MaxPages, l)

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" scraping daraz.pk for %q...", *keyword)
	s.Start()

	records, err := controller.Run(ctx, *keyword)
	s.Stop()
	if err != nil {
		l.Error("Scrape failed", "error", err, "records", len(records))
		os.Exit(1)
	}

	l.Info("Scrape finished", "records", len(records))

	builder := report.NewBuilder(report.Options{ImageBox: cfg.Report.ImageBox}, l)
	if err := builder.Build(records, cfg.Report.OutputPath); err != nil {
		l.Error("Failed to build report", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %d products to %s\n", len(records), cfg.Report.OutputPath)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Browser BrowserConfig
	Scraper ScraperConfig
	Report  ReportConfig
	Logging LoggingConfig
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
	Locale         string
}

type ScraperConfig struct {
	ScrollChunk  int
	ScrollDelay  time.Duration
	PageSettle   time.Duration
	WaitTimeout  time.Duration
	PollInterval time.Duration
	MaxPages     int
	ImageTimeout time.Duration
}

type ReportConfig struct {
	OutputPath string
	ImageBox   float64
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "en-US"),
		},
		Scraper: ScraperConfig{
			ScrollChunk:  getIntOrDefault("SCRAPER_SCROLL_CHUNK", 800),
			ScrollDelay:  getDurationOrDefault("SCRAPER_SCROLL_DELAY", 300*time.Millisecond),
			PageSettle:   getDurationOrDefault("SCRAPER_PAGE_SETTLE", 2*time.Second),
			WaitTimeout:  getDurationOrDefault("SCRAPER_WAIT_TIMEOUT", 15*time.Second),
			PollInterval: getDurationOrDefault("SCRAPER_POLL_INTERVAL", 250*time.Millisecond),
			MaxPages:     getIntOrDefault("SCRAPER_MAX_PAGES", 50),
			ImageTimeout: getDurationOrDefault("SCRAPER_IMAGE_TIMEOUT", 10*time.Second),
		},
		Report: ReportConfig{
			OutputPath: getEnvOrDefault("REPORT_OUTPUT_PATH", "daraz_products.pdf"),
			ImageBox:   getFloatOrDefault("REPORT_IMAGE_BOX_MM", 42),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.ScrollChunk < 1 {
		return fmt.Errorf("SCRAPER_SCROLL_CHUNK must be at least 1")
	}

	if c.Scraper.PollInterval <= 0 {
		return fmt.Errorf("SCRAPER_POLL_INTERVAL must be positive")
	}

	if c.Scraper.WaitTimeout < c.Scraper.PollInterval {
		return fmt.Errorf("SCRAPER_WAIT_TIMEOUT cannot be smaller than SCRAPER_POLL_INTERVAL")
	}

	if c.Scraper.MaxPages < 0 {
		return fmt.Errorf("SCRAPER_MAX_PAGES cannot be negative")
	}

	if c.Report.ImageBox <= 0 {
		return fmt.Errorf("REPORT_IMAGE_BOX_MM must be positive")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

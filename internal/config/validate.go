package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Scraper.Concurrency < 1 {
		return fmt.Errorf("scraper.concurrency must be >= 1, got %d", cfg.Scraper.Concurrency)
	}
	if cfg.Scraper.Concurrency > 64 {
		return fmt.Errorf("scraper.concurrency must be <= 64, got %d", cfg.Scraper.Concurrency)
	}
	if cfg.Scraper.MaxParallelBrowsers < 1 {
		return fmt.Errorf("scraper.max_parallel_browsers must be >= 1, got %d", cfg.Scraper.MaxParallelBrowsers)
	}
	if cfg.Scraper.MaxPages < 1 {
		return fmt.Errorf("scraper.max_pages must be >= 1, got %d", cfg.Scraper.MaxPages)
	}
	if cfg.Scraper.MaxProducts < 1 {
		return fmt.Errorf("scraper.max_products must be >= 1, got %d", cfg.Scraper.MaxProducts)
	}
	if cfg.Scraper.RequestTimeout <= 0 {
		return fmt.Errorf("scraper.request_timeout must be > 0")
	}
	if cfg.Scraper.MaxRetries < 0 {
		return fmt.Errorf("scraper.max_retries must be >= 0, got %d", cfg.Scraper.MaxRetries)
	}
	if cfg.Scraper.RateLimitMax < cfg.Scraper.RateLimitMin {
		return fmt.Errorf("scraper.rate_limit_max must be >= scraper.rate_limit_min")
	}
	if err := ValidateURL(cfg.Scraper.BaseURL); err != nil {
		return fmt.Errorf("scraper.base_url: %w", err)
	}

	if cfg.Fetcher.Type != "http" && cfg.Fetcher.Type != "browser" {
		return fmt.Errorf("fetcher.type must be 'http' or 'browser', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	if cfg.Filters.PriceMin < 0 {
		return fmt.Errorf("filters.price_min must be >= 0, got %d", cfg.Filters.PriceMin)
	}
	if cfg.Filters.PriceMax > 0 && cfg.Filters.PriceMax < cfg.Filters.PriceMin {
		return fmt.Errorf("filters.price_max must be >= filters.price_min")
	}
	if cfg.Filters.MinRating < 0 || cfg.Filters.MinRating > 5 {
		return fmt.Errorf("filters.min_rating must be in [0, 5], got %v", cfg.Filters.MinRating)
	}

	if cfg.Analysis.HistogramBins < 1 {
		return fmt.Errorf("analysis.histogram_bins must be >= 1, got %d", cfg.Analysis.HistogramBins)
	}
	if cfg.Analysis.TopWords < 1 {
		return fmt.Errorf("analysis.top_words must be >= 1, got %d", cfg.Analysis.TopWords)
	}

	validBackends := map[string]bool{
		"json": true, "csv": true, "mongodb": true,
	}
	for _, b := range cfg.Storage.Backends {
		if !validBackends[b] {
			return fmt.Errorf("storage backend %q is not supported (valid: json, csv, mongodb)", b)
		}
	}

	if cfg.Dashboard.Port < 1 || cfg.Dashboard.Port > 65535 {
		return fmt.Errorf("dashboard.port must be 1-65535, got %d", cfg.Dashboard.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is usable as a scrape target.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Scraper.BaseURL = "" }},
		{"bad base url", func(c *Config) { c.Scraper.BaseURL = "ftp://example.com" }},
		{"zero max pages", func(c *Config) { c.Scraper.MaxPages = 0 }},
		{"zero concurrency", func(c *Config) { c.Scraper.Concurrency = 0 }},
		{"negative retries", func(c *Config) { c.Scraper.MaxRetries = -1 }},
		{"bad fetcher type", func(c *Config) { c.Fetcher.Type = "carrier-pigeon" }},
		{"inverted price range", func(c *Config) { c.Filters.PriceMin = 2000; c.Filters.PriceMax = 100 }},
		{"rating out of range", func(c *Config) { c.Filters.MinRating = 6 }},
		{"bad dashboard port", func(c *Config) { c.Dashboard.Port = -1 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://www.bestbuy.com"); err != nil {
		t.Errorf("valid URL rejected: %v", err)
	}
	if err := ValidateURL("not a url"); err == nil {
		t.Error("invalid URL accepted")
	}
	if err := ValidateURL("ftp://example.com"); err == nil {
		t.Error("non-http scheme accepted")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scraper.MaxPages != 25 {
		t.Errorf("expected default max pages 25, got %d", cfg.Scraper.MaxPages)
	}
	if cfg.Fetcher.Type != "browser" {
		t.Errorf("expected default fetcher browser, got %q", cfg.Fetcher.Type)
	}
	if cfg.Dashboard.Port != 8050 {
		t.Errorf("expected default port 8050, got %d", cfg.Dashboard.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shopscope.yaml")
	yaml := `
scraper:
  max_pages: 3
  request_timeout: 5s
fetcher:
  type: http
filters:
  price_min: 100
  price_max: 800
  brands:
    - Lenovo
dashboard:
  port: 9999
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scraper.MaxPages != 3 {
		t.Errorf("expected max pages 3, got %d", cfg.Scraper.MaxPages)
	}
	if cfg.Scraper.RequestTimeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", cfg.Scraper.RequestTimeout)
	}
	if cfg.Fetcher.Type != "http" {
		t.Errorf("expected http fetcher, got %q", cfg.Fetcher.Type)
	}
	if len(cfg.Filters.Brands) != 1 || cfg.Filters.Brands[0] != "Lenovo" {
		t.Errorf("unexpected brands: %v", cfg.Filters.Brands)
	}
	// Untouched sections keep their defaults
	if cfg.Scraper.MaxProducts != 600 {
		t.Errorf("expected default max products 600, got %d", cfg.Scraper.MaxProducts)
	}
}

func TestReportPaths(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Report.RawJSONPath(); got != filepath.Join("data", "raw_products.json") {
		t.Errorf("unexpected raw path: %s", got)
	}
	if got := cfg.Report.ExcelPath(); got != filepath.Join("reports", "ecommerce_analysis.xlsx") {
		t.Errorf("unexpected excel path: %s", got)
	}
}

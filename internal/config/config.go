package config

import (
	"path/filepath"
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for shopscope.
type Config struct {
	Scraper   ScraperConfig   `mapstructure:"scraper"   yaml:"scraper"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"   yaml:"fetcher"`
	Filters   FilterConfig    `mapstructure:"filters"   yaml:"filters"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"  yaml:"analysis"`
	Report    ReportConfig    `mapstructure:"report"    yaml:"report"`
	Storage   StorageConfig   `mapstructure:"storage"   yaml:"storage"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"   yaml:"metrics"`
}

// ScraperConfig controls listing traversal and detail enrichment.
type ScraperConfig struct {
	BaseURL             string        `mapstructure:"base_url"              yaml:"base_url"`
	CategoryPath        string        `mapstructure:"category_path"         yaml:"category_path"`
	MaxPages            int           `mapstructure:"max_pages"             yaml:"max_pages"`
	MaxProducts         int           `mapstructure:"max_products"          yaml:"max_products"`
	Concurrency         int           `mapstructure:"concurrency"           yaml:"concurrency"`
	MaxParallelBrowsers int           `mapstructure:"max_parallel_browsers" yaml:"max_parallel_browsers"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"       yaml:"request_timeout"`
	PageLoadTimeout     time.Duration `mapstructure:"page_load_timeout"     yaml:"page_load_timeout"`
	RateLimitMin        time.Duration `mapstructure:"rate_limit_min"        yaml:"rate_limit_min"`
	RateLimitMax        time.Duration `mapstructure:"rate_limit_max"        yaml:"rate_limit_max"`
	MaxRetries          int           `mapstructure:"max_retries"           yaml:"max_retries"`
	RetryDelay          time.Duration `mapstructure:"retry_delay"           yaml:"retry_delay"`
	UserAgents          []string      `mapstructure:"user_agents"           yaml:"user_agents"`
}

// FetcherConfig controls how pages are fetched.
type FetcherConfig struct {
	Type            string        `mapstructure:"type"              yaml:"type"` // http or browser
	Headless        bool          `mapstructure:"headless"          yaml:"headless"`
	ChromeBin       string        `mapstructure:"chrome_bin"        yaml:"chrome_bin"`
	BlockResources  bool          `mapstructure:"block_resources"   yaml:"block_resources"`
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
}

// FilterConfig describes the listing facets applied before harvesting.
type FilterConfig struct {
	PriceMin  int      `mapstructure:"price_min"  yaml:"price_min"`
	PriceMax  int      `mapstructure:"price_max"  yaml:"price_max"`
	MinRating float64  `mapstructure:"min_rating" yaml:"min_rating"`
	Brands    []string `mapstructure:"brands"     yaml:"brands"`
}

// AnalysisConfig controls the statistics and text analysis stage.
type AnalysisConfig struct {
	HistogramBins  int      `mapstructure:"histogram_bins"  yaml:"histogram_bins"`
	TopWords       int      `mapstructure:"top_words"       yaml:"top_words"`
	TopRated       int      `mapstructure:"top_rated"       yaml:"top_rated"`
	ExtraStopwords []string `mapstructure:"extra_stopwords" yaml:"extra_stopwords"`
}

// ReportConfig fixes the artifact paths under data/ and reports/.
type ReportConfig struct {
	DataDir       string `mapstructure:"data_dir"       yaml:"data_dir"`
	ReportsDir    string `mapstructure:"reports_dir"    yaml:"reports_dir"`
	RawJSONFile   string `mapstructure:"raw_json_file"  yaml:"raw_json_file"`
	ExcelFile     string `mapstructure:"excel_file"     yaml:"excel_file"`
	PDFFile       string `mapstructure:"pdf_file"       yaml:"pdf_file"`
	WordcloudFile string `mapstructure:"wordcloud_file" yaml:"wordcloud_file"`
	DashboardFile string `mapstructure:"dashboard_file" yaml:"dashboard_file"`
	FontFile      string `mapstructure:"font_file"      yaml:"font_file"`
}

// RawJSONPath returns the full path of the raw scrape output.
func (r ReportConfig) RawJSONPath() string { return filepath.Join(r.DataDir, r.RawJSONFile) }

// ExcelPath returns the full path of the workbook artifact.
func (r ReportConfig) ExcelPath() string { return filepath.Join(r.ReportsDir, r.ExcelFile) }

// PDFPath returns the full path of the PDF artifact.
func (r ReportConfig) PDFPath() string { return filepath.Join(r.ReportsDir, r.PDFFile) }

// WordcloudPath returns the full path of the word cloud image.
func (r ReportConfig) WordcloudPath() string { return filepath.Join(r.ReportsDir, r.WordcloudFile) }

// DashboardPath returns the full path of the static dashboard page.
func (r ReportConfig) DashboardPath() string { return filepath.Join(r.ReportsDir, r.DashboardFile) }

// StorageConfig controls where cleaned products are persisted.
type StorageConfig struct {
	Backends []string    `mapstructure:"backends" yaml:"backends"` // json, csv, mongodb
	CSVPath  string      `mapstructure:"csv_path" yaml:"csv_path"`
	Mongo    MongoConfig `mapstructure:"mongo"    yaml:"mongo"`
}

// MongoConfig holds MongoDB backend settings.
type MongoConfig struct {
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// DashboardConfig controls the live dashboard server.
type DashboardConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the metrics exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			BaseURL:             "https://www.bestbuy.com",
			CategoryPath:        "/site/laptop-computers/all-laptops/pcmcat138500050001.c?id=pcmcat138500050001",
			MaxPages:            25,
			MaxProducts:         600,
			Concurrency:         8,
			MaxParallelBrowsers: 6,
			RequestTimeout:      30 * time.Second,
			PageLoadTimeout:     60 * time.Second,
			RateLimitMin:        0,
			RateLimitMax:        0,
			MaxRetries:          2,
			RetryDelay:          500 * time.Millisecond,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36",
			},
		},
		Fetcher: FetcherConfig{
			Type:            "browser",
			Headless:        true,
			BlockResources:  true,
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 << 20,
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
		},
		Filters: FilterConfig{
			PriceMin:  500,
			PriceMax:  1500,
			MinRating: 4.0,
			Brands:    []string{"Apple", "Dell", "HP"},
		},
		Analysis: AnalysisConfig{
			HistogramBins: 20,
			TopWords:      80,
			TopRated:      5,
		},
		Report: ReportConfig{
			DataDir:       "data",
			ReportsDir:    "reports",
			RawJSONFile:   "raw_products.json",
			ExcelFile:     "ecommerce_analysis.xlsx",
			PDFFile:       "ecommerce_report.pdf",
			WordcloudFile: "wordcloud.png",
			DashboardFile: "dashboard.html",
		},
		Storage: StorageConfig{
			Backends: []string{"json"},
			CSVPath:  "data/products.csv",
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "shopscope",
				Collection: "products",
			},
		},
		Dashboard: DashboardConfig{
			Port: 8050,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

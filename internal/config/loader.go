package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("SHOPSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("shopscope")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".shopscope"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper so env vars bind
// even without a config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("scraper.base_url", cfg.Scraper.BaseURL)
	v.SetDefault("scraper.category_path", cfg.Scraper.CategoryPath)
	v.SetDefault("scraper.max_pages", cfg.Scraper.MaxPages)
	v.SetDefault("scraper.max_products", cfg.Scraper.MaxProducts)
	v.SetDefault("scraper.concurrency", cfg.Scraper.Concurrency)
	v.SetDefault("scraper.max_parallel_browsers", cfg.Scraper.MaxParallelBrowsers)
	v.SetDefault("scraper.request_timeout", cfg.Scraper.RequestTimeout)
	v.SetDefault("scraper.page_load_timeout", cfg.Scraper.PageLoadTimeout)
	v.SetDefault("scraper.rate_limit_min", cfg.Scraper.RateLimitMin)
	v.SetDefault("scraper.rate_limit_max", cfg.Scraper.RateLimitMax)
	v.SetDefault("scraper.max_retries", cfg.Scraper.MaxRetries)
	v.SetDefault("scraper.retry_delay", cfg.Scraper.RetryDelay)
	v.SetDefault("scraper.user_agents", cfg.Scraper.UserAgents)

	v.SetDefault("fetcher.type", cfg.Fetcher.Type)
	v.SetDefault("fetcher.headless", cfg.Fetcher.Headless)
	v.SetDefault("fetcher.chrome_bin", cfg.Fetcher.ChromeBin)
	v.SetDefault("fetcher.block_resources", cfg.Fetcher.BlockResources)
	v.SetDefault("fetcher.follow_redirects", cfg.Fetcher.FollowRedirects)
	v.SetDefault("fetcher.max_redirects", cfg.Fetcher.MaxRedirects)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)
	v.SetDefault("fetcher.idle_conn_timeout", cfg.Fetcher.IdleConnTimeout)
	v.SetDefault("fetcher.max_idle_conns", cfg.Fetcher.MaxIdleConns)

	v.SetDefault("filters.price_min", cfg.Filters.PriceMin)
	v.SetDefault("filters.price_max", cfg.Filters.PriceMax)
	v.SetDefault("filters.min_rating", cfg.Filters.MinRating)
	v.SetDefault("filters.brands", cfg.Filters.Brands)

	v.SetDefault("analysis.histogram_bins", cfg.Analysis.HistogramBins)
	v.SetDefault("analysis.top_words", cfg.Analysis.TopWords)
	v.SetDefault("analysis.top_rated", cfg.Analysis.TopRated)

	v.SetDefault("report.data_dir", cfg.Report.DataDir)
	v.SetDefault("report.reports_dir", cfg.Report.ReportsDir)
	v.SetDefault("report.raw_json_file", cfg.Report.RawJSONFile)
	v.SetDefault("report.excel_file", cfg.Report.ExcelFile)
	v.SetDefault("report.pdf_file", cfg.Report.PDFFile)
	v.SetDefault("report.wordcloud_file", cfg.Report.WordcloudFile)
	v.SetDefault("report.dashboard_file", cfg.Report.DashboardFile)
	v.SetDefault("report.font_file", cfg.Report.FontFile)

	v.SetDefault("storage.backends", cfg.Storage.Backends)
	v.SetDefault("storage.csv_path", cfg.Storage.CSVPath)
	v.SetDefault("storage.mongo.uri", cfg.Storage.Mongo.URI)
	v.SetDefault("storage.mongo.database", cfg.Storage.Mongo.Database)
	v.SetDefault("storage.mongo.collection", cfg.Storage.Mongo.Collection)

	v.SetDefault("dashboard.port", cfg.Dashboard.Port)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.path", cfg.Metrics.Path)
}

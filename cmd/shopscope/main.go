package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/dashboard"
	"github.com/shopscope/shopscope/internal/fetcher"
	"github.com/shopscope/shopscope/internal/observability"
	"github.com/shopscope/shopscope/internal/pipeline"
	"github.com/shopscope/shopscope/internal/report"
	"github.com/shopscope/shopscope/internal/scraper"
	"github.com/shopscope/shopscope/internal/storage"
	"github.com/shopscope/shopscope/internal/types"
)

var (
	cfgFile   string
	verbose   bool
	useScrape bool
	useSample bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopscope",
		Short: "ShopScope — E-Commerce Scraping & Analytics",
		Long: `ShopScope scrapes e-commerce product listings, analyzes prices,
ratings and review sentiment, and produces report artifacts:

  • Excel workbook with summary, specifications and review sheets
  • Two-page PDF with executive summary and visualizations
  • Word cloud of review vocabulary
  • Static HTML dashboard, plus a live dashboard server`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCmd creates the "run" subcommand: acquire data (scrape or sample),
// then analyze and render every artifact in one pass.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Acquire data and produce all report artifacts",
		Long:  "Runs the full pipeline: data acquisition, sentiment scoring, storage, and report generation.",
		RunE:  runPipeline,
	}

	cmd.Flags().BoolVar(&useScrape, "scrape", false, "scrape live data from the configured site")
	cmd.Flags().BoolVar(&useSample, "sample", false, "use the built-in sample dataset (default)")
	cmd.MarkFlagsMutuallyExclusive("scrape", "sample")

	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	logger := setupLogger(nil)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = setupLogger(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	metrics := observability.NewMetrics(logger)

	var products []*types.Product
	if useScrape {
		products, err = scrapeProducts(ctx, cfg, metrics, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Info("using built-in sample dataset")
		products = types.SampleProducts()
	}

	if len(products) == 0 {
		return types.ErrNoProducts
	}

	scorer := analysis.NewScorer(metrics, logger)
	scored := scorer.ScoreProducts(products)
	logger.Info("sentiment scored", "reviews", scored)

	if err := persist(cfg, products, metrics, logger); err != nil {
		return err
	}

	if err := renderReports(cfg, products, logger); err != nil {
		return err
	}

	fmt.Printf("\n✅ Pipeline complete\n")
	fmt.Printf("   Products:  %d analyzed\n", len(products))
	fmt.Printf("   Raw data:  %s\n", cfg.Report.RawJSONPath())
	fmt.Printf("   Reports:   %s\n", cfg.Report.ReportsDir)
	return nil
}

// scrapeCmd creates the "scrape" subcommand: data acquisition only.
func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Scrape live product data without generating reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(nil)

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger = setupLogger(cfg)

			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, cancel := signalContext(logger)
			defer cancel()

			metrics := observability.NewMetrics(logger)
			products, err := scrapeProducts(ctx, cfg, metrics, logger)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				return types.ErrNoProducts
			}

			scorer := analysis.NewScorer(metrics, logger)
			scorer.ScoreProducts(products)

			if err := persist(cfg, products, metrics, logger); err != nil {
				return err
			}

			fmt.Printf("\n✅ Scrape complete\n")
			fmt.Printf("   Products:  %d stored\n", len(products))
			fmt.Printf("   Raw data:  %s\n", cfg.Report.RawJSONPath())
			return nil
		},
	}
}

// reportCmd creates the "report" subcommand: regenerate artifacts from
// the raw JSON written by a previous run or scrape.
func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Regenerate report artifacts from stored raw data",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(nil)

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger = setupLogger(cfg)

			products, err := storage.LoadProducts(cfg.Report.RawJSONPath())
			if err != nil {
				return fmt.Errorf("load raw data: %w", err)
			}
			if len(products) == 0 {
				return types.ErrNoProducts
			}

			metrics := observability.NewMetrics(logger)
			scorer := analysis.NewScorer(metrics, logger)
			scorer.ScoreProducts(products)

			if err := renderReports(cfg, products, logger); err != nil {
				return err
			}

			fmt.Printf("\n✅ Reports regenerated for %d products in %s\n", len(products), cfg.Report.ReportsDir)
			return nil
		},
	}
}

// serveCmd creates the "serve" subcommand: live dashboard over the
// stored dataset.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the live analysis dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(nil)

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger = setupLogger(cfg)

			products, err := storage.LoadProducts(cfg.Report.RawJSONPath())
			if err != nil {
				return fmt.Errorf("load raw data: %w", err)
			}

			metrics := observability.NewMetrics(logger)
			scorer := analysis.NewScorer(metrics, logger)
			scorer.ScoreProducts(products)
			summary := analysis.Summarize(products, cfg.Analysis.TopRated)

			ctx, cancel := signalContext(logger)
			defer cancel()

			fmt.Printf("Dashboard listening on http://localhost:%d\n", cfg.Dashboard.Port)
			return dashboard.New(cfg, products, summary, metrics, logger).Start(ctx)
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ShopScope %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scraper:\n")
			fmt.Printf("  Base URL:          %s\n", cfg.Scraper.BaseURL)
			fmt.Printf("  Category Path:     %s\n", cfg.Scraper.CategoryPath)
			fmt.Printf("  Max Pages:         %d\n", cfg.Scraper.MaxPages)
			fmt.Printf("  Max Products:      %d\n", cfg.Scraper.MaxProducts)
			fmt.Printf("  Concurrency:       %d\n", cfg.Scraper.Concurrency)
			fmt.Printf("  Max Retries:       %d\n", cfg.Scraper.MaxRetries)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:              %s\n", cfg.Fetcher.Type)
			fmt.Printf("  Headless:          %v\n", cfg.Fetcher.Headless)
			fmt.Printf("  Block Resources:   %v\n", cfg.Fetcher.BlockResources)
			fmt.Printf("\nFilters:\n")
			fmt.Printf("  Price Range:       $%d - $%d\n", cfg.Filters.PriceMin, cfg.Filters.PriceMax)
			fmt.Printf("  Min Rating:        %.1f\n", cfg.Filters.MinRating)
			fmt.Printf("  Brands:            %v\n", cfg.Filters.Brands)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Backends:          %v\n", cfg.Storage.Backends)
			fmt.Printf("  Raw JSON:          %s\n", cfg.Report.RawJSONPath())
			fmt.Printf("\nReport:\n")
			fmt.Printf("  Reports Dir:       %s\n", cfg.Report.ReportsDir)
			fmt.Printf("  Workbook:          %s\n", cfg.Report.ExcelPath())
			fmt.Printf("  PDF:               %s\n", cfg.Report.PDFPath())
			fmt.Printf("\nDashboard:\n")
			fmt.Printf("  Port:              %d\n", cfg.Dashboard.Port)
			fmt.Printf("  Metrics Enabled:   %v\n", cfg.Metrics.Enabled)
			return nil
		},
	}
}

// scrapeProducts wires the fetcher, cleaning pipeline and scraper, then
// runs the full listing-plus-detail pass.
func scrapeProducts(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) ([]*types.Product, error) {
	f, err := fetcher.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	pipe := pipeline.Default(logger, cfg.Filters.Brands)
	s := scraper.New(cfg, f, pipe, metrics, logger)

	start := time.Now()
	products, err := s.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("scrape: %w", err)
	}

	logger.Info("scrape complete",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"products", len(products),
		"dropped", pipe.Dropped(),
		"pages_fetched", metrics.PagesFetched.Load(),
		"bytes", metrics.BytesDownloaded.Load(),
	)
	return products, nil
}

// persist writes products to every configured storage backend.
func persist(cfg *config.Config, products []*types.Product, metrics *observability.Metrics, logger *slog.Logger) error {
	store, err := storage.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	if err := store.Store(products); err != nil {
		store.Close()
		return fmt.Errorf("store products: %w", err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	metrics.ProductsStored.Add(int64(len(products)))
	return nil
}

// renderReports runs the analysis stage and writes every artifact.
func renderReports(cfg *config.Config, products []*types.Product, logger *slog.Logger) error {
	frames := analysis.BuildFrames(products)
	summary := analysis.Summarize(products, cfg.Analysis.TopRated)
	return report.NewRenderer(cfg, logger).RenderAll(products, frames, summary)
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down...", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// setupLogger creates a structured logger. Called once before config is
// available and again after, so early errors still get logged.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	format := "text"

	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
		format = cfg.Logging.Format
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

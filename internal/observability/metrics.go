package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks operational counters for the pipeline.
type Metrics struct {
	// Fetch metrics
	PagesFetched    atomic.Int64
	PagesFailed     atomic.Int64
	PagesRetried    atomic.Int64
	BytesDownloaded atomic.Int64

	// Record metrics
	ProductsScraped  atomic.Int64
	ProductsSkipped  atomic.Int64
	ProductsStored   atomic.Int64
	ReviewsCollected atomic.Int64
	ReviewsScored    atomic.Int64

	// Worker metrics
	ActiveWorkers atomic.Int32

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// ServeHTTP serves metrics in Prometheus text exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	metrics := []struct {
		name  string
		help  string
		value int64
	}{
		{"shopscope_pages_fetched_total", "Total page fetches attempted", m.PagesFetched.Load()},
		{"shopscope_pages_failed_total", "Total failed page fetches", m.PagesFailed.Load()},
		{"shopscope_pages_retried_total", "Total retried page fetches", m.PagesRetried.Load()},
		{"shopscope_bytes_downloaded_total", "Total HTML bytes downloaded", m.BytesDownloaded.Load()},
		{"shopscope_products_scraped_total", "Products successfully extracted", m.ProductsScraped.Load()},
		{"shopscope_products_skipped_total", "Detail pages skipped or failed", m.ProductsSkipped.Load()},
		{"shopscope_products_stored_total", "Products written to storage", m.ProductsStored.Load()},
		{"shopscope_reviews_collected_total", "Review snippets collected", m.ReviewsCollected.Load()},
		{"shopscope_reviews_scored_total", "Reviews run through sentiment scoring", m.ReviewsScored.Load()},
		{"shopscope_active_workers", "Detail workers currently running", int64(m.ActiveWorkers.Load())},
	}

	for _, metric := range metrics {
		fmt.Fprintf(w, "# HELP %s %s\n", metric.name, metric.help)
		fmt.Fprintf(w, "# TYPE %s gauge\n", metric.name)
		fmt.Fprintf(w, "%s %d\n", metric.name, metric.value)
	}
}

// Snapshot returns the counters as a map for the dashboard API.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"pages_fetched":     m.PagesFetched.Load(),
		"pages_failed":      m.PagesFailed.Load(),
		"pages_retried":     m.PagesRetried.Load(),
		"bytes_downloaded":  m.BytesDownloaded.Load(),
		"products_scraped":  m.ProductsScraped.Load(),
		"products_skipped":  m.ProductsSkipped.Load(),
		"products_stored":   m.ProductsStored.Load(),
		"reviews_collected": m.ReviewsCollected.Load(),
		"reviews_scored":    m.ReviewsScored.Load(),
		"active_workers":    m.ActiveWorkers.Load(),
	}
}

package observability

import (
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics(testLogger)
	m.PagesFetched.Add(12)
	m.ProductsScraped.Add(5)
	m.ReviewsScored.Add(9)

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		"# HELP shopscope_pages_fetched_total",
		"shopscope_pages_fetched_total 12",
		"shopscope_products_scraped_total 5",
		"shopscope_reviews_scored_total 9",
		"shopscope_active_workers 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type: %q", ct)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics(testLogger)
	m.BytesDownloaded.Add(4096)
	m.ActiveWorkers.Add(3)

	snap := m.Snapshot()
	if snap["bytes_downloaded"] != int64(4096) {
		t.Errorf("unexpected bytes: %v", snap["bytes_downloaded"])
	}
	if snap["active_workers"] != int32(3) {
		t.Errorf("unexpected workers: %v", snap["active_workers"])
	}
}

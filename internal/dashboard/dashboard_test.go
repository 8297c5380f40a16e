package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/observability"
	"github.com/shopscope/shopscope/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testDashboard() *Dashboard {
	cfg := config.DefaultConfig()
	products := types.SampleProducts()
	summary := analysis.Summarize(products, cfg.Analysis.TopRated)
	metrics := observability.NewMetrics(testLogger)
	metrics.PagesFetched.Add(7)
	return New(cfg, products, summary, metrics, testLogger)
}

func TestHandleIndex(t *testing.T) {
	d := testDashboard()

	rec := httptest.NewRecorder()
	d.handleIndex(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ShopScope Dashboard") {
		t.Error("index page missing title")
	}

	rec = httptest.NewRecorder()
	d.handleIndex(rec, httptest.NewRequest("GET", "/nope", nil))
	if rec.Code != 404 {
		t.Errorf("unknown path should 404, got %d", rec.Code)
	}
}

func TestHandleAPIStats(t *testing.T) {
	d := testDashboard()

	rec := httptest.NewRecorder()
	d.handleAPIStats(rec, httptest.NewRequest("GET", "/api/stats", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Summary *analysis.Summary `json:"summary"`
		Metrics map[string]any    `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if payload.Summary == nil || payload.Summary.Products != 3 {
		t.Errorf("unexpected summary: %+v", payload.Summary)
	}
	if got, ok := payload.Metrics["pages_fetched"].(float64); !ok || got != 7 {
		t.Errorf("expected pages_fetched 7, got %v", payload.Metrics["pages_fetched"])
	}
}

func TestHandleAPIProducts(t *testing.T) {
	d := testDashboard()

	rec := httptest.NewRecorder()
	d.handleAPIProducts(rec, httptest.NewRequest("GET", "/api/products", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var products []*types.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
}

package report

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	cfg.Report.DataDir = filepath.Join(dir, "data")
	cfg.Report.ReportsDir = filepath.Join(dir, "reports")
	return cfg
}

func TestRenderAll(t *testing.T) {
	cfg := testConfig(t)
	products := types.SampleProducts()
	frames := analysis.BuildFrames(products)
	summary := analysis.Summarize(products, cfg.Analysis.TopRated)

	r := NewRenderer(cfg, testLogger)
	if err := r.RenderAll(products, frames, summary); err != nil {
		t.Fatalf("render all: %v", err)
	}

	for _, path := range []string{
		cfg.Report.ExcelPath(),
		cfg.Report.PDFPath(),
		cfg.Report.WordcloudPath(),
		cfg.Report.DashboardPath(),
	} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("artifact missing: %s: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact empty: %s", path)
		}
	}
}

func TestRenderAllNoProducts(t *testing.T) {
	cfg := testConfig(t)
	frames := analysis.BuildFrames(nil)
	summary := analysis.Summarize(nil, cfg.Analysis.TopRated)

	r := NewRenderer(cfg, testLogger)
	if err := r.RenderAll(nil, frames, summary); err != nil {
		t.Fatalf("render all with no products: %v", err)
	}

	// PDF still renders, with the no-data notice instead of charts
	if _, err := os.Stat(cfg.Report.PDFPath()); err != nil {
		t.Errorf("PDF missing: %v", err)
	}
}

func TestWriteWorkbook(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Report.ReportsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	products := types.SampleProducts()
	frames := analysis.BuildFrames(products)
	path := cfg.Report.ExcelPath()

	r := NewRenderer(cfg, testLogger)
	if err := r.WriteWorkbook(frames, products, path); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("workbook missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("workbook empty")
	}
}

func TestWriteWordcloudPlaceholder(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Report.ReportsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := cfg.Report.WordcloudPath()

	// No font configured: a placeholder must still be written
	r := NewRenderer(cfg, testLogger)
	if err := r.WriteWordcloud(map[string]int{"battery": 3, "screen": 2}, path); err != nil {
		t.Fatalf("write wordcloud: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("wordcloud missing: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("wordcloud output is not a PNG")
	}
}

func TestWriteStaticDashboard(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Report.ReportsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	products := types.SampleProducts()
	summary := analysis.Summarize(products, cfg.Analysis.TopRated)
	freq := analysis.WordFrequencies(products, nil)
	path := cfg.Report.DashboardPath()

	r := NewRenderer(cfg, testLogger)
	if err := r.WriteStaticDashboard(summary, freq, path); err != nil {
		t.Fatalf("write dashboard: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("dashboard missing: %v", err)
	}
	html := string(data)
	for _, want := range []string{
		"ShopScope Analysis",
		"MacBook Air",
		cfg.Report.WordcloudFile,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestChartsSkipSparseData(t *testing.T) {
	cfg := testConfig(t)
	r := NewRenderer(cfg, testLogger)

	p := types.NewProduct("https://example.com")
	p.Name = "Lonely"
	p.Price = 999

	png, err := r.renderRatingVsPrice([]*types.Product{p})
	if err != nil {
		t.Fatalf("render scatter: %v", err)
	}
	if png != nil {
		t.Error("single data point should skip the scatter")
	}
}

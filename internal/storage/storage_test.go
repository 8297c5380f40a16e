package storage

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestJSONStorageRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "raw_products.json")

	s, err := NewJSONStorage(path, testLogger)
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}

	products := types.SampleProducts()
	if err := s.Store(products); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	loaded, err := LoadProducts(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(products) {
		t.Fatalf("expected %d products, got %d", len(products), len(loaded))
	}
	if loaded[0].Name != products[0].Name {
		t.Errorf("expected name %q, got %q", products[0].Name, loaded[0].Name)
	}
	if loaded[0].Price != products[0].Price {
		t.Errorf("expected price %v, got %v", products[0].Price, loaded[0].Price)
	}
	if len(loaded[0].Reviews) != len(products[0].Reviews) {
		t.Errorf("reviews lost in roundtrip: %d vs %d", len(loaded[0].Reviews), len(products[0].Reviews))
	}
}

func TestLoadProductsMissing(t *testing.T) {
	_, err := LoadProducts(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, types.ErrNoRawData) {
		t.Errorf("expected ErrNoRawData, got %v", err)
	}
}

func TestCSVStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")

	s, err := NewCSVStorage(path, testLogger)
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}

	products := types.SampleProducts()
	if err := s.Store(products); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != len(products)+1 {
		t.Fatalf("expected %d rows, got %d", len(products)+1, len(rows))
	}
	if rows[0][0] != "name" {
		t.Errorf("expected header row, got %v", rows[0])
	}
	if rows[1][0] != products[0].Name {
		t.Errorf("expected %q, got %q", products[0].Name, rows[1][0])
	}
}

func TestNewAlwaysWritesJSON(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	cfg.Report.DataDir = filepath.Join(dir, "data")
	cfg.Storage.Backends = []string{"csv"}
	cfg.Storage.CSVPath = filepath.Join(dir, "products.csv")

	s, err := New(cfg, testLogger)
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	if s.Name() != "multi" {
		t.Errorf("csv-only config should still fan out to json, got %q", s.Name())
	}

	if err := s.Store(types.SampleProducts()); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := os.Stat(cfg.Report.RawJSONPath()); err != nil {
		t.Errorf("raw JSON should always be written: %v", err)
	}
	if _, err := os.Stat(cfg.Storage.CSVPath); err != nil {
		t.Errorf("csv backend missing: %v", err)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Report.DataDir = t.TempDir()
	cfg.Storage.Backends = []string{"postgres"}

	if _, err := New(cfg, testLogger); err == nil {
		t.Error("unknown backend should fail")
	}
}

package pipeline

import (
	"log/slog"
	"os"
	"testing"

	"github.com/shopscope/shopscope/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestTrimMiddleware(t *testing.T) {
	m := &TrimMiddleware{}

	p := types.NewProduct("https://example.com/product/x/ABC123")
	p.Name = "  HP   -  Envy 15  "
	p.Specs["Screen Size"] = " 15.6  inches "
	p.Reviews = []types.Review{{Text: "  Great   laptop  "}}

	result, err := m.Process(p)
	if err != nil {
		t.Fatalf("trim error: %v", err)
	}
	if result.Name != "HP - Envy 15" {
		t.Errorf("expected collapsed name, got %q", result.Name)
	}
	if result.Specs["Screen Size"] != "15.6 inches" {
		t.Errorf("expected collapsed spec, got %q", result.Specs["Screen Size"])
	}
	if result.Reviews[0].Text != "Great laptop" {
		t.Errorf("expected collapsed review, got %q", result.Reviews[0].Text)
	}
}

func TestRequiredFieldsMiddleware(t *testing.T) {
	m := &RequiredFieldsMiddleware{}

	// Should pass — has name and URL
	p1 := types.NewProduct("https://example.com/product/x/ABC123")
	p1.Name = "MacBook Air"
	result, err := m.Process(p1)
	if err != nil || result == nil {
		t.Error("product with name and URL should pass")
	}

	// Should drop — missing name (returns nil, nil)
	p2 := types.NewProduct("https://example.com/product/y/DEF456")
	result, err = m.Process(p2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Error("product missing name should be dropped (nil)")
	}
}

func TestDedupMiddleware(t *testing.T) {
	m := NewDedupMiddleware()

	p := types.NewProduct("https://example.com/product/x/ABC123")
	p.Name = "MacBook Air"

	if result, _ := m.Process(p); result == nil {
		t.Fatal("first occurrence should pass")
	}
	if result, _ := m.Process(p.Clone()); result != nil {
		t.Error("duplicate URL should be dropped")
	}
}

func TestBrandMiddleware(t *testing.T) {
	m := NewBrandMiddleware([]string{"Apple", "Dell", "HP"})

	tests := []struct {
		name  string
		brand string
	}{
		{"HP - Envy 15 Laptop", "HP"},
		{"MacBook Air 13 by Apple", "Apple"},
		{"Lenovo ThinkPad X1", "Lenovo"},
	}

	for _, tt := range tests {
		p := types.NewProduct("https://example.com")
		p.Name = tt.name
		result, err := m.Process(p)
		if err != nil {
			t.Fatalf("brand error: %v", err)
		}
		if result.Brand != tt.brand {
			t.Errorf("%q: expected brand %q, got %q", tt.name, tt.brand, result.Brand)
		}
	}
}

func TestBrandMiddlewareKeepsExisting(t *testing.T) {
	m := NewBrandMiddleware([]string{"Apple"})

	p := types.NewProduct("https://example.com")
	p.Name = "MacBook Air"
	p.Brand = "Custom"

	result, _ := m.Process(p)
	if result.Brand != "Custom" {
		t.Errorf("existing brand should win, got %q", result.Brand)
	}
}

func TestRatingClampMiddleware(t *testing.T) {
	m := &RatingClampMiddleware{}

	p := types.NewProduct("https://example.com")
	p.Rating = 7.2
	p.Reviews = []types.Review{{Text: "x", Score: -1}}

	result, _ := m.Process(p)
	if result.Rating != 5 {
		t.Errorf("rating should clamp to 5, got %v", result.Rating)
	}
	if result.Reviews[0].Score != 0 {
		t.Errorf("review score should clamp to 0, got %v", result.Reviews[0].Score)
	}
}

func TestReviewFilterMiddleware(t *testing.T) {
	m := &ReviewFilterMiddleware{}

	p := types.NewProduct("https://example.com")
	p.Reviews = []types.Review{
		{Text: "Solid machine"},
		{Text: "   "},
		{Text: "Battery could be better"},
	}

	result, _ := m.Process(p)
	if len(result.Reviews) != 2 {
		t.Fatalf("expected 2 reviews kept, got %d", len(result.Reviews))
	}
	if result.ReviewsCount != 2 {
		t.Errorf("reviews count should track kept reviews, got %d", result.ReviewsCount)
	}
}

func TestDefaultPipeline(t *testing.T) {
	p := Default(testLogger, []string{"Apple", "Dell", "HP"})

	products := []*types.Product{
		mkProduct("  Dell  XPS 13  ", "https://example.com/product/xps/AAA111", 4.5),
		mkProduct("", "https://example.com/product/noname/BBB222", 4.0),
		mkProduct("Dell XPS 13", "https://example.com/product/xps/AAA111", 4.5), // dup URL
		mkProduct("HP Envy 15", "https://example.com/product/envy/CCC333", 9.9),
	}

	out, err := p.ProcessAll(products)
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 products, got %d", len(out))
	}
	if p.Dropped() != 2 {
		t.Errorf("expected 2 dropped, got %d", p.Dropped())
	}
	if out[0].Name != "Dell XPS 13" || out[0].Brand != "Dell" {
		t.Errorf("unexpected first product: %+v", out[0])
	}
	if out[1].Rating != 5 {
		t.Errorf("rating should be clamped, got %v", out[1].Rating)
	}
}

func mkProduct(name, url string, rating float64) *types.Product {
	p := types.NewProduct(url)
	p.Name = name
	p.Rating = rating
	return p
}

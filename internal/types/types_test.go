package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewRequest(t *testing.T) {
	req, err := NewRequest("https://www.bestbuy.com/product/x/ABC123")
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if req.Method != "GET" {
		t.Errorf("expected GET, got %q", req.Method)
	}
	if req.Domain() != "www.bestbuy.com" {
		t.Errorf("unexpected domain: %q", req.Domain())
	}

	if _, err := NewRequest("ftp://example.com"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
}

func TestProductJSONRoundtrip(t *testing.T) {
	p := NewProduct("https://example.com/product/x/ABC123")
	p.Name = "MacBook Air"
	p.Price = 1099.99
	p.Reviews = []Review{{Text: "Great", Score: 5, Sentiment: 0.8}}

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Product
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Name != p.Name || back.Price != p.Price {
		t.Errorf("roundtrip mismatch: %+v", back)
	}
	if len(back.Reviews) != 1 || back.Reviews[0].Sentiment != 0.8 {
		t.Errorf("reviews lost: %+v", back.Reviews)
	}
}

func TestProductToFlatMap(t *testing.T) {
	p := NewProduct("https://example.com")
	p.Name = "XPS 13"
	p.Brand = "Dell"
	p.Price = 1299
	p.Specs["RAM"] = "16GB"

	flat := p.ToFlatMap()
	if flat["name"] != "XPS 13" || flat["brand"] != "Dell" {
		t.Errorf("unexpected flat map: %v", flat)
	}
	if flat["price"] != "1299" {
		t.Errorf("unexpected price: %q", flat["price"])
	}
	if flat["specs"] == "" {
		t.Error("specs should serialize")
	}

	// Missing values stay empty, not zero
	empty := NewProduct("https://example.com").ToFlatMap()
	if empty["price"] != "" || empty["rating"] != "" {
		t.Errorf("missing values should be empty strings: %v", empty)
	}
}

func TestProductClone(t *testing.T) {
	p := NewProduct("https://example.com")
	p.Specs["RAM"] = "16GB"
	p.Reviews = []Review{{Text: "x"}}

	c := p.Clone()
	c.Specs["RAM"] = "32GB"
	c.Reviews[0].Text = "y"

	if p.Specs["RAM"] != "16GB" {
		t.Error("clone should not share specs map")
	}
	if p.Reviews[0].Text != "x" {
		t.Error("clone should not share reviews slice")
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	fe := &FetchError{URL: "https://example.com", Err: ErrEmptyResponse, Retryable: true}
	if !errors.Is(fe, ErrEmptyResponse) {
		t.Error("FetchError should unwrap to its cause")
	}
	if !fe.IsRetryable() {
		t.Error("expected retryable")
	}
}

func TestSampleProducts(t *testing.T) {
	products := SampleProducts()
	if len(products) != 3 {
		t.Fatalf("expected 3 sample products, got %d", len(products))
	}
	for _, p := range products {
		if p.Name == "" || p.URL == "" {
			t.Errorf("sample product incomplete: %+v", p)
		}
		if !p.HasPrice() || !p.HasRating() {
			t.Errorf("sample product missing price or rating: %s", p.Name)
		}
		if len(p.Reviews) == 0 {
			t.Errorf("sample product has no reviews: %s", p.Name)
		}
	}
}

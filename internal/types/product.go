package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Review is a single customer review snippet scraped from a detail page.
type Review struct {
	// Text is the review body.
	Text string `json:"text"`

	// Score is the star score attached to the review, 0 if unknown.
	Score float64 `json:"score,omitempty"`

	// Sentiment is the compound sentiment in [-1, 1], filled in by analysis.
	Sentiment float64 `json:"sentiment,omitempty"`
}

// Product is a single scraped product record.
type Product struct {
	// Name is the product title as shown on the detail page.
	Name string `json:"name"`

	// Brand is derived from the product name during cleaning.
	Brand string `json:"brand,omitempty"`

	// Price is the customer price in the site currency, 0 when unknown.
	Price float64 `json:"price,omitempty"`

	// Rating is the average star rating on a 0-5 scale, 0 when unknown.
	Rating float64 `json:"rating,omitempty"`

	// ReviewsCount is the total review count reported by the site.
	ReviewsCount int `json:"reviews_count,omitempty"`

	// URL is the product detail page URL.
	URL string `json:"url"`

	// Specs holds the specification table as key-value pairs.
	Specs map[string]string `json:"specs,omitempty"`

	// Reviews are the review snippets found on the detail page.
	Reviews []Review `json:"reviews,omitempty"`

	// ScrapedAt is when this record was extracted.
	ScrapedAt time.Time `json:"scraped_at,omitempty"`
}

// NewProduct creates an empty product record for a detail URL.
func NewProduct(url string) *Product {
	return &Product{
		URL:       url,
		Specs:     make(map[string]string),
		ScrapedAt: time.Now(),
	}
}

// HasPrice reports whether a usable price was extracted.
func (p *Product) HasPrice() bool { return p.Price > 0 }

// HasRating reports whether a usable rating was extracted.
func (p *Product) HasRating() bool { return p.Rating > 0 }

// ToJSON serializes the product to JSON bytes.
func (p *Product) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// ToFlatMap returns a flat map suitable for CSV export.
func (p *Product) ToFlatMap() map[string]string {
	flat := map[string]string{
		"name":          p.Name,
		"brand":         p.Brand,
		"price":         formatFloat(p.Price),
		"rating":        formatFloat(p.Rating),
		"reviews_count": formatInt(p.ReviewsCount),
		"url":           p.URL,
	}
	if len(p.Specs) > 0 {
		b, _ := json.Marshal(p.Specs)
		flat["specs"] = string(b)
	}
	return flat
}

// Clone creates a deep copy of the product.
func (p *Product) Clone() *Product {
	clone := *p
	clone.Specs = make(map[string]string, len(p.Specs))
	for k, v := range p.Specs {
		clone.Specs[k] = v
	}
	clone.Reviews = append([]Review(nil), p.Reviews...)
	return &clone
}

// ReviewText joins all review bodies into one blob for word analysis.
func (p *Product) ReviewText() string {
	parts := make([]string, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		if r.Text != "" {
			parts = append(parts, r.Text)
		}
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	b, _ := json.Marshal(f)
	return string(b)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	b, _ := json.Marshal(n)
	return string(b)
}

package pipeline

import (
	"strings"
	"sync"

	"github.com/shopscope/shopscope/internal/types"
)

// TrimMiddleware normalizes whitespace in the string fields.
type TrimMiddleware struct{}

func (m *TrimMiddleware) Name() string { return "trim" }

func (m *TrimMiddleware) Process(p *types.Product) (*types.Product, error) {
	p.Name = collapseSpaces(p.Name)
	p.URL = strings.TrimSpace(p.URL)
	for k, v := range p.Specs {
		p.Specs[k] = collapseSpaces(v)
	}
	for i := range p.Reviews {
		p.Reviews[i].Text = collapseSpaces(p.Reviews[i].Text)
	}
	return p, nil
}

// RequiredFieldsMiddleware drops records missing a name or URL.
type RequiredFieldsMiddleware struct{}

func (m *RequiredFieldsMiddleware) Name() string { return "required_fields" }

func (m *RequiredFieldsMiddleware) Process(p *types.Product) (*types.Product, error) {
	if p.Name == "" || p.URL == "" {
		return nil, nil // Drop record
	}
	return p, nil
}

// DedupMiddleware drops records whose URL was already seen.
type DedupMiddleware struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewDedupMiddleware() *DedupMiddleware {
	return &DedupMiddleware{seen: make(map[string]struct{})}
}

func (m *DedupMiddleware) Name() string { return "dedup" }

func (m *DedupMiddleware) Process(p *types.Product) (*types.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.seen[p.URL]; dup {
		return nil, nil // Drop duplicate
	}
	m.seen[p.URL] = struct{}{}
	return p, nil
}

// BrandMiddleware derives the brand from the product name. A known
// brand list wins over the first-token fallback so that names like
// "HP - Envy 15" and "Envy 15 by HP" resolve identically.
type BrandMiddleware struct {
	known []string
}

func NewBrandMiddleware(known []string) *BrandMiddleware {
	return &BrandMiddleware{known: known}
}

func (m *BrandMiddleware) Name() string { return "brand" }

func (m *BrandMiddleware) Process(p *types.Product) (*types.Product, error) {
	if p.Brand != "" {
		return p, nil
	}
	lower := strings.ToLower(p.Name)
	for _, b := range m.known {
		if strings.Contains(lower, strings.ToLower(b)) {
			p.Brand = b
			return p, nil
		}
	}
	if fields := strings.Fields(p.Name); len(fields) > 0 {
		p.Brand = strings.Trim(fields[0], "-–")
	}
	return p, nil
}

// RatingClampMiddleware forces ratings and review scores into [0, 5].
type RatingClampMiddleware struct{}

func (m *RatingClampMiddleware) Name() string { return "rating_clamp" }

func (m *RatingClampMiddleware) Process(p *types.Product) (*types.Product, error) {
	p.Rating = clamp(p.Rating, 0, 5)
	for i := range p.Reviews {
		p.Reviews[i].Score = clamp(p.Reviews[i].Score, 0, 5)
	}
	return p, nil
}

// ReviewFilterMiddleware removes empty review snippets and keeps the
// reported review count consistent with what was actually extracted.
type ReviewFilterMiddleware struct{}

func (m *ReviewFilterMiddleware) Name() string { return "review_filter" }

func (m *ReviewFilterMiddleware) Process(p *types.Product) (*types.Product, error) {
	kept := p.Reviews[:0]
	for _, r := range p.Reviews {
		if strings.TrimSpace(r.Text) != "" {
			kept = append(kept, r)
		}
	}
	p.Reviews = kept
	if p.ReviewsCount < len(p.Reviews) {
		p.ReviewsCount = len(p.Reviews)
	}
	return p, nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

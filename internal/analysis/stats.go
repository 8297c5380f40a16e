package analysis

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/shopscope/shopscope/internal/types"
)

// RatedProduct is one entry of the top-rated leaderboard.
type RatedProduct struct {
	Name   string  `json:"name"`
	Brand  string  `json:"brand"`
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
}

// BrandCount is a brand with its product count, sorted descending.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// Summary is the aggregate statistics snapshot consumed by the PDF,
// the static dashboard and the live dashboard.
type Summary struct {
	Products int `json:"products"`

	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	StdDevPrice float64 `json:"stddev_price"`
	P90Price    float64 `json:"p90_price"`

	AvgRating float64 `json:"avg_rating"`

	Reviews       int     `json:"reviews"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	PositiveShare float64 `json:"positive_share"`
	NegativeShare float64 `json:"negative_share"`

	Brands   []BrandCount   `json:"brands"`
	TopRated []RatedProduct `json:"top_rated"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Summarize computes descriptive statistics over the cleaned records.
// Zero prices/ratings are treated as missing, not as data.
func Summarize(products []*types.Product, topRated int) *Summary {
	s := &Summary{
		Products:    len(products),
		GeneratedAt: time.Now(),
	}

	var prices, ratings, sentiments []float64
	brandCounts := make(map[string]int)
	var rated []*types.Product

	for _, p := range products {
		if p.HasPrice() {
			prices = append(prices, p.Price)
		}
		if p.HasRating() {
			ratings = append(ratings, p.Rating)
			rated = append(rated, p)
		}
		if p.Brand != "" {
			brandCounts[p.Brand]++
		}
		for _, r := range p.Reviews {
			s.Reviews++
			sentiments = append(sentiments, r.Sentiment)
		}
	}

	if len(prices) > 0 {
		s.AvgPrice, _ = stats.Mean(prices)
		s.MedianPrice, _ = stats.Median(prices)
		s.MinPrice, _ = stats.Min(prices)
		s.MaxPrice, _ = stats.Max(prices)
		s.StdDevPrice, _ = stats.StandardDeviation(prices)
		s.P90Price, _ = stats.Percentile(prices, 90)
	}
	if len(ratings) > 0 {
		s.AvgRating, _ = stats.Mean(ratings)
	}
	if len(sentiments) > 0 {
		s.AvgSentiment, _ = stats.Mean(sentiments)
		var pos, neg int
		for _, v := range sentiments {
			// VADER convention: compound beyond ±0.05 is polar
			switch {
			case v >= 0.05:
				pos++
			case v <= -0.05:
				neg++
			}
		}
		s.PositiveShare = float64(pos) / float64(len(sentiments))
		s.NegativeShare = float64(neg) / float64(len(sentiments))
	}

	for brand, count := range brandCounts {
		s.Brands = append(s.Brands, BrandCount{Brand: brand, Count: count})
	}
	sort.Slice(s.Brands, func(i, j int) bool {
		if s.Brands[i].Count != s.Brands[j].Count {
			return s.Brands[i].Count > s.Brands[j].Count
		}
		return s.Brands[i].Brand < s.Brands[j].Brand
	})

	sort.Slice(rated, func(i, j int) bool { return rated[i].Rating > rated[j].Rating })
	if len(rated) > topRated {
		rated = rated[:topRated]
	}
	for _, p := range rated {
		s.TopRated = append(s.TopRated, RatedProduct{
			Name:   p.Name,
			Brand:  p.Brand,
			Price:  p.Price,
			Rating: p.Rating,
		})
	}

	return s
}

// Bucket is one histogram bar.
type Bucket struct {
	Low   float64
	High  float64
	Count int
}

// Histogram bins values into equal-width buckets over [min, max].
func Histogram(values []float64, bins int) []Bucket {
	if len(values) == 0 || bins < 1 {
		return nil
	}

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	if min == max {
		return []Bucket{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	buckets := make([]Bucket, bins)
	for i := range buckets {
		buckets[i].Low = min + float64(i)*width
		buckets[i].High = buckets[i].Low + width
	}

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1 // max value lands in the last bucket
		}
		buckets[idx].Count++
	}
	return buckets
}

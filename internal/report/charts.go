package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/types"
)

// renderPriceHistogram renders the price distribution as a PNG bar
// chart. Returns nil bytes when there is not enough data to plot.
func (r *Renderer) renderPriceHistogram(products []*types.Product) ([]byte, error) {
	var prices []float64
	for _, p := range products {
		if p.HasPrice() {
			prices = append(prices, p.Price)
		}
	}

	buckets := analysis.Histogram(prices, r.cfg.Analysis.HistogramBins)
	if len(buckets) < 2 {
		return nil, nil
	}

	bars := make([]chart.Value, len(buckets))
	for i, b := range buckets {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("$%.0f", b.Low),
			Value: float64(b.Count),
		}
	}

	graph := chart.BarChart{
		Title:    "Price Distribution",
		Width:    900,
		Height:   450,
		BarWidth: 24,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render price histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// renderRatingVsPrice renders the (price, rating) scatter as a PNG.
// Returns nil bytes when fewer than two pairs exist.
func (r *Renderer) renderRatingVsPrice(products []*types.Product) ([]byte, error) {
	var xs, ys []float64
	for _, p := range products {
		if p.HasPrice() && p.HasRating() {
			xs = append(xs, p.Price)
			ys = append(ys, p.Rating)
		}
	}
	if len(xs) < 2 {
		return nil, nil
	}

	graph := chart.Chart{
		Title:  "Rating vs Price",
		Width:  900,
		Height: 450,
		XAxis:  chart.XAxis{Name: "Price (USD)"},
		YAxis:  chart.YAxis{Name: "Rating"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render rating scatter: %w", err)
	}
	return buf.Bytes(), nil
}

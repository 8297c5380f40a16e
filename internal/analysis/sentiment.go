package analysis

import (
	"log/slog"

	"github.com/jonreiter/govader"

	"github.com/shopscope/shopscope/internal/observability"
	"github.com/shopscope/shopscope/internal/types"
)

// Scorer assigns VADER compound sentiment to review text.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewScorer creates a sentiment scorer.
func NewScorer(metrics *observability.Metrics, logger *slog.Logger) *Scorer {
	return &Scorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		metrics:  metrics,
		logger:   logger.With("component", "sentiment"),
	}
}

// ScoreProducts fills in the Sentiment field of every review in
// place and returns the number of reviews scored.
func (s *Scorer) ScoreProducts(products []*types.Product) int {
	scored := 0
	for _, p := range products {
		for i := range p.Reviews {
			if p.Reviews[i].Text == "" {
				continue
			}
			p.Reviews[i].Sentiment = s.Score(p.Reviews[i].Text)
			scored++
		}
	}
	if s.metrics != nil {
		s.metrics.ReviewsScored.Add(int64(scored))
	}
	s.logger.Info("reviews scored", "count", scored)
	return scored
}

// Score returns the compound sentiment in [-1, 1] for one text.
func (s *Scorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

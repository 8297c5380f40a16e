package pipeline

import (
	"log/slog"

	"github.com/shopscope/shopscope/internal/types"
)

// Middleware processes a product and returns the (possibly modified)
// record. Return nil to drop the record from the pipeline.
type Middleware interface {
	// Name returns the middleware's identifier.
	Name() string

	// Process transforms a product. Return nil to drop it.
	Process(p *types.Product) (*types.Product, error)
}

// Pipeline chains cleaning middleware together.
type Pipeline struct {
	middlewares []Middleware
	logger      *slog.Logger
	dropped     int
}

// New creates a new Pipeline.
func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With("component", "pipeline"),
	}
}

// Use adds a middleware to the pipeline chain.
func (p *Pipeline) Use(mw Middleware) {
	p.middlewares = append(p.middlewares, mw)
	p.logger.Debug("middleware added", "name", mw.Name(), "position", len(p.middlewares))
}

// Process runs one product through all middleware in order.
func (p *Pipeline) Process(product *types.Product) (*types.Product, error) {
	current := product

	for _, mw := range p.middlewares {
		result, err := mw.Process(current)
		if err != nil {
			return nil, &types.PipelineError{Stage: mw.Name(), Err: err}
		}
		if result == nil {
			p.dropped++
			p.logger.Debug("product dropped", "stage", mw.Name(), "url", product.URL)
			return nil, nil
		}
		current = result
	}

	return current, nil
}

// ProcessAll runs a batch through the pipeline, discarding drops.
func (p *Pipeline) ProcessAll(products []*types.Product) ([]*types.Product, error) {
	kept := make([]*types.Product, 0, len(products))
	for _, product := range products {
		result, err := p.Process(product)
		if err != nil {
			return nil, err
		}
		if result != nil {
			kept = append(kept, result)
		}
	}
	if dropped := len(products) - len(kept); dropped > 0 {
		p.logger.Info("pipeline filtered records", "in", len(products), "kept", len(kept), "dropped", dropped)
	}
	return kept, nil
}

// Dropped returns how many records the pipeline has discarded.
func (p *Pipeline) Dropped() int { return p.dropped }

// Len returns the number of middleware in the chain.
func (p *Pipeline) Len() int { return len(p.middlewares) }

// Default builds the standard cleaning chain applied to scraped
// records before analysis.
func Default(logger *slog.Logger, knownBrands []string) *Pipeline {
	p := New(logger)
	p.Use(&TrimMiddleware{})
	p.Use(&RequiredFieldsMiddleware{})
	p.Use(NewDedupMiddleware())
	p.Use(NewBrandMiddleware(knownBrands))
	p.Use(&RatingClampMiddleware{})
	p.Use(&ReviewFilterMiddleware{})
	return p
}

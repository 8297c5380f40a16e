package scraper

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/fetcher"
	"github.com/shopscope/shopscope/internal/observability"
	"github.com/shopscope/shopscope/internal/pipeline"
	"github.com/shopscope/shopscope/internal/types"
)

// Scraper walks the filtered category listing, harvests detail URLs
// and enriches them into full product records.
type Scraper struct {
	cfg     *config.Config
	fetch   fetcher.Fetcher
	pipe    *pipeline.Pipeline
	metrics *observability.Metrics
	logger  *slog.Logger
}

// New creates a Scraper.
func New(cfg *config.Config, f fetcher.Fetcher, pipe *pipeline.Pipeline, metrics *observability.Metrics, logger *slog.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetch:   f,
		pipe:    pipe,
		metrics: metrics,
		logger:  logger.With("component", "scraper"),
	}
}

// Run executes the full scrape: listing traversal, detail enrichment
// and pipeline cleaning. The returned records are ready for analysis.
func (s *Scraper) Run(ctx context.Context) ([]*types.Product, error) {
	urls, err := s.CollectListingURLs(ctx)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, types.ErrNoProducts
	}

	s.logger.Info("fetching detail pages", "count", len(urls))
	products := s.EnrichDetails(ctx, urls)
	if len(products) == 0 {
		return nil, types.ErrNoProducts
	}

	return s.pipe.ProcessAll(products)
}

// CollectListingURLs walks paginated result pages and returns the
// harvested detail URLs, capped by max_pages / max_products.
func (s *Scraper) CollectListingURLs(ctx context.Context) ([]string, error) {
	all := make(map[string]bool)
	totalHint := 0

	for page := 1; page <= s.cfg.Scraper.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageURL, err := BuildListingURL(s.cfg.Scraper, s.cfg.Filters, page)
		if err != nil {
			return nil, err
		}

		resp, err := s.fetchWithRetry(ctx, pageURL, "listing")
		if err != nil {
			if page == 1 {
				return nil, err
			}
			s.logger.Warn("listing page failed, stopping pagination", "page", page, "error", err)
			break
		}

		doc, err := resp.Document()
		if err != nil {
			return nil, &types.ParseError{URL: pageURL, Err: err}
		}

		parsed := ParseListing(doc, resp.FinalURL)
		if parsed.TotalHint > 0 && totalHint == 0 {
			totalHint = parsed.TotalHint
			s.logger.Info("results hint", "total", totalHint)
		}

		before := len(all)
		for _, u := range parsed.ProductURLs {
			all[u] = true
		}
		s.logger.Info("listing page harvested",
			"page", page,
			"new", len(all)-before,
			"total", len(all),
		)

		if len(all) == before {
			break // page added nothing, pagination exhausted
		}
		if len(all) >= s.cfg.Scraper.MaxProducts {
			s.logger.Info("capping at max_products", "max", s.cfg.Scraper.MaxProducts)
			break
		}
		if totalHint > 0 && len(all) >= totalHint {
			break
		}
	}

	urls := make([]string, 0, len(all))
	for u := range all {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	if len(urls) > s.cfg.Scraper.MaxProducts {
		urls = urls[:s.cfg.Scraper.MaxProducts]
	}
	return urls, nil
}

// EnrichDetails fetches every detail page through a bounded worker
// pool. A semaphore keeps the number of simultaneous browser pages
// below max_parallel_browsers. Failed or off-category pages are
// skipped, not fatal.
func (s *Scraper) EnrichDetails(ctx context.Context, urls []string) []*types.Product {
	workers := s.cfg.Scraper.Concurrency
	if workers > len(urls) {
		workers = len(urls)
	}

	jobs := make(chan string)
	gate := make(chan struct{}, s.cfg.Scraper.MaxParallelBrowsers)

	var mu sync.Mutex
	var products []*types.Product

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				s.metrics.ActiveWorkers.Add(1)
				p := s.fetchDetail(ctx, u, gate)
				s.metrics.ActiveWorkers.Add(-1)
				if p != nil {
					mu.Lock()
					products = append(products, p)
					mu.Unlock()
				}
				s.rateLimit()
			}
		}()
	}

feed:
	for _, u := range urls {
		select {
		case jobs <- u:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	skipped := len(urls) - len(products)
	if skipped > 0 {
		s.logger.Info("filtered out failed or off-category detail pages", "skipped", skipped)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].URL < products[j].URL })
	return products
}

// fetchDetail retrieves and parses one detail page. Returns nil when
// the page failed or is not a laptop.
func (s *Scraper) fetchDetail(ctx context.Context, url string, gate chan struct{}) *types.Product {
	gate <- struct{}{}
	defer func() { <-gate }()

	resp, err := s.fetchWithRetry(ctx, url, "detail")
	if err != nil {
		s.logger.Error("detail fetch failed", "url", url, "error", err)
		s.metrics.ProductsSkipped.Add(1)
		return nil
	}
	s.metrics.BytesDownloaded.Add(int64(len(resp.Body)))

	p, err := ParseDetail(resp)
	if err != nil {
		s.logger.Error("detail parse failed", "url", url, "error", err)
		s.metrics.ProductsSkipped.Add(1)
		return nil
	}
	if p == nil {
		s.logger.Warn("off-category detail page skipped", "url", url)
		s.metrics.ProductsSkipped.Add(1)
		return nil
	}

	s.metrics.ProductsScraped.Add(1)
	s.metrics.ReviewsCollected.Add(int64(len(p.Reviews)))
	return p
}

// fetchWithRetry retries retryable fetch errors with a fixed delay,
// honoring any Retry-After hint.
func (s *Scraper) fetchWithRetry(ctx context.Context, url, tag string) (*types.Response, error) {
	req, err := types.NewRequest(url)
	if err != nil {
		return nil, err
	}
	req.Tag = tag
	req.MaxRetries = s.cfg.Scraper.MaxRetries

	var lastErr error
	for attempt := 0; attempt <= req.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.cfg.Scraper.RetryDelay
			var fe *types.FetchError
			if errors.As(lastErr, &fe) && fe.RetryAfter > delay {
				delay = fe.RetryAfter
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			s.metrics.PagesRetried.Add(1)
		}

		s.metrics.PagesFetched.Add(1)
		resp, err := s.fetch.Fetch(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		s.metrics.PagesFailed.Add(1)

		var fe *types.FetchError
		if !errors.As(err, &fe) || !fe.IsRetryable() {
			return nil, err
		}
		req.RetryCount++
	}

	return nil, errors.Join(types.ErrMaxRetries, lastErr)
}

// rateLimit sleeps a random duration inside the configured window.
func (s *Scraper) rateLimit() {
	min, max := s.cfg.Scraper.RateLimitMin, s.cfg.Scraper.RateLimitMax
	if max <= 0 {
		return
	}
	d := min + time.Duration(rand.Int63n(int64(max-min)+1))
	time.Sleep(d)
}

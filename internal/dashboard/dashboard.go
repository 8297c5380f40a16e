package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/observability"
	"github.com/shopscope/shopscope/internal/types"
)

// Dashboard serves the live analysis dashboard over the most recent
// dataset, plus JSON APIs and the metrics endpoint.
type Dashboard struct {
	cfg      *config.Config
	products []*types.Product
	summary  *analysis.Summary
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// New creates a dashboard server over an already-analyzed dataset.
func New(cfg *config.Config, products []*types.Product, summary *analysis.Summary, metrics *observability.Metrics, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		cfg:      cfg,
		products: products,
		summary:  summary,
		metrics:  metrics,
		logger:   logger.With("component", "dashboard"),
	}
}

// Start serves until the context is canceled.
func (d *Dashboard) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", d.handleIndex)
	mux.HandleFunc("/api/stats", d.handleAPIStats)
	mux.HandleFunc("/api/products", d.handleAPIProducts)
	if d.cfg.Metrics.Enabled && d.metrics != nil {
		mux.Handle(d.cfg.Metrics.Path, d.metrics)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", d.cfg.Dashboard.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("dashboard starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d.logger.Info("dashboard shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (d *Dashboard) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(dashboardHTML))
}

func (d *Dashboard) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
		"summary":   d.summary,
	}
	if d.metrics != nil {
		stats["metrics"] = d.metrics.Snapshot()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(stats)
}

func (d *Dashboard) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(d.products)
}

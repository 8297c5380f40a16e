package report

import (
	"log/slog"
	"os"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/types"
)

// Renderer writes every report artifact under the reports directory.
type Renderer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(cfg *config.Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		cfg:    cfg,
		logger: logger.With("component", "report"),
	}
}

// RenderAll produces the workbook, PDF, word cloud and static
// dashboard from one analysis pass.
func (r *Renderer) RenderAll(products []*types.Product, frames analysis.Frames, summary *analysis.Summary) error {
	if err := os.MkdirAll(r.cfg.Report.ReportsDir, 0o755); err != nil {
		return &types.ReportError{Artifact: "reports dir", Path: r.cfg.Report.ReportsDir, Err: err}
	}

	if err := r.WriteWorkbook(frames, products, r.cfg.Report.ExcelPath()); err != nil {
		return err
	}
	r.logger.Info("workbook written", "path", r.cfg.Report.ExcelPath())

	if err := r.WritePDF(products, summary, r.cfg.Report.PDFPath()); err != nil {
		return err
	}
	r.logger.Info("PDF written", "path", r.cfg.Report.PDFPath())

	freq := analysis.WordFrequencies(products, r.cfg.Analysis.ExtraStopwords)
	if err := r.WriteWordcloud(freq, r.cfg.Report.WordcloudPath()); err != nil {
		return err
	}
	r.logger.Info("word cloud written", "path", r.cfg.Report.WordcloudPath())

	if err := r.WriteStaticDashboard(summary, freq, r.cfg.Report.DashboardPath()); err != nil {
		return err
	}
	r.logger.Info("static dashboard written", "path", r.cfg.Report.DashboardPath())

	return nil
}

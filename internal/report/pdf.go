package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/types"
)

// WritePDF writes the two-page report: an executive summary page and a
// visualization page with the price histogram and rating scatter.
func (r *Renderer) WritePDF(products []*types.Product, summary *analysis.Summary, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Commerce Analysis Report", false)

	r.writeSummaryPage(pdf, summary)
	if err := r.writeChartsPage(pdf, products); err != nil {
		return &types.ReportError{Artifact: "pdf", Path: path, Err: err}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return &types.ReportError{Artifact: "pdf", Path: path, Err: err}
	}
	return nil
}

func (r *Renderer) writeSummaryPage(pdf *fpdf.Fpdf, s *analysis.Summary) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "E-Commerce Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+s.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	kpi := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(70, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	kpi("Products analyzed", fmt.Sprintf("%d", s.Products))
	kpi("Average price", fmt.Sprintf("$%.2f", s.AvgPrice))
	kpi("Median price", fmt.Sprintf("$%.2f", s.MedianPrice))
	kpi("Price range", fmt.Sprintf("$%.2f - $%.2f", s.MinPrice, s.MaxPrice))
	kpi("Price std deviation", fmt.Sprintf("$%.2f", s.StdDevPrice))
	kpi("90th percentile price", fmt.Sprintf("$%.2f", s.P90Price))
	kpi("Average rating", fmt.Sprintf("%.2f / 5", s.AvgRating))
	kpi("Reviews collected", fmt.Sprintf("%d", s.Reviews))
	kpi("Average sentiment", fmt.Sprintf("%.3f", s.AvgSentiment))
	kpi("Positive reviews", fmt.Sprintf("%.0f%%", s.PositiveShare*100))
	kpi("Negative reviews", fmt.Sprintf("%.0f%%", s.NegativeShare*100))
	pdf.Ln(6)

	if len(s.Brands) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, "Products by Brand", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, b := range s.Brands {
			pdf.CellFormat(0, 7, fmt.Sprintf("%s: %d", b.Brand, b.Count), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(s.TopRated) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, "Top Rated Products", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for i, p := range s.TopRated {
			line := fmt.Sprintf("%d. %s (%.1f stars, $%.2f)", i+1, p.Name, p.Rating, p.Price)
			pdf.MultiCell(0, 6, line, "", "L", false)
		}
	}
}

func (r *Renderer) writeChartsPage(pdf *fpdf.Fpdf, products []*types.Product) error {
	hist, err := r.renderPriceHistogram(products)
	if err != nil {
		return err
	}
	scatter, err := r.renderRatingVsPrice(products)
	if err != nil {
		return err
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Visualizations", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if hist == nil && scatter == nil {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, "No price data", "", 1, "C", false, 0, "")
		return nil
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if hist != nil {
		pdf.RegisterImageOptionsReader("price_histogram", opts, bytes.NewReader(hist))
		pdf.ImageOptions("price_histogram", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
		pdf.Ln(6)
	}
	if scatter != nil {
		pdf.RegisterImageOptionsReader("rating_scatter", opts, bytes.NewReader(scatter))
		pdf.ImageOptions("rating_scatter", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	}
	return nil
}

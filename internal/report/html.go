package report

import (
	"html/template"
	"os"

	"github.com/shopscope/shopscope/internal/analysis"
	"github.com/shopscope/shopscope/internal/types"
)

// WriteStaticDashboard renders a self-contained HTML page with the KPI
// cards, brand breakdown, top-rated list and top words. It needs no
// server: the page links the word cloud image sitting next to it.
func (r *Renderer) WriteStaticDashboard(summary *analysis.Summary, freq map[string]int, path string) error {
	top := analysis.TopWords(freq, 25)

	data := struct {
		Summary   *analysis.Summary
		TopWords  []analysis.WordCount
		Wordcloud string
	}{
		Summary:   summary,
		TopWords:  top,
		Wordcloud: r.cfg.Report.WordcloudFile,
	}

	f, err := os.Create(path)
	if err != nil {
		return &types.ReportError{Artifact: "dashboard", Path: path, Err: err}
	}
	defer f.Close()

	if err := staticDashboardTmpl.Execute(f, data); err != nil {
		return &types.ReportError{Artifact: "dashboard", Path: path, Err: err}
	}
	return nil
}

var staticDashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"pct": func(v float64) float64 { return v * 100 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ShopScope Analysis</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Inter', -apple-system, system-ui, sans-serif; background: #0f172a; color: #e2e8f0; min-height: 100vh; }
        .header { background: linear-gradient(135deg, #1e293b, #334155); padding: 1.5rem 2rem; border-bottom: 1px solid #475569; display: flex; justify-content: space-between; align-items: center; }
        .header h1 { font-size: 1.5rem; background: linear-gradient(135deg, #38bdf8, #818cf8); background-clip: text; -webkit-background-clip: text; -webkit-text-fill-color: transparent; }
        .header .stamp { font-size: 0.875rem; color: #94a3b8; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 1rem; padding: 2rem; }
        .card { background: #1e293b; border: 1px solid #334155; border-radius: 12px; padding: 1.5rem; }
        .card .label { font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.05em; color: #94a3b8; margin-bottom: 0.5rem; }
        .card .value { font-size: 2rem; font-weight: 700; color: #f1f5f9; }
        .card.accent { border-color: #38bdf8; }
        .card.accent .value { color: #38bdf8; }
        .card.success { border-color: #4ade80; }
        .card.success .value { color: #4ade80; }
        .card.warning { border-color: #fbbf24; }
        .card.warning .value { color: #fbbf24; }
        .section { padding: 0 2rem 2rem; }
        .section h2 { font-size: 1.1rem; margin-bottom: 1rem; color: #cbd5e1; }
        table { width: 100%; border-collapse: collapse; background: #1e293b; border-radius: 12px; overflow: hidden; }
        th, td { padding: 0.6rem 1rem; text-align: left; border-bottom: 1px solid #334155; }
        th { font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.05em; color: #94a3b8; }
        .words span { display: inline-block; background: #1e293b; border: 1px solid #334155; border-radius: 9999px; padding: 0.3rem 0.8rem; margin: 0.2rem; font-size: 0.875rem; }
        .cloud img { max-width: 100%; border-radius: 12px; border: 1px solid #334155; }
        .footer { text-align: center; padding: 1rem; color: #475569; font-size: 0.75rem; }
    </style>
</head>
<body>
    <div class="header">
        <h1>ShopScope Analysis</h1>
        <span class="stamp">Generated {{.Summary.GeneratedAt.Format "2006-01-02 15:04"}}</span>
    </div>
    <div class="grid">
        <div class="card accent"><div class="label">Products</div><div class="value">{{.Summary.Products}}</div></div>
        <div class="card"><div class="label">Average Price</div><div class="value">${{printf "%.2f" .Summary.AvgPrice}}</div></div>
        <div class="card"><div class="label">Median Price</div><div class="value">${{printf "%.2f" .Summary.MedianPrice}}</div></div>
        <div class="card success"><div class="label">Average Rating</div><div class="value">{{printf "%.2f" .Summary.AvgRating}}</div></div>
        <div class="card accent"><div class="label">Reviews</div><div class="value">{{.Summary.Reviews}}</div></div>
        <div class="card warning"><div class="label">Avg Sentiment</div><div class="value">{{printf "%.3f" .Summary.AvgSentiment}}</div></div>
        <div class="card success"><div class="label">Positive Reviews</div><div class="value">{{printf "%.0f%%" (pct .Summary.PositiveShare)}}</div></div>
    </div>
    <div class="section">
        <h2>Products by Brand</h2>
        <table>
            <tr><th>Brand</th><th>Products</th></tr>
            {{range .Summary.Brands}}<tr><td>{{.Brand}}</td><td>{{.Count}}</td></tr>
            {{end}}
        </table>
    </div>
    <div class="section">
        <h2>Top Rated</h2>
        <table>
            <tr><th>Product</th><th>Brand</th><th>Price</th><th>Rating</th></tr>
            {{range .Summary.TopRated}}<tr><td>{{.Name}}</td><td>{{.Brand}}</td><td>${{printf "%.2f" .Price}}</td><td>{{printf "%.1f" .Rating}}</td></tr>
            {{end}}
        </table>
    </div>
    <div class="section words">
        <h2>Frequent Review Words</h2>
        {{range .TopWords}}<span>{{.Word}} ({{.Count}})</span>{{end}}
    </div>
    <div class="section cloud">
        <h2>Word Cloud</h2>
        <img src="{{.Wordcloud}}" alt="word cloud">
    </div>
    <div class="footer">ShopScope — static report</div>
</body>
</html>`))

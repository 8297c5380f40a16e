package dashboard

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ShopScope Dashboard</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Inter', -apple-system, system-ui, sans-serif; background: #0f172a; color: #e2e8f0; min-height: 100vh; }
        .header { background: linear-gradient(135deg, #1e293b, #334155); padding: 1.5rem 2rem; border-bottom: 1px solid #475569; display: flex; justify-content: space-between; align-items: center; }
        .header h1 { font-size: 1.5rem; background: linear-gradient(135deg, #38bdf8, #818cf8); background-clip: text; -webkit-background-clip: text; -webkit-text-fill-color: transparent; }
        .header .stamp { font-size: 0.875rem; color: #94a3b8; }
        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 1rem; padding: 2rem; }
        .card { background: #1e293b; border: 1px solid #334155; border-radius: 12px; padding: 1.5rem; transition: transform 0.2s; }
        .card:hover { transform: translateY(-2px); }
        .card .label { font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.05em; color: #94a3b8; margin-bottom: 0.5rem; }
        .card .value { font-size: 2rem; font-weight: 700; color: #f1f5f9; }
        .card .sub { font-size: 0.875rem; color: #64748b; margin-top: 0.25rem; }
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
        .footer { text-align: center; padding: 1rem; color: #475569; font-size: 0.75rem; }
    </style>
</head>
<body>
    <div class="header">
        <h1>ShopScope Dashboard</h1>
        <span class="stamp" id="stamp"></span>
    </div>
    <div class="grid">
        <div class="card accent"><div class="label">Products</div><div class="value" id="products">0</div></div>
        <div class="card"><div class="label">Average Price</div><div class="value" id="avg_price">$0</div></div>
        <div class="card"><div class="label">Median Price</div><div class="value" id="median_price">$0</div></div>
        <div class="card success"><div class="label">Average Rating</div><div class="value" id="avg_rating">0</div></div>
        <div class="card accent"><div class="label">Reviews</div><div class="value" id="reviews">0</div></div>
        <div class="card warning"><div class="label">Avg Sentiment</div><div class="value" id="avg_sentiment">0</div></div>
        <div class="card success"><div class="label">Positive Reviews</div><div class="value" id="positive">0%</div></div>
        <div class="card"><div class="label">Pages Fetched</div><div class="value" id="pages_fetched">0</div><div class="sub" id="bytes_human"></div></div>
    </div>
    <div class="section">
        <h2>Top Rated</h2>
        <table id="top_rated">
            <tr><th>Product</th><th>Brand</th><th>Price</th><th>Rating</th></tr>
        </table>
    </div>
    <div class="section">
        <h2>Products by Brand</h2>
        <table id="brands">
            <tr><th>Brand</th><th>Products</th></tr>
        </table>
    </div>
    <div class="footer">ShopScope — auto-refreshes every 5s</div>
    <script>
        async function refresh() {
            try {
                const r = await fetch('/api/stats');
                const d = await r.json();
                document.getElementById('stamp').textContent = d.timestamp || '';
                const s = d.summary || {};
                document.getElementById('products').textContent = s.products || 0;
                document.getElementById('avg_price').textContent = '$' + (s.avg_price || 0).toFixed(2);
                document.getElementById('median_price').textContent = '$' + (s.median_price || 0).toFixed(2);
                document.getElementById('avg_rating').textContent = (s.avg_rating || 0).toFixed(2);
                document.getElementById('reviews').textContent = s.reviews || 0;
                document.getElementById('avg_sentiment').textContent = (s.avg_sentiment || 0).toFixed(3);
                document.getElementById('positive').textContent = ((s.positive_share || 0) * 100).toFixed(0) + '%';
                if (d.metrics) {
                    document.getElementById('pages_fetched').textContent = d.metrics.pages_fetched || 0;
                    document.getElementById('bytes_human').textContent = humanize(d.metrics.bytes_downloaded || 0);
                }
                fillTable('top_rated', '<tr><th>Product</th><th>Brand</th><th>Price</th><th>Rating</th></tr>',
                    (s.top_rated || []).map(p => '<tr><td>' + p.name + '</td><td>' + p.brand + '</td><td>$' + p.price.toFixed(2) + '</td><td>' + p.rating.toFixed(1) + '</td></tr>'));
                fillTable('brands', '<tr><th>Brand</th><th>Products</th></tr>',
                    (s.brands || []).map(b => '<tr><td>' + b.brand + '</td><td>' + b.count + '</td></tr>'));
            } catch(e) {}
        }
        function fillTable(id, head, rows) { document.getElementById(id).innerHTML = head + rows.join(''); }
        function humanize(b) { const u=['B','KB','MB','GB']; let i=0; while(b>=1024&&i<u.length-1){b/=1024;i++;} return b.toFixed(1)+' '+u[i]; }
        setInterval(refresh, 5000);
        refresh();
    </script>
</body>
</html>`

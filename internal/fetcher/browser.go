package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/shopscope/shopscope/internal/config"
	"github.com/shopscope/shopscope/internal/types"
)

// blockedResourcePatterns are heavy asset URLs never needed for
// field extraction. Blocking them keeps listing pages fast.
var blockedResourcePatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg",
	"*.woff", "*.woff2", "*.ttf", "*.otf",
	"*.mp4", "*.webm", "*.mov", "*.avi",
}

// overlaySelectors are dismissable popups that can sit on top of the
// results grid (cookie banners, sign-in sheets, country splash).
var overlaySelectors = []string{
	".country-selection .us-link",
	".c-close-icon.c-modal-close-icon",
	"button#lam-signin-close",
	"button[aria-label='Close']",
	"button[id*='cookie']",
	"button[aria-label*='Accept Cookies']",
}

// BrowserFetcher implements Fetcher using a headless browser via Rod.
type BrowserFetcher struct {
	browser  *rod.Browser
	cfg      *config.Config
	logger   *slog.Logger
	pagePool chan *rod.Page
	maxPages int
}

// NewBrowserFetcher launches a Chromium instance and connects to it.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	bf := &BrowserFetcher{
		cfg:      cfg,
		logger:   logger.With("component", "browser_fetcher"),
		maxPages: cfg.Scraper.MaxParallelBrowsers,
	}

	launchURL, err := bf.launchBrowser()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf.browser = browser
	bf.pagePool = make(chan *rod.Page, bf.maxPages)

	bf.logger.Info("browser fetcher ready",
		"max_pages", bf.maxPages,
		"headless", cfg.Fetcher.Headless,
	)

	return bf, nil
}

// launchBrowser starts Chromium with flags that keep automation
// markers hidden and pages cheap to load.
func (bf *BrowserFetcher) launchBrowser() (string, error) {
	l := launcher.New().
		Headless(bf.cfg.Fetcher.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("window-size", "1920,1080").
		Set("disable-blink-features", "AutomationControlled")

	if bf.cfg.Fetcher.ChromeBin != "" {
		l = l.Bin(bf.cfg.Fetcher.ChromeBin)
	}

	return l.Launch()
}

// Fetch navigates to a URL and returns the rendered page content.
func (bf *BrowserFetcher) Fetch(ctx context.Context, req *types.Request) (*types.Response, error) {
	start := time.Now()

	page, err := bf.getPage()
	if err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: err, Retryable: true}
	}
	defer bf.putPage(page)

	if ua := req.Headers.Get("User-Agent"); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}

	timeout := bf.cfg.Scraper.PageLoadTimeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	if err := page.Context(ctx).Timeout(timeout).Navigate(req.URLString()); err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: err, Retryable: true}
	}

	// Best-effort settle; heavy pages keep streaming assets, so a
	// stability timeout is not fatal.
	if err := page.Timeout(timeout).WaitStable(300 * time.Millisecond); err != nil {
		bf.logger.Warn("page stability timeout, continuing", "url", req.URLString(), "error", err)
	}

	bf.dismissOverlays(page)

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: err, Retryable: true}
	}

	finalURL := req.URLString()
	if info, err := page.Info(); err == nil && info != nil {
		finalURL = info.URL
	}

	duration := time.Since(start)
	resp := types.NewBrowserResponse(req, 200, []byte(html), finalURL, duration)

	bf.logger.Debug("browser fetch complete",
		"url", req.URLString(),
		"final_url", finalURL,
		"size", len(html),
		"duration", duration,
	)

	return resp, nil
}

// dismissOverlays clicks through any known popup sitting over the
// page. Failures are ignored; the overlay may simply not be there.
func (bf *BrowserFetcher) dismissOverlays(page *rod.Page) {
	for _, sel := range overlaySelectors {
		el, err := page.Timeout(2 * time.Second).Element(sel)
		if err != nil {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			continue
		}
		bf.logger.Debug("dismissed overlay", "selector", sel)
		time.Sleep(200 * time.Millisecond)
	}
}

// getPage takes a page from the pool or creates a new stealth page.
func (bf *BrowserFetcher) getPage() (*rod.Page, error) {
	select {
	case page := <-bf.pagePool:
		return page, nil
	default:
	}

	page, err := stealth.Page(bf.browser)
	if err != nil {
		return nil, fmt.Errorf("stealth page: %w", err)
	}

	if bf.cfg.Fetcher.BlockResources {
		if err := (proto.NetworkEnable{}).Call(page); err == nil {
			_ = (proto.NetworkSetBlockedURLs{Urls: blockedResourcePatterns}).Call(page)
		}
	}

	return page, nil
}

// putPage returns a page to the pool, closing it if the pool is full.
func (bf *BrowserFetcher) putPage(page *rod.Page) {
	select {
	case bf.pagePool <- page:
	default:
		_ = page.Close()
	}
}

// Close shuts down all pooled pages and the browser process.
func (bf *BrowserFetcher) Close() error {
	close(bf.pagePool)
	for page := range bf.pagePool {
		_ = page.Close()
	}
	if bf.browser != nil {
		return bf.browser.Close()
	}
	return nil
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string { return "browser" }

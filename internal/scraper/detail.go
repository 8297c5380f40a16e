package scraper

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/shopscope/shopscope/internal/types"
)

// laptopKeywords validate that a detail page belongs to the laptop
// category; matching is done on breadcrumbs first, then the title.
var laptopKeywords = []string{"laptop", "notebook", "macbook", "chromebook", "2-in-1", "computers"}

var (
	priceRe  = regexp.MustCompile(`[^0-9.,]`)
	numberRe = regexp.MustCompile(`\d+(\.\d+)?`)
)

var nameSelectors = []string{
	"[data-testid='heading'] h1",
	"[data-lu-target='product-title']",
	"h1",
}

var priceSelectors = []string{
	"[data-testid='price-block-customer-price'] span",
	"[data-lu-target='customer_price'] span",
	"[data-lu-target='customer_price']",
	".priceView-hero-price span",
}

var ratingSelectors = []string{
	"[data-testid='rating-stars']",
	"[aria-label*='rating']",
	"[data-lu-target='rating']",
}

var breadcrumbSelectors = []string{
	"[data-testid='breadcrumb']",
	"nav.breadcrumb",
	"ol[aria-label='breadcrumb']",
	".shop-breadcrumb",
}

// ParseDetail extracts a product record from a rendered detail page.
// Returns nil when the page does not belong to the laptop category.
func ParseDetail(resp *types.Response) (*types.Product, error) {
	doc, err := resp.Document()
	if err != nil {
		return nil, &types.ParseError{URL: resp.Request.URLString(), Err: err}
	}

	if !isLaptopPage(doc) {
		return nil, nil
	}

	p := types.NewProduct(resp.Request.URLString())
	p.Name = firstText(doc, nameSelectors)
	p.Price = ParsePrice(firstText(doc, priceSelectors))
	p.Rating = firstNumber(doc, ratingSelectors)

	p.Specs = parseSpecs(resp.Body)
	p.Reviews = parseReviews(doc)
	p.ReviewsCount = reviewsCount(doc, len(p.Reviews))

	return p, nil
}

// isLaptopPage checks breadcrumb/category cues, then the page title.
func isLaptopPage(doc *goquery.Document) bool {
	for _, sel := range breadcrumbSelectors {
		txt := strings.ToLower(doc.Find(sel).Text())
		if txt == "" {
			continue
		}
		for _, kw := range laptopKeywords {
			if strings.Contains(txt, kw) {
				return true
			}
		}
	}
	title := strings.ToLower(doc.Find("title").First().Text())
	for _, kw := range laptopKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// parseSpecs pulls the specification table out of the page. The spec
// markup is table-shaped with several historical variants, which XPath
// handles more directly than stacked CSS selectors.
func parseSpecs(body []byte) map[string]string {
	specs := make(map[string]string)

	root, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return specs
	}

	// Modern layout: div rows with title/value cells.
	for _, row := range htmlquery.Find(root, "//*[contains(@class,'specification-row')]") {
		k := nodeText(htmlquery.FindOne(row, ".//*[contains(@class,'row-title')]"))
		v := nodeText(htmlquery.FindOne(row, ".//*[contains(@class,'row-value')]"))
		if k != "" {
			specs[k] = v
		}
	}
	if len(specs) > 0 {
		return specs
	}

	// Legacy layout: plain th/td table rows.
	for _, row := range htmlquery.Find(root, "//table[contains(@class,'specs') or contains(@data-testid,'spec')]//tr") {
		k := nodeText(htmlquery.FindOne(row, ".//th"))
		v := nodeText(htmlquery.FindOne(row, ".//td"))
		if k != "" {
			specs[k] = v
		}
	}
	return specs
}

// parseReviews collects review snippets with their star scores.
func parseReviews(doc *goquery.Document) []types.Review {
	var reviews []types.Review

	doc.Find(".review, .ugc-review, [data-testid*='review']").Each(func(_ int, r *goquery.Selection) {
		text := strings.TrimSpace(r.Find(".pre-white-space, .review-text, [data-testid='review-text']").First().Text())
		if text == "" {
			return
		}
		var score float64
		scoreTxt := r.Find(".c-review-average, .rating, [data-testid='rating']").First().Text()
		if m := numberRe.FindString(scoreTxt); m != "" {
			score, _ = strconv.ParseFloat(m, 64)
		}
		reviews = append(reviews, types.Review{Text: text, Score: score})
	})

	return reviews
}

// reviewsCount prefers the site's reported total over the number of
// snippets actually present on the page.
func reviewsCount(doc *goquery.Document, extracted int) int {
	txt := doc.Find("[data-testid='review-count'], .c-reviews").First().Text()
	if m := regexp.MustCompile(`[\d,]+`).FindString(txt); m != "" {
		if n, err := strconv.Atoi(strings.ReplaceAll(m, ",", "")); err == nil && n >= extracted {
			return n
		}
	}
	return extracted
}

// ParsePrice strips currency decoration and parses the numeric value.
// Returns 0 when no usable number remains.
func ParsePrice(text string) float64 {
	cleaned := strings.ReplaceAll(priceRe.ReplaceAllString(text, ""), ",", "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// firstText returns the trimmed text of the first selector that
// matches a non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if txt := strings.TrimSpace(doc.Find(sel).First().Text()); txt != "" {
			return txt
		}
	}
	return ""
}

// firstNumber extracts the first float found in any matching selector.
func firstNumber(doc *goquery.Document, selectors []string) float64 {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		txt := node.Text()
		if txt == "" {
			txt, _ = node.Attr("aria-label")
		}
		if m := numberRe.FindString(txt); m != "" {
			v, err := strconv.ParseFloat(m, 64)
			if err == nil {
				return v
			}
		}
	}
	return 0
}

func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(htmlquery.InnerText(n)), " ")
}

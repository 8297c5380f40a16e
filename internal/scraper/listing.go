package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shopscope/shopscope/internal/config"
)

// productHrefRe matches detail-page links. Two shapes are in the
// wild: /product/<slug>/<sku> and the legacy /site/...?skuId=.
var productHrefRe = regexp.MustCompile(`(?i)(/product/[^/]+/[A-Z0-9]{6,}(\b|/)|/site/.+?/.*?/p\?skuId=\d+)`)

// resultsHintRe pulls the total count out of "Showing 1-24 of 202 results".
var resultsHintRe = regexp.MustCompile(`(?i)of\s+(\d[\d,]*)\s+results?`)

// excludedSectionTitles are cross-sell carousels that share card
// markup with the main grid but must not be harvested.
var excludedSectionTitles = []string{
	"popular laptops",
	"you recently viewed",
	"explore related products",
	"customers also viewed",
	"featured",
}

// resultContainerSelectors identify the main filtered results grid.
var resultContainerSelectors = []string{
	"[data-testid='list-results']",
	"ol.sku-item-list",
	"div.results-list",
	"[data-testid='sku-list']",
}

const cardSelector = "[data-testid='sku-item'], li.product-list-item"

// BuildListingURL composes the category URL with price, rating and
// brand facets applied as query parameters, plus the page number.
func BuildListingURL(scraper config.ScraperConfig, filters config.FilterConfig, page int) (string, error) {
	u, err := url.Parse(scraper.BaseURL + scraper.CategoryPath)
	if err != nil {
		return "", fmt.Errorf("category URL: %w", err)
	}

	q := u.Query()
	q.Set("intl", "nosplash")

	var facets []string
	if filters.PriceMax > 0 {
		facets = append(facets, fmt.Sprintf("currentprice_facet=Price~$%d - $%d", filters.PriceMin, filters.PriceMax))
	}
	if filters.MinRating > 0 {
		facets = append(facets, fmt.Sprintf("customerreviews_facet=Customer Rating~%d & Up", int(filters.MinRating)))
	}
	for _, b := range filters.Brands {
		facets = append(facets, "brand_facet=Brand~"+b)
	}
	if len(facets) > 0 {
		q.Set("qp", strings.Join(facets, "^"))
	}
	if page > 1 {
		q.Set("cp", strconv.Itoa(page))
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ListingPage is the parse result of one paginated results page.
type ListingPage struct {
	// ProductURLs are the detail links harvested from the main grid.
	ProductURLs []string

	// TotalHint is the site's reported result count, 0 if absent.
	TotalHint int
}

// ParseListing harvests detail URLs from the main results grid,
// skipping cross-sell sections.
func ParseListing(doc *goquery.Document, pageURL string) *ListingPage {
	out := &ListingPage{TotalHint: resultsCountHint(doc)}

	base, err := url.Parse(pageURL)
	if err != nil {
		return out
	}

	seen := make(map[string]bool)

	containers := mainResultContainers(doc)
	for _, cont := range containers {
		cont.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
			card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
				href, ok := a.Attr("href")
				if !ok {
					return true
				}
				href = strings.SplitN(strings.TrimSpace(href), "#", 2)[0]
				if href == "" || !productHrefRe.MatchString(href) {
					return true
				}
				abs, err := base.Parse(href)
				if err != nil || !strings.Contains(abs.Hostname(), base.Hostname()) {
					return true
				}
				s := abs.String()
				if !seen[s] {
					seen[s] = true
					out.ProductURLs = append(out.ProductURLs, s)
				}
				return false // one link per card is enough
			})
		})
	}

	return out
}

// mainResultContainers returns grid containers that do not belong to
// an excluded cross-sell section. Falls back to the whole document
// body when the known containers are missing (template drift).
func mainResultContainers(doc *goquery.Document) []*goquery.Selection {
	var finals []*goquery.Selection

	for _, sel := range resultContainerSelectors {
		doc.Find(sel).Each(func(_ int, cont *goquery.Selection) {
			if !inExcludedSection(cont) {
				finals = append(finals, cont)
			}
		})
	}

	if len(finals) == 0 {
		finals = append(finals, doc.Selection)
	}
	return finals
}

// inExcludedSection walks up a few ancestors looking for a heading
// that marks a cross-sell carousel. Only direct-child headings count:
// a deep Find would see headings of sibling sections.
func inExcludedSection(cont *goquery.Selection) bool {
	parent := cont
	for i := 0; i < 3; i++ {
		parent = parent.Parent()
		if parent.Length() == 0 {
			return false
		}
		heading := strings.ToLower(strings.TrimSpace(parent.ChildrenFiltered("h2, h3").First().Text()))
		if heading == "" {
			if aria, ok := parent.Attr("aria-label"); ok {
				heading = strings.ToLower(strings.TrimSpace(aria))
			}
		}
		if heading == "" {
			continue
		}
		for _, t := range excludedSectionTitles {
			if strings.Contains(heading, t) {
				return true
			}
		}
		return false
	}
	return false
}

// resultsCountHint parses the reported result total, 0 when absent.
func resultsCountHint(doc *goquery.Document) int {
	for _, sel := range []string{
		"[data-testid='results-summary']",
		"[data-testid='search-results-count']",
		".results-summary",
		"[data-testid='pagination-summary']",
	} {
		txt := strings.TrimSpace(doc.Find(sel).First().Text())
		if txt == "" {
			continue
		}
		m := resultsHintRe.FindStringSubmatch(txt)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil {
			return n
		}
	}
	return 0
}

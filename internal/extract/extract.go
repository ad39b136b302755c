// Package extract pulls title, seller and price out of rendered product
// page markup. Each field is resolved by an ordered list of independent
// strategies; the first one producing a non-empty value wins.
package extract

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/normalize"
)

// soldByRegex matches the visible "Sold and shipped by <a>Seller</a>"
// fragment. Markup-level because the seller name sits inside an
// arbitrary inline element with no stable selector.
var soldByRegex = regexp.MustCompile(`(?i)Sold\s+and\s+shipped\s+by\s*<[^>]*>([^<]+)</`)

// Page is one parsed product page. The raw markup is kept next to the
// document for the strategies that work on text patterns.
type Page struct {
	doc *goquery.Document
	raw string
}

// NewPage parses markup into a Page. An empty string yields a nil Page,
// which every accessor treats as "nothing found".
func NewPage(markup string) *Page {
	if markup == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	return &Page{doc: doc, raw: markup}
}

// Title tries the Open Graph title, the <title> element, then the
// JSON-LD Product name.
func (p *Page) Title() string {
	if p == nil {
		return ""
	}
	if v, ok := p.doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(p.doc.Find("title").First().Text()); t != "" {
		return t
	}
	for _, product := range p.productNodes() {
		if name, ok := product["name"].(string); ok {
			if t := strings.TrimSpace(name); t != "" {
				return t
			}
		}
	}
	return ""
}

// Seller tries the visible "Sold and shipped by" fragment, then the
// JSON-LD offer seller name.
func (p *Page) Seller() string {
	if p == nil {
		return ""
	}
	if m := soldByRegex.FindStringSubmatch(p.raw); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}
	for _, product := range p.productNodes() {
		for _, offer := range offerNodes(product["offers"]) {
			seller, _ := offer["seller"].(map[string]interface{})
			if name, ok := seller["name"].(string); ok {
				if s := strings.TrimSpace(name); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// Price runs the price strategies in order and returns the first
// candidate that survives normalization.
func (p *Page) Price() string {
	if p == nil {
		return ""
	}
	for _, strategy := range priceStrategies {
		if price := normalize.Price(strategy(p)); price != "" {
			return price
		}
	}
	return ""
}

// priceStrategies yield raw candidate values, cheapest selector first.
var priceStrategies = []func(*Page) interface{}{
	func(p *Page) interface{} {
		v, _ := p.doc.Find(`meta[property="product:price:amount"]`).Attr("content")
		return v
	},
	func(p *Page) interface{} {
		v, _ := p.doc.Find(`meta[itemprop="price"]`).Attr("content")
		return v
	},
	func(p *Page) interface{} {
		for _, product := range p.productNodes() {
			for _, offer := range offerNodes(product["offers"]) {
				if price, ok := offer["price"]; ok && price != nil {
					if normalize.Price(price) != "" {
						return price
					}
				}
			}
		}
		return nil
	},
	func(p *Page) interface{} {
		// Visible current-price element: strip inner markup, collapse
		// whitespace, let the normalizer dig out the number.
		text := p.doc.Find(".price-current").First().Text()
		return strings.Join(strings.Fields(text), " ")
	},
	func(p *Page) interface{} {
		return p.doc.Find(`[itemprop="price"]`).First().Text()
	},
}

// productNodes returns every JSON-LD node typed "Product" on the page.
// A script block may hold a single object or a list of nodes; blocks
// that fail to decode are skipped.
func (p *Page) productNodes() []map[string]interface{} {
	var products []map[string]interface{}
	p.doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return
		}
		nodes, ok := data.([]interface{})
		if !ok {
			nodes = []interface{}{data}
		}
		for _, node := range nodes {
			obj, ok := node.(map[string]interface{})
			if !ok {
				continue
			}
			if t, _ := obj["@type"].(string); t == "Product" {
				products = append(products, obj)
			}
		}
	})
	return products
}

// offerNodes normalizes a JSON-LD offers value, which may be a single
// object or an array, into a slice of objects.
func offerNodes(offers interface{}) []map[string]interface{} {
	switch v := offers.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{v}
	case []interface{}:
		var out []map[string]interface{}
		for _, item := range v {
			if obj, ok := item.(map[string]interface{}); ok {
				out = append(out, obj)
			}
		}
		return out
	default:
		return nil
	}
}

// FillMissing patches only the empty title/seller/price fields of a
// record from the product page, fetching it at most once. Fields a
// structured source already populated are never overwritten. No fetch
// happens when nothing is missing.
func FillMissing(ctx context.Context, fetcher domain.PageFetcher, record *domain.ProductRecord) {
	if record == nil {
		return
	}
	if record.Title != "" && record.Seller != "" && record.Price != "" {
		return
	}
	page := NewPage(fetcher.FetchHTML(ctx, record.URL))
	if page == nil {
		return
	}
	if record.Title == "" {
		record.Title = page.Title()
	}
	if record.Seller == "" {
		record.Seller = page.Seller()
	}
	if record.Price == "" {
		record.Price = page.Price()
	}
}

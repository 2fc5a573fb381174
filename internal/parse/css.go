package parse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CSS extracts a price from the first element matching a caller-supplied
// selector. It covers sites without structured data and without a dedicated
// strategy: point it at the element holding the price text.
type CSS struct {
	Selector string
}

// ExtractPrice implements Parser.
func (c *CSS) ExtractPrice(content string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return 0, false
	}

	node := doc.Find(c.Selector).First()

	// Prefer a content attribute (microdata style), then the element text.
	if v, ok := node.Attr("content"); ok {
		if price, ok := Amount(v); ok {
			return price, true
		}
	}

	return Amount(strings.TrimSpace(node.Text()))
}

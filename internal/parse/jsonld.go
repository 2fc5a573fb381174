package parse

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonldMaxDepth bounds the walk through ld+json documents; real product
// markup nests offers at most a few levels deep.
const jsonldMaxDepth = 8

// JSONLD extracts prices from schema.org structured data. It reads every
// <script type="application/ld+json"> block and walks it for a "price" (or
// "lowPrice") value, falling back to [itemprop=price] microdata.
type JSONLD struct{}

// ExtractPrice implements Parser.
func (j *JSONLD) ExtractPrice(content string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return 0, false
	}

	var price float64
	var found bool

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true // skip malformed blocks, keep looking
		}
		if v, ok := findPrice(data, 0); ok {
			price, found = v, true
			return false
		}
		return true
	})
	if found {
		return price, true
	}

	node := doc.Find("[itemprop=price]").First()
	if v, ok := node.Attr("content"); ok {
		return Amount(v)
	}
	if text := strings.TrimSpace(node.Text()); text != "" {
		return Amount(text)
	}

	return 0, false
}

func findPrice(v any, depth int) (float64, bool) {
	if depth > jsonldMaxDepth {
		return 0, false
	}

	switch t := v.(type) {
	case map[string]any:
		for _, key := range []string{"price", "lowPrice"} {
			if raw, ok := t[key]; ok {
				if p, ok := priceValue(raw); ok {
					return p, true
				}
			}
		}
		for _, key := range []string{"offers", "@graph"} {
			if child, ok := t[key]; ok {
				if p, ok := findPrice(child, depth+1); ok {
					return p, true
				}
			}
		}
	case []any:
		for _, item := range t {
			if p, ok := findPrice(item, depth+1); ok {
				return p, true
			}
		}
	}

	return 0, false
}

func priceValue(raw any) (float64, bool) {
	switch t := raw.(type) {
	case float64:
		if t > 0 {
			return t, true
		}
	case string:
		return Amount(t)
	}
	return 0, false
}

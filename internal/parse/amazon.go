package parse

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Amazon extracts prices from Amazon product pages. Candidate locations are
// tried in priority order, first match wins:
//
//  1. span.a-offscreen — the full price text, present on most pages
//  2. #corePrice_feature_div span.a-offscreen — the buy-box variant
//  3. span.a-price-whole + span.a-price-fraction — split rendering
type Amazon struct{}

// ExtractPrice implements Parser.
func (a *Amazon) ExtractPrice(content string) (float64, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return 0, false
	}

	for _, sel := range []string{
		"span.a-offscreen",
		"#corePrice_feature_div span.a-offscreen",
	} {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			if v, ok := Amount(text); ok {
				return v, true
			}
		}
	}

	whole := strings.TrimSpace(doc.Find("span.a-price-whole").First().Text())
	if whole == "" {
		return 0, false
	}
	frac := strings.TrimSpace(doc.Find("span.a-price-fraction").First().Text())
	if frac == "" {
		frac = "00"
	}

	// The whole part is integral; any separators in it are thousands marks.
	whole = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, whole)

	return Amount(whole + "." + frac)
}

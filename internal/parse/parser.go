// Package parse extracts numeric prices from raw page content. Each site (or
// extraction heuristic) is a separate Parser strategy; picking one happens at
// startup, per product. Adding support for a new site means adding a new
// strategy here, never touching the monitor.
package parse

import (
	"fmt"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// Parser extracts a price from raw page content. Implementations never fail
// on malformed or unexpected input: if no price can be located, ok is false.
type Parser interface {
	ExtractPrice(content string) (price float64, ok bool)
}

// ForProduct returns the parser strategy configured for a product. An unknown
// strategy name is a configuration error.
func ForProduct(p domain.Product) (Parser, error) {
	switch p.Parser {
	case "", domain.ParserAmazon:
		return &Amazon{}, nil
	case domain.ParserJSONLD:
		return &JSONLD{}, nil
	case domain.ParserCSS:
		if p.Selector == "" {
			return nil, fmt.Errorf("product %q: css parser requires a selector", p.Name)
		}
		return &CSS{Selector: p.Selector}, nil
	default:
		return nil, fmt.Errorf("product %q: unknown parser %q", p.Name, p.Parser)
	}
}

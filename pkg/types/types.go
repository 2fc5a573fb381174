// Package domain defines the core business types for pricewatch.
package domain

import "fmt"

// Parser strategy names accepted in product configuration.
const (
	ParserAmazon = "amazon"
	ParserJSONLD = "jsonld"
	ParserCSS    = "css"
)

// Product is a monitored listing: a page URL plus the price threshold at or
// below which an alert fires. Products are loaded from configuration once at
// startup and never mutated; the URL is the product's identity.
type Product struct {
	Name        string  `yaml:"name"`
	URL         string  `yaml:"url"`
	TargetPrice float64 `yaml:"target_price"`

	// Parser names the extraction strategy for this product's site.
	// Empty selects the default strategy (ParserAmazon).
	Parser string `yaml:"parser,omitempty"`

	// Selector is the CSS selector consumed by the ParserCSS strategy.
	Selector string `yaml:"selector,omitempty"`
}

// Triggered reports whether an observed price is at or below the target.
// The comparison is inclusive: a price exactly equal to the target fires.
func (p Product) Triggered(price float64) bool {
	return price <= p.TargetPrice
}

// PriceAlert is built when a successfully parsed price triggers a product's
// threshold. It exists only long enough to be handed to the notifier.
type PriceAlert struct {
	Product       Product
	ObservedPrice float64
}

// Message renders the human-readable alert text delivered to the
// notification channel.
func (a PriceAlert) Message() string {
	return fmt.Sprintf(
		"Price drop: %s is now %.2f (target %.2f)\n%s",
		a.Product.Name, a.ObservedPrice, a.Product.TargetPrice, a.Product.URL,
	)
}

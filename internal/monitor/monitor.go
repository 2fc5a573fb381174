// Package monitor runs the sequential price-checking loop: fetch each
// product's page with retries, extract a price, compare it to the target,
// and notify when the threshold is reached.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/atcovolan/pricewatch/internal/fetch"
	"github.com/atcovolan/pricewatch/internal/metrics"
	"github.com/atcovolan/pricewatch/internal/notify"
	"github.com/atcovolan/pricewatch/internal/parse"
	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// jitterFactor spreads retry delays uniformly across [0.5d, 1.5d] so the
// request cadence is not a detectable fixed interval.
const jitterFactor = 0.5

// Source supplies the immutable monitoring inputs, loaded once at startup.
// Request headers and the notification target are consumed where the fetcher
// and notifier are constructed, not here.
type Source interface {
	LoadProducts() []domain.Product
	IntervalBetweenProducts() time.Duration
	IntervalBetweenCycles() time.Duration
	MaxRetries() int
	RetryDelay() time.Duration
}

// Monitor coordinates the injected capabilities. It holds no mutable state
// across products: each product's retry bookkeeping lives inside its own
// checkProduct call, so the loop needs no synchronization.
type Monitor struct {
	source   Source
	fetcher  fetch.Fetcher
	parsers  map[string]parse.Parser // keyed by product URL
	notifier notify.Notifier
	log      *slog.Logger

	newBackOff func() backoff.BackOff
}

// Option configures the Monitor.
type Option func(*Monitor)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) {
		m.log = l
	}
}

// WithBackOffFactory overrides the retry delay policy. Tests inject a
// zero-delay policy to assert attempt counts without wall-clock waits.
func WithBackOffFactory(f func() backoff.BackOff) Option {
	return func(m *Monitor) {
		m.newBackOff = f
	}
}

// New creates a Monitor with injected dependencies. Parsers are resolved per
// product ahead of time by the caller.
func New(
	src Source,
	f fetch.Fetcher,
	parsers map[string]parse.Parser,
	n notify.Notifier,
	opts ...Option,
) *Monitor {
	m := &Monitor{
		source:   src,
		fetcher:  f,
		parsers:  parsers,
		notifier: n,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.newBackOff == nil {
		m.newBackOff = m.defaultBackOff
	}
	return m
}

// Parsers resolves the parser strategy for every configured product. It is
// the conventional way to build the parsers argument for New; an unknown
// strategy name surfaces here, before monitoring starts.
func Parsers(products []domain.Product) (map[string]parse.Parser, error) {
	parsers := make(map[string]parse.Parser, len(products))
	for _, p := range products {
		parser, err := parse.ForProduct(p)
		if err != nil {
			return nil, err
		}
		parsers[p.URL] = parser
	}
	return parsers, nil
}

// defaultBackOff yields MaxRetries() delays drawn uniformly from
// [0.5d, 1.5d] around RetryDelay(). Multiplier 1 keeps the interval flat;
// only the randomization varies it.
func (m *Monitor) defaultBackOff() backoff.BackOff {
	ebo := backoff.NewExponentialBackOff()
	ebo.InitialInterval = m.source.RetryDelay()
	ebo.MaxInterval = m.source.RetryDelay()
	ebo.Multiplier = 1
	ebo.RandomizationFactor = jitterFactor
	ebo.MaxElapsedTime = 0
	return backoff.WithMaxRetries(ebo, uint64(m.source.MaxRetries()))
}

// Run executes monitoring cycles until the context is canceled. That is the
// only exit: per-product failures are contained within their cycle.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info("monitor started",
		"products", len(m.source.LoadProducts()),
		"interval_between_products", m.source.IntervalBetweenProducts(),
		"interval_between_cycles", m.source.IntervalBetweenCycles(),
		"max_retries", m.source.MaxRetries(),
	)

	for {
		if err := m.CheckCycle(ctx); err != nil {
			return err
		}
		if err := m.sleep(ctx, m.source.IntervalBetweenCycles()); err != nil {
			return err
		}
	}
}

// CheckCycle runs one full pass over the configured products, in order.
// It returns an error only when the context is canceled mid-cycle.
func (m *Monitor) CheckCycle(ctx context.Context) error {
	log := m.log.With("cycle", uuid.NewString())
	start := time.Now()
	defer func() {
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	products := m.source.LoadProducts()
	log.Info("cycle started", "products", len(products))

	for i := range products {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		product := products[i]
		price, err := m.checkProduct(ctx, product)

		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			metrics.ProductsSkippedTotal.Inc()
			log.Warn("product skipped this cycle",
				"product", product.Name,
				"error", err,
			)
		case product.Triggered(price):
			log.Info("target price reached",
				"product", product.Name,
				"price", price,
				"target", product.TargetPrice,
			)
			m.sendAlert(ctx, log, domain.PriceAlert{Product: product, ObservedPrice: price})
		default:
			log.Info("price above target",
				"product", product.Name,
				"price", price,
				"target", product.TargetPrice,
			)
		}

		// Pace outbound requests between products.
		if err := m.sleep(ctx, m.source.IntervalBetweenProducts()); err != nil {
			return err
		}
	}

	log.Info("cycle finished", "duration", time.Since(start))
	return nil
}

// checkProduct fetches and parses one product's price, retrying failed
// fetches and priceless pages under the same budget: the initial attempt
// plus MaxRetries() more.
func (m *Monitor) checkProduct(ctx context.Context, product domain.Product) (float64, error) {
	parser, ok := m.parsers[product.URL]
	if !ok {
		return 0, fmt.Errorf("no parser registered for %s", product.URL)
	}

	var price float64
	attempt := 0

	operation := func() error {
		attempt++
		metrics.FetchAttemptsTotal.Inc()

		content, err := m.fetcher.Fetch(ctx, product.URL)
		if err != nil {
			metrics.FetchFailuresTotal.Inc()
			m.log.Warn("fetch failed",
				"product", product.Name,
				"attempt", attempt,
				"error", err,
			)
			return err
		}

		p, found := parser.ExtractPrice(content)
		if !found {
			// A missing price may be transient page variation; retry it
			// like a failed fetch.
			metrics.ParseFailuresTotal.Inc()
			m.log.Warn("no price found in page",
				"product", product.Name,
				"attempt", attempt,
			)
			return fmt.Errorf("no price found in page for %s", product.Name)
		}

		price = p
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(m.newBackOff(), ctx)); err != nil {
		return 0, err
	}
	return price, nil
}

// sendAlert delivers the alert; failure is logged and contained so it never
// affects the rest of the cycle.
func (m *Monitor) sendAlert(ctx context.Context, log *slog.Logger, alert domain.PriceAlert) {
	if err := m.notifier.Send(ctx, alert); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		log.Error("notification failed",
			"product", alert.Product.Name,
			"error", err,
		)
		return
	}
	metrics.AlertsFiredTotal.Inc()
}

func (m *Monitor) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

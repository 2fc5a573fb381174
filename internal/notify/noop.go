package notify

import (
	"context"
	"log/slog"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when no notification channel is configured and by the check command's
// dry-run mode.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// Send logs and discards an alert.
func (n *NoOpNotifier) Send(_ context.Context, alert domain.PriceAlert) error {
	n.log.Info("notification discarded (no channel configured)",
		"product", alert.Product.Name,
		"price", alert.ObservedPrice,
		"target", alert.Product.TargetPrice,
	)
	return nil
}

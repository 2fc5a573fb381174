package notify

import (
	"context"
	"errors"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// MultiNotifier fans an alert out to every configured channel. A failing
// channel does not stop delivery to the others; the joined errors are
// returned so the caller can log them.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier delivering to all of the given channels.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send delivers the alert to each channel in order.
func (m *MultiNotifier) Send(ctx context.Context, alert domain.PriceAlert) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

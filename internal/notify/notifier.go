// Package notify defines the notification interface and implementations
// for price-drop alert delivery.
package notify

import (
	"context"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// Notifier defines the interface for delivering a price-drop alert to an
// external channel. Delivery is fire-and-forget from the monitor's point of
// view: a returned error is logged by the caller, never propagated into the
// monitoring loop.
type Notifier interface {
	Send(ctx context.Context, alert domain.PriceAlert) error
}

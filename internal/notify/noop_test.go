package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atcovolan/pricewatch/pkg/logger"
)

func TestNoOpNotifier_Send(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(logger.Quiet())
	require.NoError(t, n.Send(context.Background(), testAlert()))
}

// compile-time interface check.
var _ Notifier = (*NoOpNotifier)(nil)

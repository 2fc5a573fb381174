package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// stubNotifier records deliveries and returns a fixed error.
type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) Send(context.Context, domain.PriceAlert) error {
	s.calls++
	return s.err
}

func TestMultiNotifier_DeliversToAllChannels(t *testing.T) {
	t.Parallel()

	a := &stubNotifier{}
	b := &stubNotifier{}

	m := NewMultiNotifier(a, b)
	require.NoError(t, m.Send(context.Background(), testAlert()))

	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestMultiNotifier_FailingChannelDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	failing := &stubNotifier{err: errors.New("channel down")}
	healthy := &stubNotifier{}

	m := NewMultiNotifier(failing, healthy)
	err := m.Send(context.Background(), testAlert())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel down")
	assert.Equal(t, 1, healthy.calls)
}

func TestMultiNotifier_Empty(t *testing.T) {
	t.Parallel()

	m := NewMultiNotifier()
	require.NoError(t, m.Send(context.Background(), testAlert()))
}

// compile-time interface check.
var _ Notifier = (*MultiNotifier)(nil)

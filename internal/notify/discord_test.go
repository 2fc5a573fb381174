package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

func testAlert() domain.PriceAlert {
	return domain.PriceAlert{
		Product: domain.Product{
			Name:        "Console X",
			URL:         "http://x",
			TargetPrice: 300.0,
		},
		ObservedPrice: 299.99,
	}
}

func TestDiscordNotifier_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "alert sends embed",
			statusCode: http.StatusNoContent,
		},
		{
			name:       "discord returns 429 rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.Send(context.Background(), testAlert())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Contains(t, embed.Title, "Console X")
			assert.Equal(t, "http://x", embed.URL)
			assert.Equal(t, colorGreen, embed.Color)

			require.Len(t, embed.Fields, 2)
			assert.Equal(t, "299.99", embed.Fields[0].Value)
			assert.Equal(t, "300.00", embed.Fields[1].Value)
		})
	}
}

func TestDiscordNotifier_UnreachableEndpoint(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	d := NewDiscordNotifier(srv.URL)
	err := d.Send(context.Background(), testAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

// compile-time interface check.
var _ Notifier = (*DiscordNotifier)(nil)

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// WebhookNotifier implements Notifier with a generic JSON POST to a
// preconfigured endpoint, carrying any configured headers.
type WebhookNotifier struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// WebhookOption configures a WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithWebhookHTTPClient sets a custom HTTP client.
func WithWebhookHTTPClient(c *http.Client) WebhookOption {
	return func(w *WebhookNotifier) {
		w.client = c
	}
}

// NewWebhookNotifier creates a notifier posting to url with the given
// headers on every delivery.
func NewWebhookNotifier(url string, headers map[string]string, opts ...WebhookOption) *WebhookNotifier {
	w := &WebhookNotifier{
		url:     url,
		headers: headers,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// webhookPayload is the JSON body posted to the generic webhook endpoint.
type webhookPayload struct {
	Product       string  `json:"product"`
	URL           string  `json:"url"`
	ObservedPrice float64 `json:"observed_price"`
	TargetPrice   float64 `json:"target_price"`
	Message       string  `json:"message"`
}

// Send posts the alert as JSON.
func (w *WebhookNotifier) Send(ctx context.Context, alert domain.PriceAlert) error {
	body, err := json.Marshal(webhookPayload{
		Product:       alert.Product.Name,
		URL:           alert.Product.URL,
		ObservedPrice: alert.ObservedPrice,
		TargetPrice:   alert.Product.TargetPrice,
		Message:       alert.Message(),
	})
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}

	return nil
}

package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultWebhookURL is the Apps Script endpoint backing the onboarding sheet.
const DefaultWebhookURL = "https://script.google.com/macros/s/AKfycbwm5hK2AJa2ltKy3jjfwvb8nvhxzi5I9KRthRb20yyXgChyk0OV3zQNkovi9lKI19kYQQ/exec"

// Webhook posts the JSON payload to a fixed URL. The response is drained
// and discarded without looking at its status: the endpoint gives no
// usable acknowledgement, so only transport errors are reported.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook sink. A zero timeout leaves the client
// without a deadline.
func NewWebhook(url string, timeout time.Duration) (*Webhook, error) {
	if url == "" {
		return nil, errWebhookURLRequired
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Name implements Sink.
func (w *Webhook) Name() string { return "webhook" }

// Send implements Sink.
func (w *Webhook) Send(ctx context.Context, sub *Submission) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(sub.Payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookNotifier posts notifications to a panel-style webhook endpoint as
// a {"title": ..., "content": ...} JSON payload.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier builds a webhook channel for the given endpoint.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (w *WebhookNotifier) Notify(title, content string) error {
	payload, err := json.Marshal(map[string]string{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := w.httpClient.Post(w.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook POST failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

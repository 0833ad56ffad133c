package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookPayload is the fire-and-forget lead notification body. No retry,
// no signature.
type WebhookPayload struct {
	PageID      string            `json:"pageId"`
	WorkspaceID string            `json:"workspaceId"`
	Data        map[string]string `json:"data"`
}

type Webhook struct {
	Client *http.Client
}

func NewWebhook() *Webhook {
	return &Webhook{Client: &http.Client{Timeout: 5 * time.Second}}
}

// Deliver POSTs the payload as JSON to the configured sink.
func (w *Webhook) Deliver(ctx context.Context, url string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook sink responded %d", resp.StatusCode)
	}
	return nil
}

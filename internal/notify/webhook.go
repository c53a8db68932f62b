package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/aptwatch/internal/scrape"
)

// ErrNoWebhookURL is returned by Send when the webhook is not configured.
var ErrNoWebhookURL = errors.New("webhook url not configured")

// Webhook posts availability alerts to a Discord-compatible webhook.
type Webhook struct {
	URL        string
	HTTPClient *http.Client
	UserAgent  string // optional
}

// Send posts one message per batch of plans. It stops at the first failed
// post; earlier batches are not recalled.
func (w *Webhook) Send(ctx context.Context, plans []scrape.FloorPlan, sourceURL string) error {
	if strings.TrimSpace(w.URL) == "" {
		return ErrNoWebhookURL
	}
	endpoint, err := w.endpoint()
	if err != nil {
		return err
	}
	msgs := BuildMessages(plans, sourceURL)
	for i, m := range msgs {
		if err := w.post(ctx, endpoint, m); err != nil {
			return fmt.Errorf("message %d/%d: %w", i+1, len(msgs), err)
		}
		log.Debug().Int("embeds", len(m.Embeds)).Int("message", i+1).Msg("webhook message sent")
	}
	return nil
}

// endpoint asks the webhook to wait for delivery so failures surface as
// non-2xx statuses.
func (w *Webhook) endpoint() (string, error) {
	u, err := url.Parse(w.URL)
	if err != nil {
		return "", fmt.Errorf("webhook url: %w", err)
	}
	q := u.Query()
	q.Set("wait", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (w *Webhook) post(ctx context.Context, endpoint string, m Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.UserAgent != "" {
		req.Header.Set("User-Agent", w.UserAgent)
	}
	hc := w.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook status: %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

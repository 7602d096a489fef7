package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logpilot/logpilot/pkg/parser"
)

// DefaultWebhookTimeout bounds each webhook request.
const DefaultWebhookTimeout = 10 * time.Second

// WebhookChannel POSTs alert payloads to an HTTP endpoint. Delivery is
// best-effort: failures are logged and dropped, never propagated.
type WebhookChannel struct {
	url     string
	token   string
	timeout time.Duration
	client  *http.Client
	log     *zap.Logger
}

// WebhookOption configures a WebhookChannel.
type WebhookOption func(*WebhookChannel)

// WithToken sets a bearer token for the Authorization header.
func WithToken(token string) WebhookOption {
	return func(c *WebhookChannel) {
		c.token = token
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) WebhookOption {
	return func(c *WebhookChannel) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for delivery failures.
func WithLogger(log *zap.Logger) WebhookOption {
	return func(c *WebhookChannel) {
		if log != nil {
			c.log = log
		}
	}
}

// NewWebhookChannel creates a webhook alert channel. A missing or
// non-HTTP endpoint is a configuration error and fails construction.
func NewWebhookChannel(endpoint string, opts ...WebhookOption) (*WebhookChannel, error) {
	if endpoint == "" {
		return nil, errors.New("webhook url is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("webhook url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("webhook url must have a host")
	}

	c := &WebhookChannel{
		url:     endpoint,
		timeout: DefaultWebhookTimeout,
		client:  &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// webhookPayload is the JSON body posted for each alert.
type webhookPayload struct {
	ID      string        `json:"id"`
	Rule    string        `json:"rule"`
	FiredAt time.Time     `json:"fired_at"`
	Record  parser.Record `json:"record"`
}

// Send posts the alert. All failures are absorbed here.
func (c *WebhookChannel) Send(ruleName string, rec parser.Record) {
	payload, err := json.Marshal(webhookPayload{
		ID:      uuid.NewString(),
		Rule:    ruleName,
		FiredAt: time.Now().UTC(),
		Record:  rec,
	})
	if err != nil {
		c.log.Warn("webhook payload marshal failed", zap.String("rule", ruleName), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.log.Warn("webhook request creation failed", zap.String("rule", ruleName), zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "logpilot-webhook")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("webhook delivery failed", zap.String("rule", ruleName), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024*1024))

	if resp.StatusCode >= 400 {
		c.log.Warn("webhook returned error status",
			zap.String("rule", ruleName),
			zap.Int("status", resp.StatusCode),
		)
	}
}

// internal/infrastructure/storefront/client.go
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
)

// Client is the typed HTTP client for the commerce platform API.
// Per-area views (CartAPI, PointsAPI, OrderAPI) share one instance.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *logrus.Logger
}

// NewClient creates a new upstream API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	u, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base url %q: %w", cfg.Upstream.BaseURL, err)
	}

	// Relative endpoint paths resolve against the base, so it must end in /
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: cfg.Upstream.RequestTimeout,
		},
		userAgent: cfg.Upstream.UserAgent,
		logger:    logger,
	}, nil
}

// Cart returns the cart API view
func (c *Client) Cart() *CartAPI {
	return &CartAPI{client: c}
}

// Points returns the loyalty points API view
func (c *Client) Points() *PointsAPI {
	return &PointsAPI{client: c}
}

// Orders returns the order API view
func (c *Client) Orders() *OrderAPI {
	return &OrderAPI{client: c}
}

// do executes one upstream request and decodes the JSON response into out.
// A nil out discards the body. Failures always come back as *APIError.
func (c *Client) do(ctx context.Context, method, path, bearerToken string, body, out interface{}) error {
	rel := &url.URL{Path: path}
	u := c.baseURL.ResolveReference(rel)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Warn("Upstream request failed")

		return &APIError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return &APIError{Kind: KindAuth, StatusCode: resp.StatusCode, Message: "session expired"}
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			Kind:       KindServerRejection,
			StatusCode: resp.StatusCode,
			Message:    extractServerMessage(resp.Body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindNetwork, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// extractServerMessage pulls a plain-string message out of an error body.
// Anything that is not a plain string is dropped in favor of the generic text.
func extractServerMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}

	for _, raw := range []json.RawMessage{envelope.Error, envelope.Message} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}

	return ""
}

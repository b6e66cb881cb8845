// Package httpclient is the shared GET client for public JSON/text APIs: rate limited, per-call timeout,
// failures classified into the chain error taxonomy.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"go.uber.org/ratelimit"
)

const maxBodyBytes = 32 << 20

type (
	// Metrics records one upstream call.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Client issues GET requests against a single base URL.
type Client struct {
	baseURL string
	http    *http.Client
	limiter ratelimit.Limiter
	timeout time.Duration
	metrics Metrics
}

// Config configures a Client. RequestsPerSecond <= 0 disables throttling.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond int
}

// New constructs a Client.
func New(cfg Config, metrics Metrics) *Client {
	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{},
		limiter: limiter,
		timeout: timeout,
		metrics: metrics,
	}
}

const defaultTimeout = 10 * time.Second

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Get fetches path and returns the raw body of a 2xx response.
func (c *Client) Get(ctx context.Context, operation, path string) (body []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(operation, err, started)
	}()

	url := c.URL(path)
	c.limiter.Take()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, chain.Unavailable(operation, url, fmt.Errorf("build request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, chain.Unavailable(operation, url, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, chain.Unavailable(operation, url, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, chain.StatusError(operation, url, resp.StatusCode, body)
	}
	return body, nil
}

// GetJSON fetches path and decodes the body into dst.
func (c *Client) GetJSON(ctx context.Context, operation, path string, dst any) error {
	body, err := c.Get(ctx, operation, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return chain.Malformed(operation, c.URL(path), body, err)
	}
	return nil
}

// GetText fetches path and returns the trimmed body.
func (c *Client) GetText(ctx context.Context, operation, path string) (string, error) {
	body, err := c.Get(ctx, operation, path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", chain.Malformed(operation, c.URL(path), body, fmt.Errorf("empty body"))
	}
	return text, nil
}

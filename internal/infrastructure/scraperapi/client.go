// Package scraperapi reaches upstream data sources through the
// ScraperAPI rendering proxy, which takes care of anti-bot defenses.
package scraperapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/storelens/resolver/internal/domain"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/138.0.0.0 Safari/537.36"
	acceptHeader = "application/json, text/plain, */*"

	maxAttempts = 3
)

// Client executes proxied GET requests with a shared rate limiter so
// every source respects the same inter-request spacing.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a proxy client. minInterval is the minimum spacing
// between any two upstream requests.
func NewClient(apiKey, baseURL string, timeout, minInterval time.Duration) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if minInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(minInterval), 1)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// WrapURL returns the proxied form of a target URL.
func (c *Client) WrapURL(target string) string {
	return fmt.Sprintf("%s/?api_key=%s&url=%s", c.baseURL, c.apiKey, url.QueryEscape(target))
}

// AutoparseURL returns the proxied form of a target URL with the
// proxy's structured auto-extraction enabled.
func (c *Client) AutoparseURL(target string) string {
	return fmt.Sprintf("%s/?api_key=%s&autoparse=true&url=%s", c.baseURL, c.apiKey, url.QueryEscape(target))
}

// doRequest executes a GET with the fixed header set, retrying
// transient failures with exponential backoff. The response body is
// returned whole; callers decide how to decode it.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", acceptHeader)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[PROXY] request error (attempt %d): %v", attempt, err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrTransport, err)
			sleepBackoff(ctx, attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			log.Printf("[PROXY] body read error (attempt %d): %v", attempt, readErr)
			lastErr = fmt.Errorf("%w: %v", domain.ErrTransport, readErr)
			sleepBackoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			log.Printf("[PROXY] upstream status %d (attempt %d)", resp.StatusCode, attempt)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrTransport, resp.StatusCode)
			sleepBackoff(ctx, attempt)
			continue
		}

		return body, nil
	}

	return nil, lastErr
}

// GetJSON fetches a URL through the proxy (or directly when wrap is
// false) and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, target string, wrap bool, out interface{}) error {
	reqURL := target
	if wrap {
		reqURL = c.WrapURL(target)
	}

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return nil
}

// FetchHTML retrieves rendered markup for a URL through the proxy.
// Any failure yields an empty string; page fetching is best-effort.
func (c *Client) FetchHTML(ctx context.Context, target string) string {
	body, err := c.doRequest(ctx, c.WrapURL(target))
	if err != nil {
		log.Printf("[PROXY] html fetch failed for %s: %v", target, err)
		return ""
	}
	return string(body)
}

// sleepBackoff waits before the next attempt, growing with each one.
func sleepBackoff(ctx context.Context, attempt int) {
	backoff := time.Duration(attempt) * 500 * time.Millisecond
	select {
	case <-ctx.Done():
	case <-time.After(backoff):
	}
}

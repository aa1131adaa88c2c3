package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable marks an inventory source that cannot serve this account or
// location (HTTP 404, or a response whose shape matches nothing we recognize).
// Callers fall through to the next source instead of aborting.
var ErrUnavailable = errors.New("inventory source unavailable")

// Client is an HTTP client for the inventory API. It authenticates with an
// API-key header, retries on 429, and walks Link-header pagination with a
// fixed delay between pages to stay under the upstream rate ceiling.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	pageDelay  time.Duration
	pageSize   int
}

// NewClient creates a new inventory API client.
func NewClient(baseURL, apiKey string, maxRetries int, baseDelay, pageDelay time.Duration, pageSize int) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		pageDelay:  pageDelay,
		pageSize:   pageSize,
	}
}

// get performs a GET request with retry on 429. A 404 maps to ErrUnavailable;
// any other non-success status is an error. The second return value is the
// server-supplied next-page URL from the Link header, if any.
func (c *Client) get(ctx context.Context, url string) ([]byte, string, error) {
	var lastErr error
	for attempt := range c.maxRetries + 1 {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, "", fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("executing request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, "", fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nextLink(resp.Header.Get("Link")), nil
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, "", fmt.Errorf("HTTP 404 from %s: %w", url, ErrUnavailable)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("HTTP 429 at %s (attempt %d/%d)", url, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, "", ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, "", lastErr
		}

		return nil, "", fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(body))
	}

	return nil, "", lastErr
}

// walkPages fetches url and every server-supplied next page, invoking fn on
// each page body. Pages are visited strictly in sequence with a fixed delay
// between requests.
func (c *Client) walkPages(ctx context.Context, url string, fn func(body []byte) error) error {
	for url != "" {
		body, next, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		if err := fn(body); err != nil {
			return err
		}
		if next == "" {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pageDelay):
		}
		url = next
	}
	return nil
}

// nextLink extracts the rel="next" URL from a Link header, e.g.
// `<https://api.example.com/products?page=2>; rel="next", <...>; rel="last"`.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(section[0]), "<>")
		for _, param := range section[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return url
			}
		}
	}
	return ""
}

// decodeJSON unmarshals with UseNumber so numeric fields survive as
// json.Number and reach decimal parsing without float truncation.
func decodeJSON(body []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(dest)
}

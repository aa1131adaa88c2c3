package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Response captures the ledger's reply to a call, surfaced for reporting.
type Response struct {
	Status int
	Body   []byte
}

// Client is an HTTP client for the ledger API, authenticating with a bearer
// token and a tenant header.
type Client struct {
	baseURL    string
	tenantID   string
	tokens     oauth2.TokenSource
	httpClient *http.Client
}

// NewClient creates a new ledger API client.
func NewClient(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type connection struct {
	TenantID string `json:"tenantId"`
}

// Connect verifies the credentials and resolves the tenant. A pre-configured
// tenantID is used as-is; otherwise the first connected tenant is chosen.
func (c *Client) Connect(ctx context.Context, tenantID string) error {
	if _, err := c.tokens.Token(); err != nil {
		return fmt.Errorf("acquiring ledger token: %w", err)
	}

	if tenantID != "" {
		c.tenantID = tenantID
		return nil
	}

	var conns []connection
	if _, err := c.do(ctx, http.MethodGet, "/connections", nil, &conns); err != nil {
		return fmt.Errorf("discovering ledger tenant: %w", err)
	}
	if len(conns) == 0 {
		return fmt.Errorf("ledger reports no connected tenants")
	}
	c.tenantID = conns[0].TenantID
	return nil
}

// TenantID returns the resolved tenant identifier.
func (c *Client) TenantID() string {
	return c.tenantID
}

// do performs one authenticated call. payload, when non-nil, is sent as a
// JSON body; dest, when non-nil, receives the decoded response. The raw
// response is returned in both cases so callers can report it.
func (c *Client) do(ctx context.Context, method, path string, payload, dest any) (Response, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Response{}, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return Response{}, fmt.Errorf("acquiring ledger token: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if c.tenantID != "" {
		req.Header.Set("xero-tenant-id", c.tenantID)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("executing request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}

	out := Response{Status: resp.StatusCode, Body: body}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, fmt.Errorf("ledger HTTP %d from %s: %s", resp.StatusCode, path, string(body))
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return out, fmt.Errorf("parsing ledger response from %s: %w", path, err)
		}
	}
	return out, nil
}

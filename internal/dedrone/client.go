// Package dedrone is the client for the remote detection API that alerts are
// fetched from.
package dedrone

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/vigilsky/dronewatch/internal/alert"
)

// AlertSource is the fetch capability the dispatch engine consumes.
type AlertSource interface {
	// GetAlert retrieves the full alert document by id.
	GetAlert(ctx context.Context, id string) (*alert.Alert, error)
}

// Client talks to the Dedrone REST API. Transport-level retries are handled
// by the retrying HTTP client; callers see a single success or failure.
type Client struct {
	http       *retryablehttp.Client
	baseURL    string
	authHeader string
	authToken  string
}

// NewClient creates a Client. authHeader names the header the API expects the
// token in (configurable because deployments differ).
func NewClient(baseURL, authHeader, authToken string) *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.Logger = nil
	return &Client{
		http:       c,
		baseURL:    baseURL,
		authHeader: authHeader,
		authToken:  authToken,
	}
}

// GetAlert implements AlertSource.
func (c *Client) GetAlert(ctx context.Context, id string) (*alert.Alert, error) {
	u := fmt.Sprintf("%s/alerts/%s", c.baseURL, url.PathEscape(id))
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("dedrone: build request: %w", err)
	}
	if c.authHeader != "" {
		req.Header.Set(c.authHeader, c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dedrone: get alert %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<14))
		return nil, fmt.Errorf("dedrone: get alert %s: status %d: %s", id, resp.StatusCode, body)
	}

	var a alert.Alert
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return nil, fmt.Errorf("dedrone: decode alert %s: %w", id, err)
	}
	if a.ID == "" {
		a.ID = id
	}
	return &a, nil
}

// Package queryclient is a small HTTP client for the chaindex query API.
package queryclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client queries a running chaindex server. The zero value is not usable;
// set Endpoint.
type Client struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Quantity returns the body of /event/{category}/quantity: either the
// decimal count or the server's "no events yet" message.
func (c Client) Quantity(ctx context.Context, category string) (string, error) {
	return c.get(ctx, fmt.Sprintf("/event/%s/quantity", url.PathEscape(category)), nil)
}

// ByIndex returns the body of /event/{category}?index=N: either the
// serialized record or the server's "no event with index N" message.
func (c Client) ByIndex(ctx context.Context, category string, index int64) (string, error) {
	query := url.Values{}
	query.Set("index", strconv.FormatInt(index, 10))
	return c.get(ctx, fmt.Sprintf("/event/%s", url.PathEscape(category)), query)
}

func (c Client) get(ctx context.Context, path string, query url.Values) (string, error) {
	endpoint := strings.TrimSpace(c.Endpoint)
	if endpoint == "" {
		return "", fmt.Errorf("endpoint is required")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	requestURL := strings.TrimRight(endpoint, "/") + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("query rejected: status=%s body=%s", resp.Status, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

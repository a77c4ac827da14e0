package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/ratelimit"
)

const defaultTimeout = 15 * time.Second

// Client is a small JSON-over-HTTP client shared by the explorer, wallet and
// write database adapters. Every request is paced by a rate limiter and
// bounded by the client timeout, so a stuck collaborator cannot pin an order
// operation forever.
type Client struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
}

// NewClient returns a client capped at requestsPerSecond outbound calls.
// A non-positive timeout falls back to the default one.
func NewClient(requestsPerSecond int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    ratelimit.New(requestsPerSecond),
	}
}

// NewHTTPRequest performs the call and returns the response status and body.
func (c *Client) NewHTTPRequest(
	ctx context.Context,
	method, url, bodyString string,
	header map[string]string,
) (int, string, error) {
	switch method {
	case http.MethodGet:
		return c.do(ctx, http.MethodGet, url, "", header)
	case http.MethodPost:
		return c.do(ctx, http.MethodPost, url, bodyString, header)
	default:
		return 0, "", fmt.Errorf("verb not supported %s", method)
	}
}

func (c *Client) do(
	ctx context.Context,
	method, url, bodyString string,
	header map[string]string,
) (int, string, error) {
	c.limiter.Take()

	var body io.Reader
	if len(bodyString) > 0 {
		body = strings.NewReader(bodyString)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, "", err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return 0, "", err
	}

	return rs.StatusCode, string(bodyBytes), nil
}

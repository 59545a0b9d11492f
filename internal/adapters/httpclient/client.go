package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sunlight-forecast/internal/domain"
)

// Client is the outbound JSON-over-HTTP session shared by the external
// service adapters. It never retries.
type Client struct {
	session   *http.Client
	userAgent string
}

func New(timeout time.Duration, userAgent string) *Client {
	return &Client{
		session:   &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (c *Client) newRequest(
	ctx context.Context,
	endpoint string,
	query url.Values,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.URL.RawQuery = query.Encode()
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	return req, nil
}

// GetJSON issues a GET to endpoint with query and decodes the body into out.
// Network failures and non-2xx statuses come back as *domain.TransportError
// tagged with op.
func (c *Client) GetJSON(
	ctx context.Context,
	op string,
	endpoint string,
	query url.Values,
	out any,
) error {
	req, err := c.newRequest(ctx, endpoint, query)
	if err != nil {
		return err
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.TransportError{
			Op: op,
			Err: &domain.HTTPStatusError{
				Code: resp.StatusCode,
				Body: strings.TrimSpace(string(b)),
			},
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}

	return nil
}

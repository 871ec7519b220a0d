// Package httpapi implements the outbound clients for the external data
// providers (truck routing, mapping, fuel, toll, weather). All clients share
// one retrying HTTP core; transport failures surface as the provider error
// taxonomy so callers can fall through their chains.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lanerate/config"
	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"
)

const (
	defaultTimeout = 8 * time.Second
	maxAttempts    = 3
	initialBackoff = 200 * time.Millisecond
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// client is the shared core of every provider client. Each call carries its
// own timeout; retries use exponential backoff on 429/5xx and network errors
// while respecting context cancellation.
type client struct {
	name    string
	session *http.Client
	apiKey  string
	baseURL string
	timeout time.Duration
}

func newClient(name string, cfg config.ProviderConfig) client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return client{
		name:    name,
		session: &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
	}
}

// getJSON issues a GET with query parameters and decodes the JSON response.
func (c *client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	return c.callJSON(ctx, http.MethodGet, path, query, nil, dst)
}

// postJSON issues a POST with a JSON body and decodes the JSON response.
func (c *client) postJSON(ctx context.Context, path string, body any, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "%s: marshal request", c.name)
	}

	return c.callJSON(ctx, http.MethodPost, path, nil, payload, dst)
}

func (c *client) callJSON(ctx context.Context, method, path string, query url.Values, payload []byte, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, method, path, query, payload)
	})
	if err != nil {
		return c.classify(err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return quote.NewProviderUnavailable(c.name, errors.Wrap(err, "decode response"))
	}

	return nil
}

func (c *client) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	return req, nil
}

func (c *client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// with exponential backoff while respecting context cancellation.
func (c *client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	backoff := initialBackoff

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, err
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}

		return false
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

// notFound reports whether the provider answered 404, which clients treat as
// "no data for this query" rather than a transport failure.
func notFound(err error) bool {
	var he *httpStatusError

	return errors.As(err, &he) && he.Code == http.StatusNotFound
}

// classify maps transport failures onto the provider error taxonomy. A
// deadline hit is a timeout; everything else is provider unavailability.
func (c *client) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return quote.NewProviderTimeout(c.name, c.timeout)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return quote.NewProviderTimeout(c.name, c.timeout)
	}

	return quote.NewProviderUnavailable(c.name, err)
}

// Package pocketbase is a small REST client for the PocketBase HTTP API.
//
// A Client is inert after construction: nothing goes over the wire until a
// request is issued through it, e.g.
//
//	c, err := pocketbase.New("https://example.pockethost.io/")
//	users := pocketbase.Collection[models.UsersRecord](c, "users")
//	list, err := users.GetList(ctx, 1, 30, nil)
package pocketbase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	// Kept exactly as given, never normalized
	baseURL string

	httpClient *http.Client

	// nil means unlimited
	limiter *rate.Limiter

	authStore *AuthStore

	logf func(format string, v ...any)
}

type Option func(*Client)

// WithHTTPClient replaces the pooled default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogf sets where request logs go. Defaults to logrus at debug level.
func WithLogf(logf func(format string, v ...any)) Option {
	return func(c *Client) {
		c.logf = logf
	}
}

// WithRateLimit caps outgoing requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithToken preloads the auth store with a token, e.g. a superuser API token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.authStore.Save(token, nil)
	}
}

// New returns a client bound to baseURL. It validates the URL but performs
// no I/O.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", baseURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Errorf("invalid base url %q: want an absolute http(s) url", baseURL)
	}

	c := &Client{
		baseURL:   baseURL,
		authStore: &AuthStore{},
		logf:      logrus.Debugf,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: newTransport(c.logf),
			Timeout:   defaultTimeout,
		}
	}

	return c, nil
}

// BaseURL returns the configured base URL verbatim.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) AuthStore() *AuthStore {
	return c.authStore
}

// BuildURL joins path onto the base URL with exactly one slash between them.
func (c *Client) BuildURL(path string) string {
	u := c.baseURL
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u + strings.TrimPrefix(path, "/")
}

// Send issues a JSON request and decodes a JSON response into out (if non-nil).
// Responses with status >= 400 are returned as *ResponseError.
func (c *Client) Send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limiter")
		}
	}

	target := c.BuildURL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "could not encode request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.Wrapf(err, "could not build request %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// PocketBase takes the raw token, no Bearer prefix
	if token := c.authStore.Token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "could not read response of %s %s", method, path)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newResponseError(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if len(data) == 0 {
		return errors.Errorf("empty response body for %s %s (status %d)", method, path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "could not decode response of %s %s", method, path)
	}
	return nil
}

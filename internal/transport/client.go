// Package transport provides the authenticated HTTP client used to talk to
// the Ardoq REST API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/constants"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *http.Client
	auth    Authenticator
	apiKey  string
	baseURL *url.URL
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithAuthenticator sets how the API key is applied.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) {
		if a != nil {
			c.auth = a
		}
	}
}

// New creates a client for baseURL. Requests carry apiKey using TokenAuth
// unless another authenticator is given.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.NewConfigError("transport", "base URL is required", nil)
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.NewConfigError("transport", "invalid base URL", err)
	}

	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    &TokenAuth{},
		apiKey:  apiKey,
		baseURL: u,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.WrapResource("send", "request", req.Method+" "+req.URL.Path, errors.ErrTimeout)
		}
		return nil, errors.WrapResource("send", "request", req.Method+" "+req.URL.Path, err)
	}
	return resp, nil
}

// Request builds and sends a request to path relative to the base URL.
// A non-nil body is encoded as JSON.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+path, err)
	}
	return c.Do(req)
}

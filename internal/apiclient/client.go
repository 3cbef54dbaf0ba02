package apiclient

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const DefaultBaseURL = "http://localhost:5000/api"

// TokenSource yields the bearer token for the next request. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// Client is the stateless gateway to the seller backend. It keeps no data
// between calls; callers own whatever they fetch.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout bounds every request. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(transport)},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// call sends a JSON request and decodes a 2xx body into out.
func (c *Client) call(ctx context.Context, method, endpoint string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, &APIError{Message: "encode request: " + err.Error(), Err: err}
		}
		rd = bytes.NewReader(b)
	}
	return c.send(ctx, method, endpoint, rd, "application/json", out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) (int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return 0, networkError(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Message
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		return resp.StatusCode, &APIError{Message: msg, Code: eb.Code, Status: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return resp.StatusCode, &APIError{Message: "empty response body", Code: CodeDecode, Status: resp.StatusCode, Err: err}
		}
		return resp.StatusCode, &APIError{Message: "decode response: " + err.Error(), Code: CodeDecode, Status: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn("auth token unavailable, sending request without it", zap.Error(err))
		return
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

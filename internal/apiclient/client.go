// internal/apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymclub/pkg/logger"
)

const (
	DefaultTimeout      = 10 * time.Second
	defaultTokenTimeout = 2 * time.Second
	maxBodySize         = 10 << 20

	HeaderRequestID = "X-Request-ID"
)

// TokenSource supplies the bearer token and is told when the backend
// rejected it.
type TokenSource interface {
	GetToken(ctx context.Context) (string, bool)
	Invalidate(ctx context.Context, token string) error
}

// Client sends JSON requests to the gym backend. It attaches the current
// bearer token to every request and invalidates it on a 401.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	tokens       TokenSource
	logger       *logger.Logger
	tokenTimeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, including its timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the request timeout on a copy of the HTTP client, so a
// shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		h := *c.httpClient
		h.Timeout = d
		c.httpClient = &h
	}
}

// WithTokenTimeout bounds how long token lookup may delay a request.
func WithTokenTimeout(d time.Duration) Option {
	return func(c *Client) { c.tokenTimeout = d }
}

func New(baseURL string, tokens TokenSource, l *logger.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: need http(s)://host", baseURL)
	}

	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		tokens:       tokens,
		logger:       l.Named("apiclient"),
		tokenTimeout: defaultTokenTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Response is a successful (2xx) reply with its body fully read.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) malformed(err error) *Error {
	return &Error{
		Kind:       KindMalformedResponse,
		Method:     r.Method,
		Path:       r.Path,
		StatusCode: r.StatusCode,
		Body:       r.Body,
		Err:        err,
	}
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends one request. Any non-2xx status is returned as *Error; a 401
// additionally invalidates the token the request was sent with. Nothing
// is retried.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	token := c.resolveToken(ctx)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := transportError(method, path, err)
		log.Warnw("Request failed", "kind", apiErr.Kind.String(), "error", err, "duration", time.Since(start))
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		apiErr := transportError(method, path, err)
		log.Warnw("Failed to read response", "status", resp.StatusCode, "error", err)
		return nil, apiErr
	}

	log.Debugw("Response", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(method, path, resp.StatusCode, data)
		log.Warnw("API error", "status", resp.StatusCode, "kind", apiErr.Kind.String(), "message", apiErr.Message)

		if apiErr.Kind == KindAuthentication && c.tokens != nil {
			// Run even if the caller's context is already done.
			if err := c.tokens.Invalidate(context.WithoutCancel(ctx), token); err != nil {
				log.Errorw("Failed to clear session after 401", "error", err)
			}
		}
		return nil, apiErr
	}

	return &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// resolveToken never blocks longer than tokenTimeout; on timeout the
// request goes out without a token.
func (c *Client) resolveToken(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}

	tctx, cancel := context.WithTimeout(ctx, c.tokenTimeout)
	defer cancel()

	result := make(chan string, 1)
	go func() {
		token, ok := c.tokens.GetToken(tctx)
		if !ok {
			token = ""
		}
		result <- token
	}()

	select {
	case token := <-result:
		return token
	case <-tctx.Done():
		c.logger.Warnw("Token lookup timed out, sending request without token")
		return ""
	}
}

func transportError(method, path string, err error) *Error {
	kind := KindNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Method: method, Path: path, Err: err}
}

// Package client performs logical requests against the dashboard backend,
// producing either a normalized payload or a classified error. It owns the
// header policy, the retry loop and the session-invalidation signal; callers
// never see a raw response.
package client

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Wass76/robotic-card-dashboard/internal/events"
	"github.com/Wass76/robotic-card-dashboard/internal/normalize"
	platformerrors "github.com/Wass76/robotic-card-dashboard/internal/platform/errors"
	"github.com/Wass76/robotic-card-dashboard/internal/session"
)

// DefaultLoginPath is the endpoint that must never receive an Authorization
// header, even when a stale token is stored locally.
const DefaultLoginPath = "/api/login"

// RetryPolicy controls automatic retry of transient failures.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	// NonIdempotent opts POST/PATCH into automatic retry for every request.
	// The safer per-request opt-in lives on RequestOptions.
	NonIdempotent bool
}

// Client issues requests against the backend.
type Client struct {
	baseURL   string
	loginPath string
	http      *http.Client
	timeout   time.Duration
	retry     RetryPolicy
	sess      *session.Manager
	norm      *normalize.Normalizer
	bus       *events.Bus
	logger    *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-request budget.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetryPolicy overrides retry behaviour.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithHTTPClient injects a transport, used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithBus routes the session-invalidation signal to a non-default bus.
func WithBus(b *events.Bus) Option {
	return func(c *Client) {
		if b != nil {
			c.bus = b
		}
	}
}

// WithNormalizer overrides the payload normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(c *Client) {
		if n != nil {
			c.norm = n
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLoginPath overrides the endpoint exempt from auth headers.
func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// New builds a Client. An empty baseURL keeps endpoints relative, for setups
// where a reverse proxy routes /api on the same origin.
func New(baseURL string, sess *session.Manager, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		loginPath: DefaultLoginPath,
		timeout:   30 * time.Second,
		retry: RetryPolicy{
			MaxRetries: 3,
			BaseDelay:  time.Second,
		},
		sess:   sess,
		norm:   normalize.New(),
		bus:    events.Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// The per-request context carries the deadline; the transport
		// itself stays unbounded so overrides can extend the budget.
		c.http = &http.Client{}
	}
	return c
}

// RequestOptions tune a single request.
type RequestOptions struct {
	Headers map[string]string
	// SkipAuth suppresses the Authorization header.
	SkipAuth bool
	// RawEnvelope returns the full {code, message, data} response instead
	// of unwrapping it; the login flow needs the sibling envelope fields.
	RawEnvelope bool
	// RetryNonIdempotent opts this request into automatic retry even for
	// POST/PATCH.
	RetryNonIdempotent bool
	// Timeout overrides the client budget for this request.
	Timeout time.Duration
}

// Do performs one logical request: resolve URL, attach headers, serialize
// the body, send under the timeout budget, classify the response, retry
// transient failures, and shape the payload. The returned value is a
// canonical record tree (map[string]any / []any / scalar).
func (c *Client) Do(ctx context.Context, method, endpoint string, body any, opts *RequestOptions) (any, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	url := c.resolveURL(endpoint)
	payload, err := c.encodeBody(method, body)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindClient, "client.do", "encode request body", err)
	}

	requestID := uuid.NewString()
	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		c.logger.Debug("api request",
			"method", method, "endpoint", endpoint, "attempt", attempt, "request_id", requestID)

		result, err := c.attempt(ctx, method, url, endpoint, payload, opts, requestID, timeout)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !c.shouldRetry(err, method, opts, attempt) {
			break
		}

		delay := c.retry.BaseDelay << attempt
		c.logger.Warn("retrying request",
			"method", method, "endpoint", endpoint,
			"attempt", attempt+1, "max", c.retry.MaxRetries, "delay", delay)

		select {
		case <-ctx.Done():
			// Cancellation stops the retry chain; prior attempts stand.
			return nil, cancelledError(endpoint, ctx.Err())
		case <-time.After(delay):
		}
	}

	c.logger.Debug("api request failed",
		"method", method, "endpoint", endpoint, "request_id", requestID, "error", lastErr)
	return nil, lastErr
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, opts *RequestOptions) (any, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, endpoint string, body any, opts *RequestOptions) (any, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body, opts)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, endpoint string, body any, opts *RequestOptions) (any, error) {
	return c.Do(ctx, http.MethodPut, endpoint, body, opts)
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, endpoint string, body any, opts *RequestOptions) (any, error) {
	return c.Do(ctx, http.MethodPatch, endpoint, body, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, opts *RequestOptions) (any, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, opts)
}

// Session exposes the token manager for callers that own the login flow.
func (c *Client) Session() *session.Manager {
	return c.sess
}

// Bus exposes the event bus carrying the session-invalidation signal.
func (c *Client) Bus() *events.Bus {
	return c.bus
}

func (c *Client) resolveURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	path := endpoint
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if c.baseURL == "" {
		return path
	}
	return c.baseURL + path
}

func (c *Client) isLoginEndpoint(endpoint string) bool {
	return endpoint == c.loginPath || strings.Contains(endpoint, c.loginPath)
}

func (c *Client) shouldRetry(err error, method string, opts *RequestOptions, attempt int) bool {
	if attempt >= c.retry.MaxRetries {
		return false
	}
	var typed *platformerrors.Error
	if !errors.As(err, &typed) {
		return false
	}
	switch typed.Kind {
	case platformerrors.KindCancelled, platformerrors.KindUnauthorized:
		return false
	case platformerrors.KindTimeout:
		// timeouts behave like 408
	case platformerrors.KindNetwork:
		return false
	default:
		if !retryableStatus(typed.StatusCode) {
			return false
		}
	}
	return c.methodRetryable(method, opts)
}

func (c *Client) methodRetryable(method string, opts *RequestOptions) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	default:
		return c.retry.NonIdempotent || opts.RetryNonIdempotent
	}
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func hasBody(method string, payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	return method != http.MethodGet && method != http.MethodHead
}

func bodyReader(method string, payload []byte) *bytes.Reader {
	if !hasBody(method, payload) {
		return bytes.NewReader(nil)
	}
	return bytes.NewReader(payload)
}

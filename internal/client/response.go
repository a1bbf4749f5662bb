package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Wass76/robotic-card-dashboard/internal/events"
	"github.com/Wass76/robotic-card-dashboard/internal/normalize"
	platformerrors "github.com/Wass76/robotic-card-dashboard/internal/platform/errors"
)

// Canned replacements for proxy error pages. Raw markup must never reach a
// caller.
var htmlStatusMessages = map[int]string{
	http.StatusInternalServerError: "Server error. Please try again.",
	http.StatusBadGateway:          "The server is currently unavailable. Please try again later.",
	http.StatusServiceUnavailable:  "The server is under maintenance. Please try again later.",
	http.StatusGatewayTimeout:      "The connection to the server timed out. Please try again.",
}

func (c *Client) encodeBody(method string, body any) ([]byte, error) {
	if body == nil || method == http.MethodGet || method == http.MethodHead {
		return nil, nil
	}
	// Round-trip through a value tree so outbound keys pass ToAPIShape
	// regardless of whether the caller handed us a struct or a map.
	raw, err := sonic.Marshal(body)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := sonic.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}
	return sonic.Marshal(c.norm.ToAPIShape(tree))
}

func (c *Client) attempt(
	ctx context.Context,
	method, url, endpoint string,
	payload []byte,
	opts *RequestOptions,
	requestID string,
	timeout time.Duration,
) (any, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if hasBody(method, payload) {
		reader = bodyReader(method, payload)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindClient, "client.do", "build request", err)
	}

	c.applyHeaders(req, method, endpoint, payload, opts, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(ctx, reqCtx, endpoint, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(ctx, reqCtx, endpoint, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.handleUnauthorized(ctx, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.classifyErrorResponse(resp, bodyBytes)
	}
	return c.decodeSuccess(resp, bodyBytes, endpoint, opts)
}

func (c *Client) applyHeaders(
	req *http.Request,
	method, endpoint string,
	payload []byte,
	opts *RequestOptions,
	requestID string,
) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	// The login endpoint must never carry a stale credential.
	if !opts.SkipAuth && !c.isLoginEndpoint(endpoint) {
		if token := c.sess.GetToken(req.Context()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if hasBody(method, payload) {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
}

func (c *Client) handleUnauthorized(ctx context.Context, endpoint string) error {
	// Fire the session-invalidation signal whether or not anyone listens,
	// and drop the rejected credential so the next request starts clean.
	c.bus.PublishUnauthorized(events.Unauthorized{
		Endpoint:   endpoint,
		StatusCode: http.StatusUnauthorized,
	})
	c.sess.ClearToken(ctx)
	return platformerrors.New(
		platformerrors.KindUnauthorized,
		"client.do",
		"Your session is no longer valid. Please sign in again.",
	).WithStatus(http.StatusUnauthorized)
}

func (c *Client) classifyTransportError(parent, attempt context.Context, endpoint string, err error) error {
	if parent.Err() != nil {
		return cancelledError(endpoint, parent.Err())
	}
	if attempt.Err() != nil || errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return platformerrors.Wrap(
			platformerrors.KindTimeout,
			"client.do",
			"The request timed out. Please try again.",
			err,
		).WithStatus(http.StatusRequestTimeout)
	}
	return platformerrors.Wrap(
		platformerrors.KindNetwork,
		"client.do",
		"Cannot reach the server.",
		err,
	)
}

func (c *Client) classifyErrorResponse(resp *http.Response, body []byte) error {
	status := resp.StatusCode
	kind := platformerrors.KindClient
	if status >= 500 {
		kind = platformerrors.KindServer
	}
	contentType := resp.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "application/json"):
		var payload any
		if err := sonic.Unmarshal(body, &payload); err == nil {
			return platformerrors.New(kind, "client.do", serverMessage(payload, status)).
				WithStatus(status).
				WithPayload(payload)
		}
	case strings.Contains(contentType, "text/html"):
		message, ok := htmlStatusMessages[status]
		if !ok {
			message = fmt.Sprintf("Connection error (%d).", status)
		}
		return platformerrors.New(platformerrors.KindUpstreamHTML, "client.do", message).
			WithStatus(status)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return platformerrors.New(kind, "client.do", fmt.Sprintf("Server error (%d).", status)).
			WithStatus(status)
	}
	return platformerrors.New(kind, "client.do", text).WithStatus(status)
}

func (c *Client) decodeSuccess(resp *http.Response, body []byte, endpoint string, opts *RequestOptions) (any, error) {
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return string(body), nil
	}
	if len(body) == 0 {
		return nil, nil
	}

	var tree any
	if err := sonic.Unmarshal(body, &tree); err != nil {
		return nil, platformerrors.Wrap(
			platformerrors.KindServer,
			"client.do",
			"Malformed server response.",
			err,
		).WithStatus(resp.StatusCode)
	}
	// The login response stays whole: callers need the envelope siblings
	// alongside data, whichever field holds the token.
	if !opts.RawEnvelope && !c.isLoginEndpoint(endpoint) {
		tree = normalize.UnwrapEnvelope(tree)
	}
	return c.norm.ToCanonical(tree), nil
}

func serverMessage(payload any, status int) string {
	if m, ok := payload.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := m["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Server error (%d).", status)
}

func cancelledError(endpoint string, cause error) error {
	return platformerrors.Wrap(
		platformerrors.KindCancelled,
		"client.do",
		fmt.Sprintf("request to %s was cancelled", endpoint),
		cause,
	)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

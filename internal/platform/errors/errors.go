package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNetwork      Kind = "network"
	KindTimeout      Kind = "timeout"
	KindUnauthorized Kind = "unauthorized"
	KindClient       Kind = "client"
	KindServer       Kind = "server"
	KindUpstreamHTML Kind = "upstream_html"
	KindCancelled    Kind = "cancelled"
	KindConfig       Kind = "config"
	KindStorage      Kind = "storage"
	KindUnknown      Kind = "unknown"
)

// Error is the single error shape that crosses the client boundary. Message
// is always safe to display; raw server payloads stay in Payload.
type Error struct {
	Kind       Kind
	Op         string
	Message    string
	StatusCode int
	Payload    any
	Cause      error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Cause != nil:
		return fmt.Sprintf("[%s:%s] %s (status %d): %v", e.Kind, e.Op, e.Message, e.StatusCode, e.Cause)
	case e.StatusCode != 0:
		return fmt.Sprintf("[%s:%s] %s (status %d)", e.Kind, e.Op, e.Message, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	default:
		return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsNetworkFailure reports whether no response was received at all. Timeouts
// count: callers distinguish them via KindTimeout when they need to.
func (e *Error) IsNetworkFailure() bool {
	return e.Kind == KindNetwork || e.Kind == KindTimeout
}

// IsServerHTMLFailure reports whether the failure was a non-JSON error page
// from an edge proxy; Message then carries a canned replacement.
func (e *Error) IsServerHTMLFailure() bool {
	return e.Kind == KindUpstreamHTML
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

// WithStatus attaches the HTTP status observed on the failing attempt.
func (e *Error) WithStatus(status int) *Error {
	e.StatusCode = status
	return e
}

// WithPayload attaches the decoded server error body.
func (e *Error) WithPayload(payload any) *Error {
	e.Payload = payload
	return e
}

// IsKind checks whether any error in the chain matches the provided kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	for err != nil {
		if errors.As(err, &target) {
			return target.Kind == kind
		}
		err = errors.Unwrap(err)
	}
	return false
}

// StatusOf extracts the HTTP status from a classified error, 0 when absent.
func StatusOf(err error) int {
	var target *Error
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}

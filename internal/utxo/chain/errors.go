package chain

import (
	"errors"
	"fmt"
)

// Error kinds. Wrapped errors match them with errors.Is.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamStatus      = errors.New("upstream status error")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrStoreWrite          = errors.New("store write error")
)

const bodySnippetLimit = 256

// UpstreamError describes a failed upstream call with enough context to diagnose drift.
type UpstreamError struct {
	Kind       error
	Operation  string
	URL        string
	StatusCode int
	RPCCode    int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Operation, e.Kind)
	if e.URL != "" {
		msg += " url=" + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status=%d", e.StatusCode)
	}
	if e.RPCCode != 0 {
		msg += fmt.Sprintf(" rpc_code=%d", e.RPCCode)
	}
	if e.Body != "" {
		msg += fmt.Sprintf(" body=%q", e.Body)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Unavailable builds a transport-level failure.
func Unavailable(operation, url string, err error) *UpstreamError {
	return &UpstreamError{Kind: ErrUpstreamUnavailable, Operation: operation, URL: url, Err: err}
}

// StatusError builds a non-success response failure.
func StatusError(operation, url string, code int, body []byte) *UpstreamError {
	return &UpstreamError{Kind: ErrUpstreamStatus, Operation: operation, URL: url, StatusCode: code, Body: Snippet(body)}
}

// RPCFailure builds a failure reported in a JSON-RPC error object. code is the RPC error code, not an HTTP status.
func RPCFailure(operation, url string, code int, message string) *UpstreamError {
	return &UpstreamError{Kind: ErrUpstreamStatus, Operation: operation, URL: url, RPCCode: code, Body: Snippet([]byte(message))}
}

// Malformed builds a failure for a body that does not match the expected shape.
func Malformed(operation, url string, body []byte, err error) *UpstreamError {
	return &UpstreamError{Kind: ErrMalformedResponse, Operation: operation, URL: url, Body: Snippet(body), Err: err}
}

// Snippet truncates a response body for logging.
func Snippet(body []byte) string {
	if len(body) > bodySnippetLimit {
		return string(body[:bodySnippetLimit]) + "..."
	}
	return string(body)
}

// StatusCode extracts the HTTP status of an upstream status error, or 0.
func StatusCode(err error) int {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return 0
}

// StoreError wraps a store failure with the operation and table it happened on.
type StoreError struct {
	Kind      error
	Operation string
	Table     string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v: %v", e.Operation, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Operation, e.Table, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// StoreUnavailable marks a read or connection failure that prevents the pipeline from deciding what to write.
func StoreUnavailable(operation, table string, err error) *StoreError {
	return &StoreError{Kind: ErrStoreUnavailable, Operation: operation, Table: table, Err: err}
}

// StoreWrite marks a single-row insert or update failure.
func StoreWrite(operation, table string, err error) *StoreError {
	return &StoreError{Kind: ErrStoreWrite, Operation: operation, Table: table, Err: err}
}

// Kind returns a short label for the error class, used for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrUpstreamStatus):
		return "upstream_status"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrStoreWrite):
		return "store_write"
	default:
		return "other"
	}
}

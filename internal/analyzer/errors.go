package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
)

// ErrorKind classifies a failed submission. Every transport failure is
// converted to one of these at the client boundary; raw transport errors
// never reach the display layer.
type ErrorKind int

const (
	// KindUnreachable means the backend could not be contacted at all.
	KindUnreachable ErrorKind = iota
	// KindTimedOut means the request exceeded the configured bound.
	KindTimedOut
	// KindRejected carries a domain error reported by the backend.
	KindRejected
	// KindUnexpected is everything else.
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindTimedOut:
		return "timed_out"
	case KindRejected:
		return "rejected"
	default:
		return "unexpected"
	}
}

// RequestError is the terminal outcome of a failed submission. It is never
// retried automatically; the user resubmits.
type RequestError struct {
	Kind    ErrorKind
	Detail  string
	BaseURL string
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindUnreachable:
		return fmt.Sprintf("cannot connect to the analysis backend at %s", e.BaseURL)
	case KindTimedOut:
		return "analysis request timed out"
	case KindRejected:
		return fmt.Sprintf("backend rejected the request: %s", e.Detail)
	default:
		return fmt.Sprintf("unexpected error: %s", e.Detail)
	}
}

// Remediation returns the actionable guidance shown alongside the error.
func (e *RequestError) Remediation() string {
	switch e.Kind {
	case KindUnreachable:
		return fmt.Sprintf("Check that the backend is running and listening on %s.", e.BaseURL)
	case KindTimedOut:
		return "The issue might be large or the backend slow. Try again, or raise the timeout."
	case KindRejected:
		return "The backend could not analyze this issue. Check the repository URL and issue number."
	default:
		return "Re-run with --log-level debug for details."
	}
}

// classifyTransport maps a failed round trip onto the error taxonomy.
// Timeouts are checked before connection errors: a timed-out dial is still
// a timeout from the user's point of view.
func classifyTransport(err error, baseURL string) *RequestError {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &RequestError{Kind: KindTimedOut, BaseURL: baseURL}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &RequestError{Kind: KindTimedOut, BaseURL: baseURL}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &RequestError{Kind: KindUnreachable, BaseURL: baseURL}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &RequestError{Kind: KindUnreachable, BaseURL: baseURL}
	}
	detail := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		detail = urlErr.Err.Error()
	}
	return &RequestError{Kind: KindUnexpected, Detail: detail, BaseURL: baseURL}
}

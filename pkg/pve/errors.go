package pve

import (
	"errors"
	"fmt"
)

// Kind classifies an upstream failure. The set is closed: every failed call
// into the Proxmox API terminates in exactly one of these.
type Kind int

// Failure classes.
const (
	// KindAPI is a non-2xx HTTP response from the API.
	KindAPI Kind = iota

	// KindAuth is an authentication failure (login rejected, or no
	// credentials configured at all).
	KindAuth

	// KindNotFound is a missing resource (VM, node, storage, ...).
	KindNotFound

	// KindTimeout is an operation that exceeded its deadline, typically a
	// task poll.
	KindTimeout

	// KindJSON is a response body that could not be decoded.
	KindJSON

	// KindTransport is a network-level failure (connect refused, TLS, ...).
	KindTransport

	// KindInvalidURL is a host or path that does not form a valid URL.
	KindInvalidURL

	// KindInternal is a failure inside this client.
	KindInternal
)

// String returns the kind name for logs and error text.
func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindTimeout:
		return "timeout"
	case KindJSON:
		return "json"
	case KindTransport:
		return "transport"
	case KindInvalidURL:
		return "invalid_url"
	default:
		return "internal"
	}
}

// Error is the single error type produced by this package. Status and Body
// are populated for KindAPI only.
type Error struct {
	Kind   Kind
	Detail string
	Status int
	Body   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("API request failed: %d - %s", e.Status, e.Body)
	case KindAuth:
		return "authentication failed: " + e.Detail
	case KindNotFound:
		return "resource not found: " + e.Detail
	case KindTimeout:
		return "operation timed out: " + e.Detail
	case KindJSON:
		return "JSON parse error: " + e.Detail
	case KindTransport:
		return "network/request error: " + e.Detail
	case KindInvalidURL:
		return "invalid URL: " + e.Detail
	default:
		return "internal error: " + e.Detail
	}
}

// As extracts a *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func apiError(status int, body string) *Error {
	return &Error{Kind: KindAPI, Status: status, Body: body}
}

func authError(format string, args ...any) *Error {
	return &Error{Kind: KindAuth, Detail: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf(format, args...)}
}

func timeoutError(format string, args ...any) *Error {
	return &Error{Kind: KindTimeout, Detail: fmt.Sprintf(format, args...)}
}

func jsonError(format string, args ...any) *Error {
	return &Error{Kind: KindJSON, Detail: fmt.Sprintf(format, args...)}
}

func transportError(format string, args ...any) *Error {
	return &Error{Kind: KindTransport, Detail: fmt.Sprintf(format, args...)}
}

func urlError(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidURL, Detail: fmt.Sprintf(format, args...)}
}

func internalError(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Detail: fmt.Sprintf(format, args...)}
}

// Package http provides the shared error vocabulary of the Jira client.
//
// Every error returned by the request pipeline unwraps to exactly one of the
// sentinels below, so callers can branch with errors.Is without depending on
// the concrete error type.
package http

import (
	"errors"
	"net/http"
)

// Standard sentinel errors for pipeline outcomes.
var (
	// ErrTransport indicates the request never produced a response
	// (connection, DNS, TLS, timeout or cancellation).
	ErrTransport = errors.New("transport failure")

	// ErrSerialization indicates a JSON encode or decode failure.
	ErrSerialization = errors.New("serialization failure")

	// ErrUnauthorized indicates invalid or missing authentication.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the user lacks permission for the operation.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrMethodNotAllowed indicates the endpoint does not accept the verb.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrPreconditionFailed indicates a conditional request (If-Match) failed.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrBadRequest indicates any other client error.
	ErrBadRequest = errors.New("bad request")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")
)

// SentinelForStatus returns the sentinel matching an HTTP status code, or nil
// for statuses on the success path (1xx, 2xx, 3xx).
func SentinelForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case http.StatusPreconditionFailed:
		return ErrPreconditionFailed
	}
	switch {
	case code >= 400 && code < 500:
		return ErrBadRequest
	case code >= 500:
		return ErrServerError
	default:
		return nil
	}
}

// IsNotFound reports whether the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden reports whether the error indicates permission was denied.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsTransport reports whether the error happened before a response arrived.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsSerialization reports whether the error is a JSON encode/decode failure.
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}

// IsClientError reports whether the error came from a 4xx response.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMethodNotAllowed) ||
		errors.Is(err, ErrPreconditionFailed) ||
		errors.Is(err, ErrBadRequest)
}

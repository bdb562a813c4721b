package errors

import (
	"errors"
	"strings"

	jirahttp "github.com/randalmurphal/jirac/http"
)

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNotAuthenticated) || jirahttp.IsUnauthorized(err)
}

// IsConnectionError checks if an error is connection-related.
// This includes TLS errors, timeouts, and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) || jirahttp.IsTransport(err) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsPermissionError checks if an error is permission-related.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrPermissionDenied) || jirahttp.IsForbidden(err)
}

// IsNotFoundError checks if an error means the resource does not exist.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNotFound) || jirahttp.IsNotFound(err)
}

// IsConfigError checks if jirac is missing configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsConfigError(err):
		return 2
	case IsAuthError(err), IsPermissionError(err):
		return 3
	case IsNotFoundError(err):
		return 4
	case IsConnectionError(err):
		return 5
	default:
		return 1
	}
}

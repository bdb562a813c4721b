package errors

import "errors"

// CLI-level errors with actionable guidance.
var (
	// ErrNotConfigured indicates no Jira URL or credentials are set.
	ErrNotConfigured = errors.New("jira not configured")

	// ErrNotAuthenticated indicates Jira rejected the credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates the requested Jira resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStaleWrite indicates an If-Match precondition failed.
	ErrStaleWrite = errors.New("resource changed since it was read")

	// ErrInvalidRequest indicates Jira refused the request as malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConnectionFailed indicates the server is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrServerFailure indicates Jira answered with a 5xx status.
	ErrServerFailure = errors.New("jira server error")
)

package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/jirac/jira"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the CLI sentinel
	Err error

	// Cause is the pipeline error that triggered it (optional)
	Cause error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ErrorMessenger provides customizable error messages.
type ErrorMessenger interface {
	NotConfiguredMessage() (message, suggestion string)
	AuthErrorMessage(serverURL string) (message, suggestion string)
	PermissionDeniedMessage(endpoint string) (message, suggestion string)
	NotFoundMessage(endpoint string) (message, suggestion string)
	StaleWriteMessage(endpoint string) (message, suggestion string)
	InvalidRequestMessage() (message, suggestion string)
	ConnectionErrorMessage(serverURL string) (message, suggestion string)
	TLSErrorMessage(serverURL string) (message, suggestion string)
	TimeoutErrorMessage(serverURL string) (message, suggestion string)
	ServerErrorMessage(serverURL string, status int) (message, suggestion string)
}

// DefaultMessenger provides the jirac messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) NotConfiguredMessage() (string, string) {
	return "Jira is not configured.",
		"Run 'jirac config set url https://your-site.atlassian.net' and set auth.type with its credentials,\nor export JIRAC_URL and JIRAC_AUTH_TYPE."
}

func (m DefaultMessenger) AuthErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Jira at %s rejected the credentials.", serverURL),
		"Check auth.type and its credentials. Cloud sites need an email and API token."
}

func (m DefaultMessenger) PermissionDeniedMessage(endpoint string) (string, string) {
	return fmt.Sprintf("You don't have permission to access %s.", endpoint),
		"Ask a Jira administrator for access."
}

func (m DefaultMessenger) NotFoundMessage(endpoint string) (string, string) {
	return fmt.Sprintf("Nothing found at %s.", endpoint),
		"Check the key or id, and that your account can see it."
}

func (m DefaultMessenger) StaleWriteMessage(endpoint string) (string, string) {
	return fmt.Sprintf("%s changed since it was read.", endpoint),
		"Fetch it again and retry with the new ETag."
}

func (m DefaultMessenger) InvalidRequestMessage() (string, string) {
	return "Jira rejected the request.", ""
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to Jira at %s", serverURL),
		"Check that:\n  - The URL is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Request to %s timed out", serverURL),
		"Raise http.timeout or try again in a moment."
}

func (m DefaultMessenger) ServerErrorMessage(serverURL string, status int) (string, string) {
	return fmt.Sprintf("Jira at %s failed with status %d.", serverURL, status),
		"This is a server-side problem. Try again later."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
	ServerURL string
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

// WithServerURL names the Jira instance in messages.
func WithServerURL(url string) Option {
	return func(c *WrapConfig) {
		c.ServerURL = url
	}
}

func getConfig(opts []Option) *WrapConfig {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
		ServerURL: "the configured server",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Wrap turns a jira pipeline error into a CLIError. Errors that are not
// pipeline errors are returned unchanged.
func Wrap(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	jiraErr, ok := jira.AsError(err)
	if !ok {
		return wrapConfigError(err, opts)
	}

	cfg := getConfig(opts)
	m := cfg.Messenger
	endpoint := jiraErr.Endpoint

	build := func(sentinel error, msg, suggestion, details string) error {
		return &CLIError{Err: sentinel, Cause: err, Message: msg, Suggestion: suggestion, Details: details}
	}

	switch jiraErr.Kind {
	case jira.KindUnauthorized:
		msg, suggestion := m.AuthErrorMessage(cfg.ServerURL)
		return build(ErrNotAuthenticated, msg, suggestion, "")
	case jira.KindForbidden:
		msg, suggestion := m.PermissionDeniedMessage(endpoint)
		return build(ErrPermissionDenied, msg, suggestion, "")
	case jira.KindNotFound:
		msg, suggestion := m.NotFoundMessage(endpoint)
		return build(ErrNotFound, msg, suggestion, "")
	case jira.KindPreconditionFailed:
		msg, suggestion := m.StaleWriteMessage(endpoint)
		return build(ErrStaleWrite, msg, suggestion, "")
	case jira.KindFault, jira.KindMethodNotAllowed:
		msg, suggestion := m.InvalidRequestMessage()
		return build(ErrInvalidRequest, msg, suggestion, jiraErr.Body.String())
	case jira.KindServerError:
		msg, suggestion := m.ServerErrorMessage(cfg.ServerURL, jiraErr.StatusCode)
		return build(ErrServerFailure, msg, suggestion, "")
	case jira.KindTransport:
		return WrapConnectionError(err, opts...)
	default:
		return err
	}
}

// wrapConfigError maps configuration validation failures.
func wrapConfigError(err error, opts []Option) error {
	if errors.Is(err, jira.ErrConfigURLRequired) || errors.Is(err, jira.ErrConfigAuthTypeRequired) {
		msg, suggestion := getConfig(opts).Messenger.NotConfiguredMessage()
		return &CLIError{Err: ErrNotConfigured, Cause: err, Message: msg, Suggestion: suggestion}
	}
	return err
}

// WrapConnectionError wraps transport failures with helpful guidance.
func WrapConnectionError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	cfg := getConfig(opts)
	m := cfg.Messenger

	var msg, suggestion, details string
	switch {
	case strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509"):
		msg, suggestion = m.TLSErrorMessage(cfg.ServerURL)
		details = err.Error()
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		msg, suggestion = m.TimeoutErrorMessage(cfg.ServerURL)
	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp"):
		msg, suggestion = m.ConnectionErrorMessage(cfg.ServerURL)
	default:
		return err
	}

	return &CLIError{
		Err:        ErrConnectionFailed,
		Cause:      err,
		Message:    msg,
		Suggestion: suggestion,
		Details:    details,
	}
}

// NewNotConfiguredError creates an error for a missing URL or auth type.
func NewNotConfiguredError(opts ...Option) error {
	msg, suggestion := getConfig(opts).Messenger.NotConfiguredMessage()
	return &CLIError{
		Err:        ErrNotConfigured,
		Message:    msg,
		Suggestion: suggestion,
	}
}

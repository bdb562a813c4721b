package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	jirahttp "github.com/randalmurphal/jirac/http"
	"github.com/randalmurphal/jirac/jira"
)

func TestCLIError(t *testing.T) {
	cause := errors.New("underlying")
	err := &CLIError{
		Err:        ErrNotAuthenticated,
		Cause:      cause,
		Message:    "Test message",
		Suggestion: "Test suggestion",
		Details:    "Test details",
	}

	want := "Test message\nTest details\n\nTest suggestion"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Error("expected error to unwrap to ErrNotAuthenticated")
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to unwrap to its cause")
	}
}

func TestCLIError_MinimalFields(t *testing.T) {
	err := &CLIError{
		Err:     ErrConnectionFailed,
		Message: "Connection failed",
	}

	if got := err.Error(); got != "Connection failed" {
		t.Errorf("expected 'Connection failed', got %q", got)
	}
}

func pipelineError(kind jira.ErrorKind, status int) error {
	return &jira.Error{Kind: kind, StatusCode: status, Method: "GET", Endpoint: "/project/EX"}
}

func TestWrap(t *testing.T) {
	fault := &jira.Error{
		Kind:       jira.KindFault,
		StatusCode: http.StatusBadRequest,
		Body:       &jira.ErrorBody{Errors: map[string]string{"summary": "required"}},
	}

	tests := []struct {
		name        string
		err         error
		sentinel    error
		wantSubstr  string
		wantDetails string
	}{
		{"unauthorized", pipelineError(jira.KindUnauthorized, 401), ErrNotAuthenticated, "rejected the credentials", ""},
		{"forbidden", pipelineError(jira.KindForbidden, 403), ErrPermissionDenied, "permission to access /project/EX", ""},
		{"not found", pipelineError(jira.KindNotFound, 404), ErrNotFound, "Nothing found at /project/EX", ""},
		{"precondition", pipelineError(jira.KindPreconditionFailed, 412), ErrStaleWrite, "changed since it was read", ""},
		{"fault", fault, ErrInvalidRequest, "rejected the request", "summary: required"},
		{"server error", pipelineError(jira.KindServerError, 503), ErrServerFailure, "status 503", ""},
		{
			name:       "transport refused",
			err:        &jira.Error{Kind: jira.KindTransport, Err: errors.New("dial tcp 127.0.0.1:1: connection refused")},
			sentinel:   ErrConnectionFailed,
			wantSubstr: "Cannot connect to Jira at https://jira.example.com",
		},
		{
			name:        "transport tls",
			err:         &jira.Error{Kind: jira.KindTransport, Err: errors.New("x509: certificate signed by unknown authority")},
			sentinel:    ErrConnectionFailed,
			wantSubstr:  "TLS/certificate error",
			wantDetails: "x509",
		},
		{
			name:       "transport timeout",
			err:        &jira.Error{Kind: jira.KindTransport, Err: errors.New("context deadline exceeded")},
			sentinel:   ErrConnectionFailed,
			wantSubstr: "timed out",
		},
		{"missing url", fmt.Errorf("load config: %w", jira.ErrConfigURLRequired), ErrNotConfigured, "not configured", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, WithServerURL("https://jira.example.com"))

			var cliErr *CLIError
			if !errors.As(wrapped, &cliErr) {
				t.Fatalf("Wrap() = %v, want *CLIError", wrapped)
			}
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("Wrap() does not match %v", tt.sentinel)
			}
			if !strings.Contains(cliErr.Message, tt.wantSubstr) {
				t.Errorf("Message = %q, want substring %q", cliErr.Message, tt.wantSubstr)
			}
			if tt.wantDetails != "" && !strings.Contains(cliErr.Details, tt.wantDetails) {
				t.Errorf("Details = %q, want substring %q", cliErr.Details, tt.wantDetails)
			}
		})
	}
}

func TestWrap_KeepsPipelineSentinels(t *testing.T) {
	wrapped := Wrap(pipelineError(jira.KindNotFound, 404))

	if !errors.Is(wrapped, jirahttp.ErrNotFound) {
		t.Error("wrapped error should still match the http sentinel")
	}
	if jira.KindOf(wrapped) != jira.KindNotFound {
		t.Errorf("KindOf() = %v, want not found", jira.KindOf(wrapped))
	}
}

func TestWrap_Passthrough(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	plain := errors.New("something else")
	if got := Wrap(plain); got != plain {
		t.Errorf("Wrap() = %v, want unchanged error", got)
	}

	odd := &jira.Error{Kind: jira.KindTransport, Err: errors.New("unexpected EOF")}
	if got := Wrap(odd); got != error(odd) {
		t.Errorf("unrecognised transport error should pass through, got %v", got)
	}
}

type customMessenger struct {
	DefaultMessenger
}

func (customMessenger) NotFoundMessage(endpoint string) (string, string) {
	return "custom: " + endpoint, "custom suggestion"
}

func TestWrap_CustomMessenger(t *testing.T) {
	wrapped := Wrap(pipelineError(jira.KindNotFound, 404), WithMessenger(customMessenger{}))

	var cliErr *CLIError
	if !errors.As(wrapped, &cliErr) {
		t.Fatal("expected *CLIError")
	}
	if cliErr.Message != "custom: /project/EX" || cliErr.Suggestion != "custom suggestion" {
		t.Errorf("CLIError = %+v", cliErr)
	}
}

func TestNewNotConfiguredError(t *testing.T) {
	err := NewNotConfiguredError()

	if !IsConfigError(err) {
		t.Error("expected IsConfigError")
	}
	if !strings.Contains(err.Error(), "jirac config set url") {
		t.Errorf("Error() = %q, want config hint", err.Error())
	}
}

func TestPredicates(t *testing.T) {
	unauthorized := pipelineError(jira.KindUnauthorized, 401)
	forbidden := pipelineError(jira.KindForbidden, 403)
	notFound := pipelineError(jira.KindNotFound, 404)
	transport := &jira.Error{Kind: jira.KindTransport, Err: errors.New("EOF")}

	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"auth pipeline", IsAuthError, unauthorized, true},
		{"auth wrapped", IsAuthError, Wrap(unauthorized), true},
		{"auth other", IsAuthError, forbidden, false},
		{"auth nil", IsAuthError, nil, false},
		{"permission pipeline", IsPermissionError, forbidden, true},
		{"permission other", IsPermissionError, notFound, false},
		{"not found pipeline", IsNotFoundError, notFound, true},
		{"not found wrapped", IsNotFoundError, Wrap(notFound), true},
		{"connection transport kind", IsConnectionError, transport, true},
		{"connection by text", IsConnectionError, errors.New("dial tcp: no such host"), true},
		{"connection other", IsConnectionError, notFound, false},
		{"config", IsConfigError, NewNotConfiguredError(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"config", NewNotConfiguredError(), 2},
		{"auth", pipelineError(jira.KindUnauthorized, 401), 3},
		{"forbidden", pipelineError(jira.KindForbidden, 403), 3},
		{"not found", pipelineError(jira.KindNotFound, 404), 4},
		{"transport", &jira.Error{Kind: jira.KindTransport}, 5},
		{"other", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	jirahttp "github.com/randalmurphal/jirac/http"
)

// Validation errors raised before a request is sent.
var (
	ErrConfigURLRequired       = errors.New("jira url is required")
	ErrConfigAuthTypeRequired  = errors.New("jira auth type is required")
	ErrConfigAuthTypeInvalid   = errors.New("jira auth type must be basic, api_token, bearer, pat, or oauth2")
	ErrConfigAPITokenAuth      = errors.New("api_token auth requires email and token")
	ErrConfigBasicAuth         = errors.New("basic auth requires username and password")
	ErrConfigBearerAuth        = errors.New("bearer auth requires token")
	ErrConfigOAuth2Auth        = errors.New("oauth2 auth requires access_token")
	ErrConfigAPIVersionInvalid = errors.New("api_version must be 2 or 3")

	ErrApplicationRoleKeyRequired = errors.New("application role key is required")
	ErrIssueKeyRequired           = errors.New("issue key is required")
	ErrTransitionNotFound         = errors.New("transition not found for issue")
	ErrTransitionIDRequired       = errors.New("transition id is required")
	ErrVersionIDRequired          = errors.New("version id is required")
)

// ErrorKind classifies a pipeline failure.
type ErrorKind int

// Error kinds. Exactly one kind applies to each failed call.
const (
	KindTransport ErrorKind = iota + 1
	KindSerialization
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindPreconditionFailed
	KindFault
	KindServerError
)

var kindNames = map[ErrorKind]string{
	KindTransport:          "transport",
	KindSerialization:      "serialization",
	KindUnauthorized:       "unauthorized",
	KindForbidden:          "forbidden",
	KindNotFound:           "not found",
	KindMethodNotAllowed:   "method not allowed",
	KindPreconditionFailed: "precondition failed",
	KindFault:              "fault",
	KindServerError:        "server error",
}

// String returns a human readable kind name.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return jirahttp.ErrTransport
	case KindSerialization:
		return jirahttp.ErrSerialization
	case KindUnauthorized:
		return jirahttp.ErrUnauthorized
	case KindForbidden:
		return jirahttp.ErrForbidden
	case KindNotFound:
		return jirahttp.ErrNotFound
	case KindMethodNotAllowed:
		return jirahttp.ErrMethodNotAllowed
	case KindPreconditionFailed:
		return jirahttp.ErrPreconditionFailed
	case KindFault:
		return jirahttp.ErrBadRequest
	case KindServerError:
		return jirahttp.ErrServerError
	default:
		return nil
	}
}

// ErrorBody is Jira's structured error document.
type ErrorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

// String flattens the document into one line, field errors sorted by name.
func (b *ErrorBody) String() string {
	if b == nil {
		return ""
	}
	parts := append([]string(nil), b.ErrorMessages...)
	fields := make([]string, 0, len(b.Errors))
	for field := range b.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, field+": "+b.Errors[field])
	}
	return strings.Join(parts, "; ")
}

// Error is returned by every pipeline entry point and resource method.
type Error struct {
	Kind ErrorKind

	// StatusCode is the HTTP status, zero for transport failures and for
	// serialization failures that happened before a response arrived.
	StatusCode int

	// Body is the decoded error document (KindFault only).
	Body *ErrorBody

	// Raw is the unparsed response body for KindFault and KindServerError.
	Raw []byte

	Method   string
	Endpoint string

	// Err is the underlying cause for transport and serialization failures.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("jira ")
	sb.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (%d)", e.StatusCode)
	}
	if e.Endpoint != "" {
		sb.WriteString(" at ")
		if e.Method != "" {
			sb.WriteString(e.Method)
			sb.WriteByte(' ')
		}
		sb.WriteString(e.Endpoint)
	}
	if msg := e.Body.String(); msg != "" {
		sb.WriteString(": ")
		sb.WriteString(msg)
	} else if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes the kind's sentinel from the http package and the cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Classify maps a completed response to an error, or nil when the status is
// on the success path. 401, 403, 404, 405 and 412 map to named kinds whatever
// the body holds. Other 4xx statuses become KindFault with the decoded error
// document; a body that is not an error document yields KindSerialization.
// 5xx statuses become KindServerError without decoding the body.
func Classify(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, StatusCode: status}
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, StatusCode: status}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: status}
	case http.StatusMethodNotAllowed:
		return &Error{Kind: KindMethodNotAllowed, StatusCode: status}
	case http.StatusPreconditionFailed:
		return &Error{Kind: KindPreconditionFailed, StatusCode: status}
	}

	switch {
	case status >= 400 && status < 500:
		var doc ErrorBody
		if err := json.Unmarshal(body, &doc); err != nil {
			return &Error{
				Kind:       KindSerialization,
				StatusCode: status,
				Raw:        body,
				Err:        fmt.Errorf("decode error body: %w", err),
			}
		}
		return &Error{Kind: KindFault, StatusCode: status, Body: &doc, Raw: body}
	case status >= 500:
		return &Error{Kind: KindServerError, StatusCode: status, Raw: body}
	default:
		return nil
	}
}

// AsError extracts the pipeline error from err.
func AsError(err error) (*Error, bool) {
	var jiraErr *Error
	if errors.As(err, &jiraErr) {
		return jiraErr, true
	}
	return nil, false
}

// KindOf returns the kind of a pipeline error, or zero when err is not one.
func KindOf(err error) ErrorKind {
	if jiraErr, ok := AsError(err); ok {
		return jiraErr.Kind
	}
	return 0
}

// IsNotFound reports whether the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return jirahttp.IsNotFound(err)
}

// IsUnauthorized reports whether the error indicates authentication failed.
func IsUnauthorized(err error) bool {
	return jirahttp.IsUnauthorized(err)
}

// IsForbidden reports whether the error indicates permission was denied.
func IsForbidden(err error) bool {
	return jirahttp.IsForbidden(err)
}

// IsPreconditionFailed reports whether an If-Match style precondition failed.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, jirahttp.ErrPreconditionFailed)
}

// IsFault reports whether the error is an unclassified 4xx response.
func IsFault(err error) bool {
	return KindOf(err) == KindFault
}

package jira

import (
	"encoding/json"
	"net/http"
)

// Response pairs a decoded payload with the response metadata, so callers
// that need headers (an ETag to echo in If-Match, for example) keep them.
type Response[T any] struct {
	Data       T
	Header     http.Header
	StatusCode int
}

// ETag returns the ETag response header.
func (r *Response[T]) ETag() string {
	return r.Header.Get("ETag")
}

// String renders the payload as indented JSON.
func (r *Response[T]) String() string {
	return prettyJSON(r.Data)
}

// prettyJSON renders v as indented JSON for String methods.
func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(data)
}

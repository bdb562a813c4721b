package jira

import (
	"net/url"
	"sort"
	"strings"
)

// QueryOption is anything that contributes key/value pairs to a query string.
// New option kinds only need to implement Query; the encoder never changes.
type QueryOption interface {
	Query() map[string]string
}

// QueryMap is an ad hoc QueryOption backed by a plain map.
type QueryMap map[string]string

// Query implements QueryOption.
func (q QueryMap) Query() map[string]string {
	return q
}

// MergeOptions folds options left to right into one map. On key collision the
// later option wins. Nil options are skipped.
func MergeOptions(opts ...QueryOption) map[string]string {
	merged := make(map[string]string)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		for k, v := range opt.Query() {
			merged[k] = v
		}
	}
	return merged
}

// EncodeQuery renders a map as a query string fragment: "" for an empty map,
// otherwise "?k1=v1&k2=v2". Keys and values are escaped and emitted in sorted
// key order.
func EncodeQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(query[k]))
	}
	return sb.String()
}

// Expand is the comma-joined "expand" parameter shared by several endpoints.
// An empty Expand contributes nothing.
type Expand[T ~string] []T

// Query implements QueryOption.
func (e Expand[T]) Query() map[string]string {
	if len(e) == 0 {
		return nil
	}
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = string(v)
	}
	return map[string]string{"expand": strings.Join(parts, ",")}
}

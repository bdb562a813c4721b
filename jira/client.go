package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultAPIVersion is the REST API version used unless configured otherwise.
const DefaultAPIVersion = "2"

// Client sends requests to one Jira instance. It is safe for concurrent use:
// nothing on a Client changes after construction, and the With*/Add* methods
// return copies that share the transport.
type Client struct {
	host        string
	apiVersion  string
	transport   *resty.Client
	credentials Credentials
	headers     map[string]string
	query       map[string]string
	logger      *slog.Logger
	metrics     *Metrics
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying net/http client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.transport = newTransport(resty.NewWithClient(httpClient))
	}
}

// WithRestyClient sets a preconfigured resty client as transport.
func WithRestyClient(rc *resty.Client) ClientOption {
	return func(c *Client) {
		c.transport = rc
	}
}

// WithAPIVersion selects the REST API version ("2" or "3").
func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		c.apiVersion = strings.TrimPrefix(version, "v")
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records request counts and latencies on m.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHeaders sets default headers sent on every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		maps.Copy(c.headers, headers)
	}
}

// WithQuery sets default query parameters sent on every request.
func WithQuery(query map[string]string) ClientOption {
	return func(c *Client) {
		maps.Copy(c.query, query)
	}
}

// NewClient creates a client for the Jira instance at host
// (e.g. "https://jira.example.com").
func NewClient(host string, creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		host:        strings.TrimSuffix(host, "/"),
		apiVersion:  DefaultAPIVersion,
		credentials: creds,
		headers:     make(map[string]string),
		query:       make(map[string]string),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = newTransport(resty.New())
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// NewClientFromConfig validates cfg and creates a client from it.
func NewClientFromConfig(cfg *Config, opts ...ClientOption) (*Client, error) {
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}

	creds, credsErr := cfg.Credentials()
	if credsErr != nil {
		return nil, credsErr
	}

	base := []ClientOption{
		WithAPIVersion(string(cfg.GetAPIVersion())),
		WithHeaders(cfg.Headers),
		WithQuery(cfg.Query),
	}
	if cfg.HTTP.Timeout > 0 {
		base = append(base, WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}))
	}

	return NewClient(cfg.URL, creds, append(base, opts...)...), nil
}

func newTransport(rc *resty.Client) *resty.Client {
	// Warnings (e.g. basic auth over plain http) go through our logger instead.
	return rc.SetDisableWarn(true)
}

// Host returns the base URL of the Jira instance.
func (c *Client) Host() string {
	return c.host
}

// APIVersion returns the REST API version in use.
func (c *Client) APIVersion() string {
	return c.apiVersion
}

// Credentials returns the credentials attached to every request.
func (c *Client) Credentials() Credentials {
	return c.credentials
}

// clone copies the client; the transport is shared, maps are copied.
func (c *Client) clone() *Client {
	clone := *c
	clone.headers = maps.Clone(c.headers)
	clone.query = maps.Clone(c.query)
	return &clone
}

// WithHeader returns a copy of the client that also sends header key.
func (c *Client) WithHeader(key, value string) *Client {
	clone := c.clone()
	clone.headers[key] = value
	return clone
}

// AddHeaders returns a copy of the client with headers merged in.
func (c *Client) AddHeaders(headers map[string]string) *Client {
	clone := c.clone()
	maps.Copy(clone.headers, headers)
	return clone
}

// AddQuery returns a copy of the client with query parameters merged in.
func (c *Client) AddQuery(query map[string]string) *Client {
	clone := c.clone()
	maps.Copy(clone.query, query)
	return clone
}

// URL resolves an endpoint path against the API root, with the default query
// merged with extra.
func (c *Client) URL(endpoint string, extra map[string]string) string {
	query := MergeOptions(QueryMap(c.query), QueryMap(extra))
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.host + c.apiRoot() + endpoint + EncodeQuery(query)
}

func (c *Client) apiRoot() string {
	return "/rest/api/" + c.apiVersion
}

// CallOption customizes a single call.
type CallOption func(*call)

type call struct {
	query   []QueryOption
	headers map[string]string
}

// Query adds one-off query parameters to a call.
func Query(query map[string]string) CallOption {
	return func(cl *call) {
		cl.query = append(cl.query, QueryMap(query))
	}
}

// Options adds the contributions of query options to a call, in order.
func Options(opts ...QueryOption) CallOption {
	return func(cl *call) {
		cl.query = append(cl.query, opts...)
	}
}

// Header adds a one-off header to a call. It wins over client defaults.
func Header(key, value string) CallOption {
	return func(cl *call) {
		cl.headers[key] = value
	}
}

// Headers adds one-off headers to a call.
func Headers(headers map[string]string) CallOption {
	return func(cl *call) {
		maps.Copy(cl.headers, headers)
	}
}

// Get sends a GET request and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, endpoint string, opts ...CallOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodGet, endpoint, nil, opts)
}

// Put sends body as JSON with PUT and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, endpoint string, body any, opts ...CallOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPut, endpoint, body, opts)
}

// Post sends body as JSON with POST and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, endpoint string, body any, opts ...CallOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPost, endpoint, body, opts)
}

// Delete sends a DELETE request and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, endpoint string, opts ...CallOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodDelete, endpoint, nil, opts)
}

// do runs one request/response exchange. It never retries.
func do[T any](
	ctx context.Context,
	c *Client,
	method, endpoint string,
	body any,
	opts []CallOption,
) (*Response[T], error) {
	cl := &call{headers: make(map[string]string)}
	for _, opt := range opts {
		opt(cl)
	}

	var payload []byte
	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return nil, &Error{
				Kind:     KindSerialization,
				Method:   method,
				Endpoint: endpoint,
				Err:      fmt.Errorf("marshal request body: %w", marshalErr),
			}
		}
		payload = data
	}

	target := c.URL(endpoint, MergeOptions(cl.query...))

	req := c.transport.R().SetContext(ctx)
	c.credentials.Apply(req)
	req.SetHeader("Accept", "application/json")
	for k, v := range c.headers {
		req.SetHeader(k, v)
	}
	for k, v := range cl.headers {
		req.SetHeader(k, v)
	}
	req.SetHeader("Content-Type", "application/json")
	if payload != nil {
		req.SetBody(payload)
	}

	requestID := newRequestID()
	start := time.Now()
	resp, execErr := req.Execute(method, target)
	elapsed := time.Since(start)

	if execErr != nil {
		c.metrics.observe(method, 0, elapsed)
		c.logger.Warn("jira request failed",
			slog.String("request_id", requestID),
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Duration("duration", elapsed),
			slog.String("error", execErr.Error()))
		return nil, &Error{Kind: KindTransport, Method: method, Endpoint: endpoint, Err: execErr}
	}

	status := resp.StatusCode()
	c.metrics.observe(method, status, elapsed)
	c.logger.Debug("jira request",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", status),
		slog.Duration("duration", elapsed))

	raw := resp.Body()
	if classifyErr := Classify(status, raw); classifyErr != nil {
		jiraErr := classifyErr.(*Error)
		jiraErr.Method = method
		jiraErr.Endpoint = endpoint
		return nil, jiraErr
	}

	// Endpoints that answer with no content decode as JSON null.
	data := raw
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("null")
	}

	var out T
	if decodeErr := json.Unmarshal(data, &out); decodeErr != nil {
		return nil, &Error{
			Kind:       KindSerialization,
			StatusCode: status,
			Method:     method,
			Endpoint:   endpoint,
			Err:        fmt.Errorf("decode response: %w", decodeErr),
		}
	}

	return &Response[T]{Data: out, Header: resp.Header(), StatusCode: status}, nil
}

func newRequestID() string {
	id, err := nanoid.New()
	if err != nil {
		return ""
	}
	return id
}

// Context key type for storing a Jira client in a context.
type jiraClientKey struct{}

// ClientFromContext extracts a Jira Client from a context.
// Returns nil if no Client is present.
func ClientFromContext(ctx context.Context) *Client {
	if c, ok := ctx.Value(jiraClientKey{}).(*Client); ok {
		return c
	}
	return nil
}

// ContextWithClient adds a Jira Client to a context.
func ContextWithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, jiraClientKey{}, c)
}

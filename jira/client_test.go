package jira

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jirahttp "github.com/randalmurphal/jirac/http"
)

// recorded is what the fake Jira saw for one request.
type recorded struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   []byte
}

// fakeJira answers every request with status and body and remembers the
// requests it received.
type fakeJira struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recorded
	handler  func(w http.ResponseWriter, r *http.Request)
}

func newFakeJira(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeJira {
	t.Helper()
	f := &fakeJira{handler: handler}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		query := make(map[string]string)
		for k, v := range r.URL.Query() {
			query[k] = v[0]
		}
		f.mu.Lock()
		f.requests = append(f.requests, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  query,
			Header: r.Header.Clone(),
			Body:   body,
		})
		handler := f.handler
		f.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeJira) setHandler(handler func(w http.ResponseWriter, r *http.Request)) {
	f.mu.Lock()
	f.handler = handler
	f.mu.Unlock()
}

func (f *fakeJira) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeJira) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "no request recorded")
	return f.requests[len(f.requests)-1]
}

func respond(status int, body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func respondFixture(t *testing.T, name string) func(http.ResponseWriter, *http.Request) {
	return respond(http.StatusOK, string(readFixture(t, name)))
}

func TestGetApplicationRoleEndToEnd(t *testing.T) {
	srv := newFakeJira(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v1"`)
		respondFixture(t, "application_role.json")(w, r)
	})
	client := NewClient(srv.URL, BasicAuth("admin", "secret"))

	resp, err := Get[ApplicationRole](context.Background(), client, "/applicationrole/1")
	require.NoError(t, err)

	assert.Equal(t, "jira-software", resp.Data.Key)
	assert.Equal(t, []string{"jira-software-users", "jira-testers"}, resp.Data.Groups)
	assert.Equal(t, 10, resp.Data.NumberOfSeats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `"v1"`, resp.ETag())

	req := srv.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/api/2/applicationrole/1", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	user, pass, ok := (&http.Request{Header: req.Header}).BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
}

func TestUpdateApplicationRoleUnauthorized(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusUnauthorized, ""))
	client := NewClient(srv.URL, BearerToken("expired"))

	role := &ApplicationRole{Key: "jira-software", Name: "JIRA Software"}
	resp, err := client.UpdateApplicationRole(context.Background(), role, nil)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, jirahttp.ErrUnauthorized)

	jiraErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.MethodPut, jiraErr.Method)
	assert.Equal(t, "/applicationrole/jira-software", jiraErr.Endpoint)

	req := srv.last(t)
	assert.Equal(t, "/rest/api/2/applicationrole/jira-software", req.Path)
	assert.Equal(t, "Bearer expired", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get("If-Match"))

	var sent ApplicationRole
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.Equal(t, "jira-software", sent.Key)
}

func TestUpdateApplicationRoleIfMatch(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusPreconditionFailed, ""))
	client := NewClient(srv.URL, BasicAuth("admin", "secret"))

	_, err := client.UpdateApplicationRole(context.Background(),
		&ApplicationRole{Key: "jira-core"}, &ApplicationRoleOptions{IfMatch: `"stale"`})

	assert.True(t, IsPreconditionFailed(err))
	assert.Equal(t, `"stale"`, srv.last(t).Header.Get("If-Match"))
}

func TestUpdateApplicationRolesBulk(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, `[{"key":"a"},{"key":"b"}]`))
	client := NewClient(srv.URL, BasicAuth("admin", "secret"))

	resp, err := client.UpdateApplicationRoles(context.Background(),
		[]ApplicationRole{{Key: "a"}, {Key: "b"}}, nil)
	require.NoError(t, err)

	require.Len(t, resp.Data, 2)
	assert.Equal(t, "b", resp.Data[1].Key)
	assert.Equal(t, "/rest/api/2/applicationrole", srv.last(t).Path)
}

func TestEmptyBodyDecodesAsNull(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, ""))
	client := NewClient(srv.URL, Credentials{})

	resp, err := Get[*ApplicationRole](context.Background(), client, "/applicationrole/none")
	require.NoError(t, err)
	assert.Nil(t, resp.Data)

	srv.setHandler(respond(http.StatusNoContent, ""))
	empty, err := Put[Empty](context.Background(), client, "/issue/EX-1", map[string]any{"fields": map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, empty.StatusCode)
}

func TestHeaderPrecedence(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, "{}"))
	client := NewClient(srv.URL, Credentials{}, WithHeaders(map[string]string{
		"X-Team":       "default",
		"X-Default":    "kept",
		"Content-Type": "text/plain",
	}))

	_, err := Get[map[string]any](context.Background(), client, "/serverInfo",
		Header("X-Team", "call"), Headers(map[string]string{"Accept": "application/vnd.custom"}))
	require.NoError(t, err)

	req := srv.last(t)
	assert.Equal(t, "call", req.Header.Get("X-Team"))
	assert.Equal(t, "kept", req.Header.Get("X-Default"))
	assert.Equal(t, "application/vnd.custom", req.Header.Get("Accept"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestQueryMerging(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, "{}"))
	client := NewClient(srv.URL, Credentials{}, WithQuery(map[string]string{"a": "1", "b": "default"}))

	_, err := Get[map[string]any](context.Background(), client, "/project/EX",
		Query(map[string]string{"b": "call"}), Options(NewPagination(10, 5)))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"a":          "1",
		"b":          "call",
		"startAt":    "10",
		"maxResults": "5",
	}, srv.last(t).Query)
}

func TestURL(t *testing.T) {
	client := NewClient("https://jira.example.com/", Credentials{}, WithQuery(map[string]string{"z": "1"}))

	assert.Equal(t, "https://jira.example.com/rest/api/2/serverInfo?z=1", client.URL("/serverInfo", nil))
	assert.Equal(t, "https://jira.example.com/rest/api/2/serverInfo?a=b&z=1", client.URL("serverInfo", map[string]string{"a": "b"}))

	v3 := NewClient("https://jira.example.com", Credentials{}, WithAPIVersion("v3"))
	assert.Equal(t, "3", v3.APIVersion())
	assert.Equal(t, "https://jira.example.com/rest/api/3/myself", v3.URL("/myself", nil))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	base := NewClient("https://jira.example.com", Credentials{},
		WithHeaders(map[string]string{"X-A": "1"}),
		WithQuery(map[string]string{"q": "1"}))

	withHeader := base.WithHeader("X-B", "2")
	withHeaders := base.AddHeaders(map[string]string{"X-A": "override"})
	withQuery := base.AddQuery(map[string]string{"q": "2", "r": "3"})

	assert.Equal(t, map[string]string{"X-A": "1"}, base.headers)
	assert.Equal(t, map[string]string{"q": "1"}, base.query)
	assert.Equal(t, map[string]string{"X-A": "1", "X-B": "2"}, withHeader.headers)
	assert.Equal(t, map[string]string{"X-A": "override"}, withHeaders.headers)
	assert.Equal(t, map[string]string{"q": "2", "r": "3"}, withQuery.query)
	assert.Same(t, base.transport, withQuery.transport)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, Credentials{})
	_, err := client.GetServerInfo(context.Background())

	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.True(t, jirahttp.IsTransport(err))

	jiraErr, _ := AsError(err)
	assert.Zero(t, jiraErr.StatusCode)
	assert.Equal(t, "/serverInfo", jiraErr.Endpoint)
}

func TestContextCancelled(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, "{}"))
	client := NewClient(srv.URL, Credentials{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetServerInfo(ctx)
	assert.Equal(t, KindTransport, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeFailure(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, `{"key": 42}`))
	client := NewClient(srv.URL, Credentials{})

	_, err := client.GetApplicationRole(context.Background(), "jira-core")

	assert.Equal(t, KindSerialization, KindOf(err))
	jiraErr, _ := AsError(err)
	assert.Equal(t, http.StatusOK, jiraErr.StatusCode)
}

func TestMarshalFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", Credentials{})

	_, err := Post[Empty](context.Background(), client, "/issue", map[string]any{"bad": make(chan int)})

	assert.Equal(t, KindSerialization, KindOf(err))
}

func TestFaultCarriesErrorBody(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusBadRequest,
		`{"errorMessages":[],"errors":{"summary":"You must specify a summary of the issue."}}`))
	client := NewClient(srv.URL, Credentials{})

	_, err := client.CreateIssue(context.Background(), &CreateIssueRequest{})

	require.True(t, IsFault(err))
	jiraErr, _ := AsError(err)
	assert.Equal(t, "You must specify a summary of the issue.", jiraErr.Body.Errors["summary"])
	assert.Contains(t, err.Error(), "summary: You must specify a summary of the issue.")
}

func TestGetGroupMembers(t *testing.T) {
	srv := newFakeJira(t, respondFixture(t, "group.json"))
	client := NewClient(srv.URL, Credentials{})

	page := NewPagination(0, 2)
	resp, err := client.GetGroupMembers(context.Background(), "jira administrators", nil, &page)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Data.Total)
	next, ok := resp.Data.Pagination.Next()
	assert.True(t, ok)
	assert.Equal(t, 2, next.StartAt)

	req := srv.last(t)
	assert.Equal(t, "/rest/api/2/group/member", req.Path)
	assert.Equal(t, map[string]string{
		"groupname":            "jira administrators",
		"includeInactiveUsers": "false",
		"startAt":              "0",
		"maxResults":           "2",
	}, req.Query)
}

func TestGetGroupMembersMergesClientQuery(t *testing.T) {
	srv := newFakeJira(t, respondFixture(t, "group.json"))
	client := NewClient(srv.URL, Credentials{}, WithQuery(map[string]string{"trace": "1", "maxResults": "10"}))

	_, err := client.GetGroupMembers(context.Background(), "devs", &GroupOptions{IncludeInactiveUsers: true}, nil)
	require.NoError(t, err)

	query := srv.last(t).Query
	assert.Equal(t, "1", query["trace"])
	assert.Equal(t, "50", query["maxResults"], "call options win over client defaults")
	assert.Equal(t, "true", query["includeInactiveUsers"])
	assert.Equal(t, srv.URL+"/rest/api/2/group/member?maxResults=10&trace=1", client.URL("/group/member", nil))
}

func TestUserEndpoints(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, "[]"))
	client := NewClient(srv.URL, Credentials{})

	_, err := client.SearchUsers(context.Background(), "fred", nil, nil)
	require.NoError(t, err)
	req := srv.last(t)
	assert.Equal(t, "/rest/api/2/user/search", req.Path)
	assert.Equal(t, map[string]string{
		"username":        "fred",
		"includeActive":   "true",
		"includeInactive": "false",
		"startAt":         "0",
		"maxResults":      "50",
	}, req.Query)

	srv.setHandler(respondFixture(t, "user.json"))
	resp, err := client.GetUserByKey(context.Background(), "fred", UserExpandGroups)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"key": "fred", "expand": "groups"}, srv.last(t).Query)

	groups, err := resp.Data.Groups()
	require.NoError(t, err)
	assert.NotEmpty(t, groups)

	_, err = client.GetUserByUsername(context.Background(), "fred")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"username": "fred"}, srv.last(t).Query)
}

func TestMyPermissions(t *testing.T) {
	srv := newFakeJira(t, respondFixture(t, "my_permissions.json"))
	client := NewClient(srv.URL, Credentials{})

	_, err := client.MyPermissions(context.Background(), MyPermissionProjectKey, "EX")
	require.NoError(t, err)

	req := srv.last(t)
	assert.Equal(t, "/rest/api/2/mypermissions", req.Path)
	assert.Equal(t, map[string]string{"projectKey": "EX"}, req.Query)
}

func TestGetWorklogs(t *testing.T) {
	srv := newFakeJira(t, respondFixture(t, "worklog.json"))
	client := NewClient(srv.URL, Credentials{})

	resp, err := client.GetWorklogs(context.Background(), []int64{100028, 100029})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Data)

	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rest/api/2/worklog/list", req.Path)
	assert.JSONEq(t, `{"ids":[100028,100029]}`, string(req.Body))

	_, err = client.GetWorklogs(context.Background(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ids":[]}`, string(srv.last(t).Body))
}

func TestVersionEndpoints(t *testing.T) {
	srv := newFakeJira(t, respondFixture(t, "version.json"))
	client := NewClient(srv.URL, Credentials{})
	ctx := context.Background()

	created, err := client.CreateVersion(ctx, &Version{Name: "New Version 1", ProjectID: 10000})
	require.NoError(t, err)
	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rest/api/2/version", req.Path)
	assert.NotContains(t, string(req.Body), `"id"`)

	_, err = client.UpdateVersion(ctx, &created.Data)
	require.NoError(t, err)
	req = srv.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/rest/api/2/version/"+created.Data.ID, req.Path)

	_, err = client.GetVersion(ctx, created.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/2/version/"+created.Data.ID, srv.last(t).Path)
}

func TestUpdateVersionRequiresID(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", Credentials{})

	_, err := client.UpdateVersion(context.Background(), &Version{Name: "no id"})
	assert.ErrorIs(t, err, ErrVersionIDRequired)

	_, err = client.UpdateVersion(context.Background(), nil)
	assert.ErrorIs(t, err, ErrVersionIDRequired)
}

func TestUpdateApplicationRoleRequiresKey(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, `{}`))
	client := NewClient(srv.URL, Credentials{})

	_, err := client.UpdateApplicationRole(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrApplicationRoleKeyRequired)

	_, err = client.UpdateApplicationRole(context.Background(), &ApplicationRole{Name: "no key"}, nil)
	assert.ErrorIs(t, err, ErrApplicationRoleKeyRequired)

	assert.Zero(t, srv.count())
}

func TestTransitionIssueByName(t *testing.T) {
	srv := newFakeJira(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			respond(http.StatusOK, `{"transitions":[{"id":"11","name":"To Do"},{"id":"21","name":"In Progress"}]}`)(w, r)
			return
		}
		respond(http.StatusNoContent, "")(w, r)
	})
	client := NewClient(srv.URL, Credentials{})
	ctx := context.Background()

	_, err := client.TransitionIssueByName(ctx, "EX-1", "in progress")
	require.NoError(t, err)

	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rest/api/2/issue/EX-1/transitions", req.Path)
	assert.JSONEq(t, `{"transition":{"id":"21"}}`, string(req.Body))

	_, err = client.TransitionIssueByName(ctx, "EX-1", "Done")
	assert.ErrorIs(t, err, ErrTransitionNotFound)
}

func TestIssueKeyRequired(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", Credentials{})
	ctx := context.Background()

	_, err := client.GetIssue(ctx, "", nil, nil)
	assert.ErrorIs(t, err, ErrIssueKeyRequired)
	_, err = client.TransitionIssue(ctx, "EX-1", "")
	assert.ErrorIs(t, err, ErrTransitionIDRequired)
}

func TestGetIssueQuery(t *testing.T) {
	srv := newFakeJira(t, respondFixture(t, "issue.json"))
	client := NewClient(srv.URL, Credentials{})

	resp, err := client.GetIssue(context.Background(), "EX-1",
		&IssueOptions{Fields: []string{"summary"}, Expand: []IssueExpand{IssueExpandNames}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "EX-1", resp.Data.Key)

	req := srv.last(t)
	assert.Equal(t, "/rest/api/2/issue/EX-1", req.Path)
	assert.Equal(t, "summary", req.Query["fields"])
	assert.Equal(t, "names", req.Query["expand"])
	assert.Equal(t, "false", req.Query["updateHistory"])
	assert.Equal(t, "0", req.Query["startAt"])
}

func TestSearchIssues(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, `{"startAt":0,"maxResults":50,"total":0,"issues":[]}`))
	client := NewClient(srv.URL, Credentials{})

	_, err := client.SearchIssues(context.Background(), "project = EX", nil)
	require.NoError(t, err)

	req := srv.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rest/api/2/search", req.Path)
	assert.JSONEq(t, `{"jql":"project = EX","startAt":0,"maxResults":50}`, string(req.Body))
}

func TestLookupEndpoints(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, "{}"))
	client := NewClient(srv.URL, Credentials{})
	ctx := context.Background()

	tests := []struct {
		path string
		call func() error
	}{
		{"/rest/api/2/attachment/10000", func() error { _, err := client.GetAttachment(ctx, "10000"); return err }},
		{"/rest/api/2/component/10000", func() error { _, err := client.GetComponent(ctx, "10000"); return err }},
		{"/rest/api/2/issueLink/10000", func() error { _, err := client.GetIssueLink(ctx, "10000"); return err }},
		{"/rest/api/2/issueLinkType/1000", func() error { _, err := client.GetIssueLinkType(ctx, "1000"); return err }},
		{"/rest/api/2/issuetype/3", func() error { _, err := client.GetIssueType(ctx, "3"); return err }},
		{"/rest/api/2/priority/1", func() error { _, err := client.GetPriority(ctx, "1"); return err }},
		{"/rest/api/2/resolution/1", func() error { _, err := client.GetResolution(ctx, "1"); return err }},
		{"/rest/api/2/status/Open", func() error { _, err := client.GetStatus(ctx, "Open"); return err }},
		{"/rest/api/2/statuscategory/2", func() error { _, err := client.GetStatusCategory(ctx, "2"); return err }},
		{"/rest/api/2/project/EX", func() error { _, err := client.GetProject(ctx, "EX"); return err }},
		{"/rest/api/2/permissions", func() error { _, err := client.ListPermissions(ctx); return err }},
		{"/rest/api/2/serverInfo", func() error { _, err := client.GetServerInfo(ctx); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.path, srv.last(t).Path)
		})
	}
}

func TestNewClientFromConfig(t *testing.T) {
	srv := newFakeJira(t, respond(http.StatusOK, "{}"))

	cfg := DefaultConfig()
	cfg.URL = srv.URL
	cfg.APIVersion = APIVersionV3
	cfg.Auth = AuthConfig{Type: AuthAPIToken, Email: "me@example.com", Token: "tok"}
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Headers = map[string]string{"X-Atlassian-Token": "no-check"}

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "3", client.APIVersion())
	assert.Equal(t, SchemeBasic, client.Credentials().Scheme())

	_, err = client.GetServerInfo(context.Background())
	require.NoError(t, err)
	req := srv.last(t)
	assert.Equal(t, "/rest/api/3/serverInfo", req.Path)
	assert.Equal(t, "no-check", req.Header.Get("X-Atlassian-Token"))

	_, err = NewClientFromConfig(DefaultConfig())
	assert.True(t, errors.Is(err, ErrConfigURLRequired))
}

func TestContextHelpers(t *testing.T) {
	client := NewClient("https://jira.example.com", Credentials{})

	assert.Nil(t, ClientFromContext(context.Background()))
	ctx := ContextWithClient(context.Background(), client)
	assert.Same(t, client, ClientFromContext(ctx))
}

func TestConcurrentCalls(t *testing.T) {
	srv := newFakeJira(t, respondFixture(t, "application_role.json"))
	client := NewClient(srv.URL, Credentials{})

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.WithHeader("X-N", "1").GetApplicationRole(context.Background(), "jira-software")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Empty(t, client.headers)
}

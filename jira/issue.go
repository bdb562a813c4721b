package jira

import (
	"context"
	"encoding/json"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Issue represents a Jira issue. Top-level keys the struct does not declare
// (names, schema, renderedFields, ...) are kept in Extra.
type Issue struct {
	Expand    string      `json:"expand,omitempty"`
	Self      string      `json:"self,omitempty"`
	ID        string      `json:"id,omitempty"`
	Key       string      `json:"key,omitempty"`
	Fields    IssueFields `json:"fields"`
	Changelog *Changelog  `json:"changelog,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// IssueFields contains the fields of a Jira issue. Custom fields and any
// other undeclared field land in Extra, keyed by field id
// (e.g. "customfield_10001").
type IssueFields struct {
	Summary                       string             `json:"summary"`
	Description                   any                `json:"description,omitempty"` // string (v2) or ADF (v3)
	Environment                   any                `json:"environment,omitempty"`
	IssueType                     *IssueType         `json:"issuetype,omitempty"`
	Project                       *Project           `json:"project,omitempty"`
	Status                        *Status            `json:"status,omitempty"`
	Priority                      *Priority          `json:"priority,omitempty"`
	Resolution                    *Resolution        `json:"resolution,omitempty"`
	ResolutionDate                string             `json:"resolutiondate,omitempty"`
	Assignee                      *User              `json:"assignee,omitempty"`
	Reporter                      *User              `json:"reporter,omitempty"`
	Creator                       *User              `json:"creator,omitempty"`
	Labels                        []string           `json:"labels"`
	Components                    []Component        `json:"components"`
	FixVersions                   []Version          `json:"fixVersions"`
	Versions                      []Version          `json:"versions"`
	Attachment                    []Attachment       `json:"attachment"`
	IssueLinks                    []IssueLink        `json:"issuelinks"`
	Subtasks                      []Issue            `json:"subtasks"`
	Parent                        *Issue             `json:"parent,omitempty"`
	Comment                       *PaginatedComments `json:"comment,omitempty"`
	Worklog                       *PaginatedWorklog  `json:"worklog,omitempty"`
	Votes                         *Vote              `json:"votes,omitempty"`
	Watches                       *Watches           `json:"watches,omitempty"`
	TimeTracking                  *TimeTracking      `json:"timetracking,omitempty"`
	Progress                      *Progress          `json:"progress,omitempty"`
	AggregateProgress             *Progress          `json:"aggregateprogress,omitempty"`
	TimeSpent                     *int64             `json:"timespent,omitempty"`
	TimeEstimate                  *int64             `json:"timeestimate,omitempty"`
	TimeOriginalEstimate          *int64             `json:"timeoriginalestimate,omitempty"`
	AggregateTimeSpent            *int64             `json:"aggregatetimespent,omitempty"`
	AggregateTimeEstimate         *int64             `json:"aggregatetimeestimate,omitempty"`
	AggregateTimeOriginalEstimate *int64             `json:"aggregatetimeoriginalestimate,omitempty"`
	WorkRatio                     *int64             `json:"workratio,omitempty"`
	Created                       string             `json:"created,omitempty"`
	Updated                       string             `json:"updated,omitempty"`
	LastViewed                    string             `json:"lastViewed,omitempty"`
	DueDate                       string             `json:"duedate,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var (
	issueKeys       = declaredKeys(reflect.TypeOf(Issue{}))
	issueFieldsKeys = declaredKeys(reflect.TypeOf(IssueFields{}))
)

// declaredKeys lists the JSON names a struct type declares.
func declaredKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		keys[name] = struct{}{}
	}
	return keys
}

// splitUndeclared returns the keys of a JSON object that declared does not name.
func splitUndeclared(data []byte, declared map[string]struct{}) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k := range all {
		if _, ok := declared[k]; ok {
			delete(all, k)
		}
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// mergeExtra adds extra keys to an encoded JSON object. Declared keys win.
func mergeExtra(data []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes declared fields and keeps the rest in Extra.
func (i *Issue) UnmarshalJSON(data []byte) error {
	type plain Issue
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := splitUndeclared(data, issueKeys)
	if err != nil {
		return err
	}
	*i = Issue(decoded)
	i.Extra = extra
	return nil
}

// MarshalJSON encodes declared fields followed by Extra.
func (i Issue) MarshalJSON() ([]byte, error) {
	type plain Issue
	data, err := json.Marshal(plain(i))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, i.Extra)
}

// ExtraKeys returns the undeclared top-level keys in sorted order.
func (i *Issue) ExtraKeys() []string {
	return sortedKeys(i.Extra)
}

func (i Issue) String() string { return prettyJSON(i) }

// UnmarshalJSON decodes declared fields and keeps the rest in Extra.
func (f *IssueFields) UnmarshalJSON(data []byte) error {
	type plain IssueFields
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	extra, err := splitUndeclared(data, issueFieldsKeys)
	if err != nil {
		return err
	}
	*f = IssueFields(decoded)
	f.Extra = extra
	return nil
}

// MarshalJSON encodes declared fields followed by Extra.
func (f IssueFields) MarshalJSON() ([]byte, error) {
	type plain IssueFields
	data, err := json.Marshal(plain(f))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, f.Extra)
}

// ExtraKeys returns the undeclared field ids in sorted order.
func (f *IssueFields) ExtraKeys() []string {
	return sortedKeys(f.Extra)
}

// Custom decodes the undeclared field id into v. It reports false when the
// field is absent.
func (f *IssueFields) Custom(id string, v any) (bool, error) {
	raw, ok := f.Extra[id]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

// Lookup evaluates a gjson path against the whole fields document, e.g.
// "customfield_10001.value" or "components.#.name".
func (f *IssueFields) Lookup(path string) gjson.Result {
	data, err := f.MarshalJSON()
	if err != nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(data, path)
}

// CreatedTime parses and returns the Created timestamp.
func (f *IssueFields) CreatedTime() (time.Time, error) {
	return ParseTime(f.Created)
}

// UpdatedTime parses and returns the Updated timestamp.
func (f *IssueFields) UpdatedTime() (time.Time, error) {
	return ParseTime(f.Updated)
}

func (f IssueFields) String() string { return prettyJSON(f) }

// IssueExpand names an expandable section of an issue.
type IssueExpand string

// Expandable issue sections.
const (
	IssueExpandRenderedFields           IssueExpand = "renderedFields"
	IssueExpandNames                    IssueExpand = "names"
	IssueExpandSchema                   IssueExpand = "schema"
	IssueExpandTransitions              IssueExpand = "transitions"
	IssueExpandOperations               IssueExpand = "operations"
	IssueExpandEditMeta                 IssueExpand = "editmeta"
	IssueExpandChangelog                IssueExpand = "changelog"
	IssueExpandVersionedRepresentations IssueExpand = "versionedRepresentations"
)

// IssueOptions selects what GetIssue returns. The zero value requests all
// fields.
type IssueOptions struct {
	Fields        []string
	Properties    []string
	UpdateHistory bool
	Expand        []IssueExpand
}

// Query implements QueryOption.
func (o IssueOptions) Query() map[string]string {
	fields := "*all"
	if len(o.Fields) > 0 {
		fields = strings.Join(o.Fields, ",")
	}
	q := map[string]string{
		"fields":        fields,
		"updateHistory": strconv.FormatBool(o.UpdateHistory),
	}
	if len(o.Properties) > 0 {
		q["properties"] = strings.Join(o.Properties, ",")
	}
	for k, v := range Expand[IssueExpand](o.Expand).Query() {
		q[k] = v
	}
	return q
}

func issuePath(key string, suffix ...string) string {
	return "/issue/" + url.PathEscape(key) + strings.Join(suffix, "")
}

// GetIssue retrieves an issue by key or id.
func (c *Client) GetIssue(ctx context.Context, key string, opts *IssueOptions, page *Pagination) (*Response[Issue], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	if opts == nil {
		opts = &IssueOptions{}
	}
	return Get[Issue](ctx, c, issuePath(key), Options(pageOrDefault(page), opts))
}

// SearchOptions configures issue search.
type SearchOptions struct {
	StartAt    int      `json:"startAt,omitempty"`
	MaxResults int      `json:"maxResults,omitempty"`
	Fields     []string `json:"fields,omitempty"`
	Expand     []string `json:"expand,omitempty"`
}

// SearchResult is one page of issues matching a JQL query.
type SearchResult struct {
	Pagination
	Issues []Issue `json:"issues"`
}

func (s SearchResult) String() string { return prettyJSON(s) }

type searchRequest struct {
	JQL        string   `json:"jql"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields,omitempty"`
	Expand     []string `json:"expand,omitempty"`
}

// SearchIssues searches for issues using JQL.
func (c *Client) SearchIssues(ctx context.Context, jql string, opts *SearchOptions) (*Response[SearchResult], error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	body := searchRequest{
		JQL:        jql,
		StartAt:    opts.StartAt,
		MaxResults: opts.MaxResults,
		Fields:     opts.Fields,
		Expand:     opts.Expand,
	}
	if body.MaxResults == 0 {
		body.MaxResults = DefaultMaxResults
	}
	return Post[SearchResult](ctx, c, "/search", body)
}

// CreateIssueRequest represents a request to create an issue.
type CreateIssueRequest struct {
	Fields CreateIssueFields `json:"fields"`
}

// CreateIssueFields represents the fields for creating an issue.
type CreateIssueFields struct {
	Project     ProjectRef     `json:"project"`
	IssueType   IssueTypeRef   `json:"issuetype"`
	Summary     string         `json:"summary"`
	Description any            `json:"description,omitempty"` // string or ADF
	Priority    *PriorityRef   `json:"priority,omitempty"`
	Assignee    *UserRef       `json:"assignee,omitempty"`
	Labels      []string       `json:"labels,omitempty"`
	Components  []ComponentRef `json:"components,omitempty"`
	FixVersions []VersionRef   `json:"fixVersions,omitempty"`
	DueDate     string         `json:"duedate,omitempty"`
	Parent      *IssueRef      `json:"parent,omitempty"`

	// CustomFields are sent alongside the declared fields, keyed by field id.
	CustomFields map[string]any `json:"-"`
}

// MarshalJSON encodes declared fields plus CustomFields.
func (f CreateIssueFields) MarshalJSON() ([]byte, error) {
	type plain CreateIssueFields
	data, err := json.Marshal(plain(f))
	if err != nil || len(f.CustomFields) == 0 {
		return data, err
	}
	extra := make(map[string]json.RawMessage, len(f.CustomFields))
	for k, v := range f.CustomFields {
		raw, marshalErr := json.Marshal(v)
		if marshalErr != nil {
			return nil, marshalErr
		}
		extra[k] = raw
	}
	return mergeExtra(data, extra)
}

// ProjectRef references a project by key or ID.
type ProjectRef struct {
	Key string `json:"key,omitempty"`
	ID  string `json:"id,omitempty"`
}

// IssueTypeRef references an issue type by name or ID.
type IssueTypeRef struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

// PriorityRef references a priority by name or ID.
type PriorityRef struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

// UserRef references a user by accountId (Cloud) or name (Server).
type UserRef struct {
	AccountID string `json:"accountId,omitempty"`
	Name      string `json:"name,omitempty"`
}

// ComponentRef references a component by name or ID.
type ComponentRef struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

// VersionRef references a version by name or ID.
type VersionRef struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
}

// IssueRef references an issue by key or ID.
type IssueRef struct {
	Key string `json:"key,omitempty"`
	ID  string `json:"id,omitempty"`
}

// CreatedIssue is the response from creating an issue.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// CreateIssue creates a new issue.
func (c *Client) CreateIssue(ctx context.Context, req *CreateIssueRequest) (*Response[CreatedIssue], error) {
	return Post[CreatedIssue](ctx, c, "/issue", req)
}

// UpdateIssueRequest represents a request to update issue fields.
type UpdateIssueRequest struct {
	Fields map[string]any `json:"fields,omitempty"`
	Update map[string]any `json:"update,omitempty"`
}

// UpdateIssue sets fields on an issue. Jira answers 204, so Data is empty.
func (c *Client) UpdateIssue(ctx context.Context, key string, fields map[string]any) (*Response[Empty], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	return Put[Empty](ctx, c, issuePath(key), &UpdateIssueRequest{Fields: fields})
}

// GetTransitions gets available transitions for an issue.
func (c *Client) GetTransitions(ctx context.Context, key string) (*Response[TransitionList], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	return Get[TransitionList](ctx, c, issuePath(key, "/transitions"))
}

// TransitionRequest represents a request to transition an issue.
type TransitionRequest struct {
	Transition TransitionRef  `json:"transition"`
	Fields     map[string]any `json:"fields,omitempty"`
	Update     map[string]any `json:"update,omitempty"`
}

// TransitionRef references a transition by ID.
type TransitionRef struct {
	ID string `json:"id"`
}

// TransitionIssue transitions an issue to a new status.
func (c *Client) TransitionIssue(ctx context.Context, key, transitionID string) (*Response[Empty], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	if transitionID == "" {
		return nil, ErrTransitionIDRequired
	}
	body := &TransitionRequest{Transition: TransitionRef{ID: transitionID}}
	return Post[Empty](ctx, c, issuePath(key, "/transitions"), body)
}

// TransitionIssueByName finds and executes a transition by name,
// case-insensitively.
func (c *Client) TransitionIssueByName(ctx context.Context, key, transitionName string) (*Response[Empty], error) {
	transitions, getErr := c.GetTransitions(ctx, key)
	if getErr != nil {
		return nil, getErr
	}

	for _, t := range transitions.Data.Transitions {
		if strings.EqualFold(t.Name, transitionName) {
			return c.TransitionIssue(ctx, key, t.ID)
		}
	}

	return nil, ErrTransitionNotFound
}

// GetComments retrieves one page of comments for an issue.
func (c *Client) GetComments(ctx context.Context, key string, page *Pagination) (*Response[PaginatedComments], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	return Get[PaginatedComments](ctx, c, issuePath(key, "/comment"), Options(pageOrDefault(page)))
}

// AddCommentRequest represents a request to add a comment.
type AddCommentRequest struct {
	Body       any                `json:"body"` // string or ADF
	Visibility *CommentVisibility `json:"visibility,omitempty"`
}

// AddComment adds a comment to an issue.
func (c *Client) AddComment(ctx context.Context, key string, body any) (*Response[Comment], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	return Post[Comment](ctx, c, issuePath(key, "/comment"), &AddCommentRequest{Body: body})
}

// GetRemoteLinks retrieves remote links for an issue.
func (c *Client) GetRemoteLinks(ctx context.Context, key string) (*Response[[]RemoteLink], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	return Get[[]RemoteLink](ctx, c, issuePath(key, "/remotelink"))
}

// AddRemoteLink adds a remote link to an issue. Jira answers with the id and
// self link of the stored link.
func (c *Client) AddRemoteLink(ctx context.Context, key string, link *RemoteLink) (*Response[RemoteLink], error) {
	if key == "" {
		return nil, ErrIssueKeyRequired
	}
	return Post[RemoteLink](ctx, c, issuePath(key, "/remotelink"), link)
}

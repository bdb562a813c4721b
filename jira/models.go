package jira

import (
	"encoding/json"
	"fmt"
	"time"
)

// DeploymentType represents the type of Jira deployment.
type DeploymentType string

// Deployment types for Jira instances.
const (
	DeploymentCloud      DeploymentType = "Cloud"
	DeploymentServer     DeploymentType = "Server"
	DeploymentDataCenter DeploymentType = "DataCenter"
)

// TimeFormat is the standard Jira timestamp format.
const TimeFormat = "2006-01-02T15:04:05.000-0700"

// Empty is the payload type for endpoints that answer 204 No Content.
type Empty struct{}

// ServerInfo represents the response from /rest/api/X/serverInfo.
type ServerInfo struct {
	BaseURL        string `json:"baseUrl"`
	Version        string `json:"version"`
	VersionNumbers []int  `json:"versionNumbers"`
	DeploymentType string `json:"deploymentType"` // "Cloud", "Server", "DataCenter"
	BuildNumber    int    `json:"buildNumber"`
	BuildDate      string `json:"buildDate,omitempty"`
	ServerTime     string `json:"serverTime,omitempty"`
	ScmInfo        string `json:"scmInfo,omitempty"`
	ServerTitle    string `json:"serverTitle"`
}

// IsCloud reports whether the instance is Jira Cloud.
func (s *ServerInfo) IsCloud() bool {
	return DeploymentType(s.DeploymentType) == DeploymentCloud
}

func (s ServerInfo) String() string { return prettyJSON(s) }

// Item is Jira's envelope for expandable collections ({"size": n, "items": [...]}).
type Item struct {
	Size  int             `json:"size"`
	Items json.RawMessage `json:"items,omitempty"`
}

func (i Item) String() string { return prettyJSON(i) }

// decodeItems decodes the items of an optional expandable collection.
func decodeItems[T any](item *Item) ([]T, error) {
	if item == nil || len(item.Items) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(item.Items, &out); err != nil {
		return nil, fmt.Errorf("decode expanded items: %w", err)
	}
	return out, nil
}

// User represents a Jira user.
type User struct {
	Self         string            `json:"self,omitempty"`
	AccountID    string            `json:"accountId,omitempty"` // Cloud
	Key          string            `json:"key,omitempty"`       // Server user key
	Name         string            `json:"name,omitempty"`      // Server username
	EmailAddress string            `json:"emailAddress,omitempty"`
	DisplayName  string            `json:"displayName"`
	Active       bool              `json:"active"`
	TimeZone     string            `json:"timeZone,omitempty"`
	AvatarURLs   map[string]string `json:"avatarUrls"`

	// Present only when requested with UserExpandGroups / UserExpandApplicationRoles.
	GroupItems           *Item `json:"groups,omitempty"`
	ApplicationRoleItems *Item `json:"applicationRoles,omitempty"`
}

// GetID returns the user identifier (accountId for Cloud, name for Server).
func (u *User) GetID() string {
	if u.AccountID != "" {
		return u.AccountID
	}
	return u.Name
}

// Groups decodes the expanded group memberships. It returns nil when the
// user was fetched without UserExpandGroups.
func (u *User) Groups() ([]Group, error) {
	return decodeItems[Group](u.GroupItems)
}

// ApplicationRoles decodes the expanded application roles.
func (u *User) ApplicationRoles() ([]ApplicationRole, error) {
	return decodeItems[ApplicationRole](u.ApplicationRoleItems)
}

func (u User) String() string { return prettyJSON(u) }

// Group is one page of a group's members.
type Group struct {
	Pagination
	Self  string `json:"self,omitempty"`
	Name  string `json:"name,omitempty"`
	Users []User `json:"values"`
}

func (g Group) String() string { return prettyJSON(g) }

// ApplicationRole represents a Jira application role (e.g. jira-software).
type ApplicationRole struct {
	Key                  string   `json:"key"`
	Name                 string   `json:"name"`
	Groups               []string `json:"groups"`
	DefaultGroups        []string `json:"defaultGroups"`
	SelectedByDefault    bool     `json:"selectedByDefault"`
	Defined              bool     `json:"defined"`
	NumberOfSeats        int      `json:"numberOfSeats"`
	RemainingSeats       int      `json:"remainingSeats"`
	UserCount            int      `json:"userCount"`
	UserCountDescription string   `json:"userCountDescription"`
	HasUnlimitedSeats    bool     `json:"hasUnlimitedSeats"`
	Platform             bool     `json:"platform"`
}

func (a ApplicationRole) String() string { return prettyJSON(a) }

// Project represents a Jira project.
type Project struct {
	Self           string            `json:"self,omitempty"`
	ID             string            `json:"id"`
	Key            string            `json:"key"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Lead           *User             `json:"lead,omitempty"`
	Components     []Component       `json:"components"`
	IssueTypes     []IssueType       `json:"issueTypes"`
	AssigneeType   string            `json:"assigneeType,omitempty"`
	Versions       []Version         `json:"versions"`
	Roles          map[string]string `json:"roles"`
	AvatarURLs     map[string]string `json:"avatarUrls"`
	ProjectTypeKey string            `json:"projectTypeKey,omitempty"`
	Archived       bool              `json:"archived,omitempty"`
}

func (p Project) String() string { return prettyJSON(p) }

// IssueType represents an issue type in Jira.
type IssueType struct {
	Self        string `json:"self,omitempty"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	Subtask     bool   `json:"subtask"`
	AvatarID    int64  `json:"avatarId,omitempty"`
}

func (t IssueType) String() string { return prettyJSON(t) }

// Priority represents an issue priority.
type Priority struct {
	Self        string `json:"self,omitempty"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StatusColor string `json:"statusColor,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
}

func (p Priority) String() string { return prettyJSON(p) }

// Status represents an issue status.
type Status struct {
	Self           string          `json:"self,omitempty"`
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	IconURL        string          `json:"iconUrl,omitempty"`
	StatusCategory *StatusCategory `json:"statusCategory,omitempty"`
}

func (s Status) String() string { return prettyJSON(s) }

// StatusCategory represents a status category.
type StatusCategory struct {
	Self      string `json:"self,omitempty"`
	ID        int64  `json:"id"`
	Key       string `json:"key"` // "new", "indeterminate", "done"
	Name      string `json:"name"`
	ColorName string `json:"colorName,omitempty"`
}

func (s StatusCategory) String() string { return prettyJSON(s) }

// Resolution represents an issue resolution.
type Resolution struct {
	Self        string `json:"self,omitempty"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r Resolution) String() string { return prettyJSON(r) }

// Component represents a project component.
type Component struct {
	Self                string `json:"self,omitempty"`
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	Lead                *User  `json:"lead,omitempty"`
	AssigneeType        string `json:"assigneeType,omitempty"`
	Assignee            *User  `json:"assignee,omitempty"`
	RealAssigneeType    string `json:"realAssigneeType,omitempty"`
	RealAssignee        *User  `json:"realAssignee,omitempty"`
	IsAssigneeTypeValid bool   `json:"isAssigneeTypeValid,omitempty"`
	Project             string `json:"project,omitempty"`
	ProjectID           int64  `json:"projectId,omitempty"`
}

func (c Component) String() string { return prettyJSON(c) }

// Version represents a project version (fix version).
type Version struct {
	Self            string `json:"self,omitempty"`
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Archived        bool   `json:"archived"`
	Released        bool   `json:"released"`
	Overdue         bool   `json:"overdue,omitempty"`
	ReleaseDate     string `json:"releaseDate,omitempty"`
	UserReleaseDate string `json:"userReleaseDate,omitempty"`
	Project         string `json:"project,omitempty"`
	ProjectID       int64  `json:"projectId,omitempty"`
}

func (v Version) String() string { return prettyJSON(v) }

// Attachment represents an issue attachment.
type Attachment struct {
	Self       string         `json:"self,omitempty"`
	ID         string         `json:"id,omitempty"`
	Filename   string         `json:"filename"`
	Author     *User          `json:"author,omitempty"`
	Created    string         `json:"created,omitempty"`
	Size       int64          `json:"size"`
	MimeType   string         `json:"mimeType,omitempty"`
	Properties map[string]any `json:"properties"`
	Content    string         `json:"content,omitempty"`
	Thumbnail  string         `json:"thumbnail,omitempty"`
}

// CreatedTime parses and returns the Created timestamp.
func (a *Attachment) CreatedTime() (time.Time, error) {
	return ParseTime(a.Created)
}

func (a Attachment) String() string { return prettyJSON(a) }

// IssueLinkType describes a kind of link between issues ("Blocks", "Duplicate").
type IssueLinkType struct {
	Self    string `json:"self,omitempty"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

func (t IssueLinkType) String() string { return prettyJSON(t) }

// IssueLink links two issues.
type IssueLink struct {
	Self         string         `json:"self,omitempty"`
	ID           string         `json:"id"`
	Type         *IssueLinkType `json:"type,omitempty"`
	OutwardIssue *Issue         `json:"outwardIssue,omitempty"`
	InwardIssue  *Issue         `json:"inwardIssue,omitempty"`
}

func (l IssueLink) String() string { return prettyJSON(l) }

// Progress represents aggregated time progress on an issue.
type Progress struct {
	Progress int64 `json:"progress"`
	Total    int64 `json:"total"`
	Percent  int64 `json:"percent,omitempty"`
}

func (p Progress) String() string { return prettyJSON(p) }

// TimeTracking represents time tracking data.
type TimeTracking struct {
	OriginalEstimate         string `json:"originalEstimate,omitempty"`
	RemainingEstimate        string `json:"remainingEstimate,omitempty"`
	TimeSpent                string `json:"timeSpent,omitempty"`
	OriginalEstimateSeconds  int64  `json:"originalEstimateSeconds,omitempty"`
	RemainingEstimateSeconds int64  `json:"remainingEstimateSeconds,omitempty"`
	TimeSpentSeconds         int64  `json:"timeSpentSeconds,omitempty"`
}

func (t TimeTracking) String() string { return prettyJSON(t) }

// Vote holds an issue's votes.
type Vote struct {
	Self     string `json:"self,omitempty"`
	Votes    int64  `json:"votes"`
	HasVoted bool   `json:"hasVoted"`
	Voters   []User `json:"voters"`
}

func (v Vote) String() string { return prettyJSON(v) }

// Watches holds an issue's watchers summary.
type Watches struct {
	Self       string `json:"self,omitempty"`
	WatchCount int64  `json:"watchCount"`
	IsWatching bool   `json:"isWatching"`
}

func (w Watches) String() string { return prettyJSON(w) }

// Changelog is the expanded change history of an issue.
type Changelog struct {
	Pagination
	Histories []History `json:"histories"`
}

func (c Changelog) String() string { return prettyJSON(c) }

// History is one change set in a changelog.
type History struct {
	ID      string        `json:"id,omitempty"`
	Author  *User         `json:"author,omitempty"`
	Created string        `json:"created"`
	Items   []HistoryItem `json:"items"`
}

// CreatedTime parses and returns the Created timestamp.
func (h *History) CreatedTime() (time.Time, error) {
	return ParseTime(h.Created)
}

func (h History) String() string { return prettyJSON(h) }

// HistoryItem is one field change. From and To hold raw ids of any JSON type.
type HistoryItem struct {
	Field      string `json:"field"`
	FieldType  string `json:"fieldtype,omitempty"`
	From       any    `json:"from"`
	FromString string `json:"fromString"`
	To         any    `json:"to"`
	ToString   string `json:"toString"`
}

func (h HistoryItem) String() string { return prettyJSON(h) }

// Comment represents a Jira comment.
type Comment struct {
	Self         string             `json:"self,omitempty"`
	ID           string             `json:"id"`
	Author       *User              `json:"author,omitempty"`
	UpdateAuthor *User              `json:"updateAuthor,omitempty"`
	Body         any                `json:"body"` // string (v2) or ADF document (v3)
	Created      string             `json:"created"`
	Updated      string             `json:"updated"`
	Visibility   *CommentVisibility `json:"visibility,omitempty"`
}

// CreatedTime parses and returns the Created timestamp.
func (c *Comment) CreatedTime() (time.Time, error) {
	return ParseTime(c.Created)
}

// UpdatedTime parses and returns the Updated timestamp.
func (c *Comment) UpdatedTime() (time.Time, error) {
	return ParseTime(c.Updated)
}

func (c Comment) String() string { return prettyJSON(c) }

// CommentVisibility represents comment visibility restrictions.
type CommentVisibility struct {
	Type  string `json:"type"`  // "group" or "role"
	Value string `json:"value"` // group name or role name
}

// PaginatedComments is a page of comments.
type PaginatedComments struct {
	Pagination
	Comments []Comment `json:"comments"`
}

func (p PaginatedComments) String() string { return prettyJSON(p) }

// Worklog is time logged against an issue.
type Worklog struct {
	Self             string `json:"self,omitempty"`
	ID               string `json:"id"`
	IssueID          string `json:"issueId"`
	Author           *User  `json:"author,omitempty"`
	UpdateAuthor     *User  `json:"updateAuthor,omitempty"`
	Comment          string `json:"comment"`
	Created          string `json:"created"`
	Updated          string `json:"updated"`
	Started          string `json:"started,omitempty"`
	TimeSpent        string `json:"timeSpent,omitempty"`
	TimeSpentSeconds int64  `json:"timeSpentSeconds,omitempty"`
}

// StartedTime parses and returns the Started timestamp.
func (w *Worklog) StartedTime() (time.Time, error) {
	return ParseTime(w.Started)
}

func (w Worklog) String() string { return prettyJSON(w) }

// PaginatedWorklog is a page of worklogs, as embedded in issue fields.
type PaginatedWorklog struct {
	Pagination
	Worklogs []Worklog `json:"worklogs"`
}

func (p PaginatedWorklog) String() string { return prettyJSON(p) }

// Permission describes one permission known to the instance.
type Permission struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type"` // "GLOBAL" or "PROJECT"
	Description string `json:"description"`
}

func (p Permission) String() string { return prettyJSON(p) }

// PermissionCollection maps permission keys to their descriptions.
type PermissionCollection struct {
	Permissions map[string]Permission `json:"permissions"`
}

func (p PermissionCollection) String() string { return prettyJSON(p) }

// MyPermission reports whether the calling user holds a permission.
type MyPermission struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	Type           string `json:"type,omitempty"`
	Description    string `json:"description"`
	HavePermission bool   `json:"havePermission"`
	DeprecatedKey  bool   `json:"deprecatedKey,omitempty"`
}

func (p MyPermission) String() string { return prettyJSON(p) }

// MyPermissionCollection maps permission keys to the caller's grants.
type MyPermissionCollection struct {
	Permissions map[string]MyPermission `json:"permissions"`
}

// Has reports whether the caller holds the permission named key.
func (p *MyPermissionCollection) Has(key string) bool {
	perm, ok := p.Permissions[key]
	return ok && perm.HavePermission
}

func (p MyPermissionCollection) String() string { return prettyJSON(p) }

// Transition represents an available status transition.
type Transition struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	To            *Status `json:"to,omitempty"`
	HasScreen     bool    `json:"hasScreen"`
	IsGlobal      bool    `json:"isGlobal"`
	IsInitial     bool    `json:"isInitial"`
	IsConditional bool    `json:"isConditional"`
}

func (t Transition) String() string { return prettyJSON(t) }

// TransitionList is the response from the transitions endpoint.
type TransitionList struct {
	Expand      string       `json:"expand,omitempty"`
	Transitions []Transition `json:"transitions"`
}

// RemoteLink represents a remote link on an issue.
type RemoteLink struct {
	ID           int              `json:"id,omitempty"`
	Self         string           `json:"self,omitempty"`
	GlobalID     string           `json:"globalId,omitempty"`
	Application  *RemoteLinkApp   `json:"application,omitempty"`
	Relationship string           `json:"relationship,omitempty"`
	Object       RemoteLinkObject `json:"object"`
}

func (r RemoteLink) String() string { return prettyJSON(r) }

// RemoteLinkApp represents the application information for a remote link.
type RemoteLinkApp struct {
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
}

// RemoteLinkObject represents the linked object details.
type RemoteLinkObject struct {
	URL     string            `json:"url"`
	Title   string            `json:"title"`
	Summary string            `json:"summary,omitempty"`
	Icon    *RemoteLinkIcon   `json:"icon,omitempty"`
	Status  *RemoteLinkStatus `json:"status,omitempty"`
}

// RemoteLinkIcon represents the icon for a remote link.
type RemoteLinkIcon struct {
	URL16x16 string `json:"url16x16,omitempty"`
	Title    string `json:"title,omitempty"`
}

// RemoteLinkStatus represents the status of a remote link.
type RemoteLinkStatus struct {
	Resolved bool            `json:"resolved"`
	Icon     *RemoteLinkIcon `json:"icon,omitempty"`
}

// ParseTime parses a Jira timestamp string.
// Jira uses ISO 8601 format with timezone offset.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	// Jira format: "2025-01-15T10:30:00.000+0000"
	formats := []string{
		"2006-01-02T15:04:05.000-0700",
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{Value: s}
}

// FormatTime formats a time.Time as a Jira timestamp string.
func FormatTime(t time.Time) string {
	return t.Format(TimeFormat)
}

package jira

import (
	"context"
	"net/url"
)

// ProjectExpand names an expandable section of a project.
type ProjectExpand string

// Expandable project sections.
const (
	ProjectExpandDescription ProjectExpand = "description"
	ProjectExpandLead        ProjectExpand = "lead"
	ProjectExpandURL         ProjectExpand = "url"
	ProjectExpandProjectKeys ProjectExpand = "projectKeys"
)

// GetProject retrieves a project by key or id.
func (c *Client) GetProject(ctx context.Context, keyOrID string, expand ...ProjectExpand) (*Response[Project], error) {
	return Get[Project](ctx, c, "/project/"+url.PathEscape(keyOrID), Options(Expand[ProjectExpand](expand)))
}

// MyPermissionKey selects the context MyPermissions evaluates in.
type MyPermissionKey string

// Permission contexts.
const (
	MyPermissionProjectKey MyPermissionKey = "projectKey"
	MyPermissionProjectID  MyPermissionKey = "projectId"
	MyPermissionIssueKey   MyPermissionKey = "issueKey"
	MyPermissionIssueID    MyPermissionKey = "issueId"
)

// ListPermissions retrieves every permission known to the instance.
func (c *Client) ListPermissions(ctx context.Context) (*Response[PermissionCollection], error) {
	return Get[PermissionCollection](ctx, c, "/permissions")
}

// MyPermissions reports the calling user's permissions in the project or
// issue identified by key and value.
func (c *Client) MyPermissions(
	ctx context.Context,
	key MyPermissionKey,
	value string,
) (*Response[MyPermissionCollection], error) {
	return Get[MyPermissionCollection](ctx, c, "/mypermissions", Query(map[string]string{string(key): value}))
}

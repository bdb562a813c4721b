package jira

import (
	"context"
	"net/url"
)

// getByID fetches one resource from a /{collection}/{id} endpoint.
func getByID[T any](ctx context.Context, c *Client, collection, id string) (*Response[T], error) {
	return Get[T](ctx, c, "/"+collection+"/"+url.PathEscape(id))
}

// GetServerInfo retrieves server information.
func (c *Client) GetServerInfo(ctx context.Context) (*Response[ServerInfo], error) {
	return Get[ServerInfo](ctx, c, "/serverInfo")
}

// GetAttachment retrieves attachment metadata.
func (c *Client) GetAttachment(ctx context.Context, id string) (*Response[Attachment], error) {
	return getByID[Attachment](ctx, c, "attachment", id)
}

// GetComponent retrieves a project component.
func (c *Client) GetComponent(ctx context.Context, id string) (*Response[Component], error) {
	return getByID[Component](ctx, c, "component", id)
}

// GetIssueLink retrieves a link between two issues.
func (c *Client) GetIssueLink(ctx context.Context, id string) (*Response[IssueLink], error) {
	return getByID[IssueLink](ctx, c, "issueLink", id)
}

// GetIssueLinkType retrieves an issue link type.
func (c *Client) GetIssueLinkType(ctx context.Context, id string) (*Response[IssueLinkType], error) {
	return getByID[IssueLinkType](ctx, c, "issueLinkType", id)
}

// GetIssueType retrieves an issue type.
func (c *Client) GetIssueType(ctx context.Context, id string) (*Response[IssueType], error) {
	return getByID[IssueType](ctx, c, "issuetype", id)
}

// GetPriority retrieves an issue priority.
func (c *Client) GetPriority(ctx context.Context, id string) (*Response[Priority], error) {
	return getByID[Priority](ctx, c, "priority", id)
}

// GetResolution retrieves an issue resolution.
func (c *Client) GetResolution(ctx context.Context, id string) (*Response[Resolution], error) {
	return getByID[Resolution](ctx, c, "resolution", id)
}

// GetStatus retrieves a status by id or name.
func (c *Client) GetStatus(ctx context.Context, idOrName string) (*Response[Status], error) {
	return getByID[Status](ctx, c, "status", idOrName)
}

// GetStatusCategory retrieves a status category by id or key.
func (c *Client) GetStatusCategory(ctx context.Context, idOrKey string) (*Response[StatusCategory], error) {
	return getByID[StatusCategory](ctx, c, "statuscategory", idOrKey)
}

package jira

import (
	"context"
	"net/url"
)

// ApplicationRoleOptions carries the optimistic-locking token for role
// updates. IfMatch is usually the ETag from a previous read.
type ApplicationRoleOptions struct {
	IfMatch string
}

// withIfMatch returns a client that sends If-Match when opts carries one.
func (c *Client) withIfMatch(opts *ApplicationRoleOptions) *Client {
	if opts == nil || opts.IfMatch == "" {
		return c
	}
	return c.WithHeader("If-Match", opts.IfMatch)
}

// GetApplicationRole retrieves an application role by key.
func (c *Client) GetApplicationRole(ctx context.Context, key string) (*Response[ApplicationRole], error) {
	return Get[ApplicationRole](ctx, c, "/applicationrole/"+url.PathEscape(key))
}

// ListApplicationRoles retrieves every application role.
func (c *Client) ListApplicationRoles(ctx context.Context) (*Response[[]ApplicationRole], error) {
	return Get[[]ApplicationRole](ctx, c, "/applicationrole")
}

// UpdateApplicationRole stores role under its key. A stale If-Match yields a
// precondition-failed error.
func (c *Client) UpdateApplicationRole(
	ctx context.Context,
	role *ApplicationRole,
	opts *ApplicationRoleOptions,
) (*Response[ApplicationRole], error) {
	if role == nil || role.Key == "" {
		return nil, ErrApplicationRoleKeyRequired
	}
	return Put[ApplicationRole](ctx, c.withIfMatch(opts), "/applicationrole/"+url.PathEscape(role.Key), role)
}

// UpdateApplicationRoles stores several roles in one request.
func (c *Client) UpdateApplicationRoles(
	ctx context.Context,
	roles []ApplicationRole,
	opts *ApplicationRoleOptions,
) (*Response[[]ApplicationRole], error) {
	return Put[[]ApplicationRole](ctx, c.withIfMatch(opts), "/applicationrole", roles)
}

package jira

import (
	"context"
	"strconv"
)

// UserExpand names an expandable section of a user.
type UserExpand string

// Expandable user sections.
const (
	UserExpandGroups           UserExpand = "groups"
	UserExpandApplicationRoles UserExpand = "applicationRoles"
)

// UserOptions filters user search by activity. Use DefaultUserOptions for
// Jira's defaults (active only).
type UserOptions struct {
	IncludeActive   bool
	IncludeInactive bool
}

// DefaultUserOptions includes active users and excludes inactive ones.
func DefaultUserOptions() UserOptions {
	return UserOptions{IncludeActive: true}
}

// Query implements QueryOption.
func (o UserOptions) Query() map[string]string {
	return map[string]string{
		"includeActive":   strconv.FormatBool(o.IncludeActive),
		"includeInactive": strconv.FormatBool(o.IncludeInactive),
	}
}

// GroupOptions controls group member listing.
type GroupOptions struct {
	IncludeInactiveUsers bool
}

// Query implements QueryOption.
func (o GroupOptions) Query() map[string]string {
	return map[string]string{
		"includeInactiveUsers": strconv.FormatBool(o.IncludeInactiveUsers),
	}
}

// SearchUsers finds users whose username, name or email matches username.
func (c *Client) SearchUsers(
	ctx context.Context,
	username string,
	opts *UserOptions,
	page *Pagination,
) (*Response[[]User], error) {
	userOpts := DefaultUserOptions()
	if opts != nil {
		userOpts = *opts
	}
	return Get[[]User](ctx, c, "/user/search",
		Options(userOpts, pageOrDefault(page), QueryMap{"username": username}))
}

// GetUserByUsername retrieves a user by username.
func (c *Client) GetUserByUsername(ctx context.Context, username string, expand ...UserExpand) (*Response[User], error) {
	return Get[User](ctx, c, "/user", Options(QueryMap{"username": username}, Expand[UserExpand](expand)))
}

// GetUserByKey retrieves a user by user key.
func (c *Client) GetUserByKey(ctx context.Context, key string, expand ...UserExpand) (*Response[User], error) {
	return Get[User](ctx, c, "/user", Options(QueryMap{"key": key}, Expand[UserExpand](expand)))
}

// GetGroupMembers retrieves one page of a group's members.
func (c *Client) GetGroupMembers(
	ctx context.Context,
	name string,
	opts *GroupOptions,
	page *Pagination,
) (*Response[Group], error) {
	groupOpts := GroupOptions{}
	if opts != nil {
		groupOpts = *opts
	}
	return Get[Group](ctx, c, "/group/member", Options(groupOpts, pageOrDefault(page), QueryMap{"groupname": name}))
}

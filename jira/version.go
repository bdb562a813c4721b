package jira

import (
	"context"
	"net/url"
)

// GetVersion retrieves a project version.
func (c *Client) GetVersion(ctx context.Context, id string) (*Response[Version], error) {
	return getByID[Version](ctx, c, "version", id)
}

// CreateVersion creates v. Set Project or ProjectID; ID is assigned by Jira.
func (c *Client) CreateVersion(ctx context.Context, v *Version) (*Response[Version], error) {
	return Post[Version](ctx, c, "/version", v)
}

// UpdateVersion stores v under v.ID.
func (c *Client) UpdateVersion(ctx context.Context, v *Version) (*Response[Version], error) {
	if v == nil || v.ID == "" {
		return nil, ErrVersionIDRequired
	}
	return Put[Version](ctx, c, "/version/"+url.PathEscape(v.ID), v)
}

type worklogListRequest struct {
	IDs []int64 `json:"ids"`
}

// GetWorklogs retrieves worklogs by id, in one request.
func (c *Client) GetWorklogs(ctx context.Context, ids []int64) (*Response[[]Worklog], error) {
	if ids == nil {
		ids = []int64{}
	}
	return Post[[]Worklog](ctx, c, "/worklog/list", worklogListRequest{IDs: ids})
}

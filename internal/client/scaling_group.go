package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/skylift-io/skyctl/internal/output"
)

// DefaultScalingGroupListFields is the column set of scaling group listings.
var DefaultScalingGroupListFields = []output.FieldSpec{
	output.Field("name", "Name"),
	output.Field("description", "Description"),
	output.Field("is_active", "Active"),
	output.Field("driver", "Driver"),
	output.Field("scheduler", "Scheduler"),
	output.Field("created_at", "Created At").WithFormatter(output.TimeFormatter{}),
}

// DefaultScalingGroupDetailFields adds the option blobs to the list columns.
var DefaultScalingGroupDetailFields = append(
	DefaultScalingGroupListFields[:len(DefaultScalingGroupListFields):len(DefaultScalingGroupListFields)],
	output.Field("driver_opts", "Driver Options").WithFormatter(output.NestedFormatter{}),
	output.Field("scheduler_opts", "Scheduler Options").WithFormatter(output.NestedFormatter{}),
)

// ScalingGroupNameField is the single column of scalar name listings.
var ScalingGroupNameField = []output.FieldSpec{
	output.Field("name", "Name"),
}

// ScalingGroupService administers scaling groups (resource groups).
type ScalingGroupService struct {
	c *Client
}

// ScalingGroups returns the scaling group service.
func (c *Client) ScalingGroups() *ScalingGroupService {
	return &ScalingGroupService{c: c}
}

// List returns all scaling groups.
func (s *ScalingGroupService) List(ctx context.Context) ([]output.Item, error) {
	var resp struct {
		Items []map[string]any `json:"items"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/admin/scaling-groups", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toItems(resp.Items), nil
}

// ListAvailable returns the names of scaling groups usable by the given
// access group.
func (s *ScalingGroupService) ListAvailable(ctx context.Context, group string) ([]any, error) {
	q := url.Values{}
	q.Set("group", group)
	var resp struct {
		ScalingGroups []string `json:"scaling_groups"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/admin/scaling-groups/available", q, nil, &resp); err != nil {
		return nil, err
	}
	names := make([]any, len(resp.ScalingGroups))
	for i, n := range resp.ScalingGroups {
		names[i] = n
	}
	return names, nil
}

// Detail fetches one scaling group by name, or (nil, nil) when absent.
func (s *ScalingGroupService) Detail(ctx context.Context, name string) (output.Item, error) {
	var raw map[string]any
	err := s.c.do(ctx, http.MethodGet, "/admin/scaling-groups/"+url.PathEscape(name), nil, nil, &raw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return output.Item(raw), nil
}

// ScalingGroupParams holds the attributes of a scaling group create or
// update. Nil option maps leave the stored options unchanged on update.
type ScalingGroupParams struct {
	Description   string         `json:"description"`
	IsActive      bool           `json:"is_active"`
	Driver        string         `json:"driver"`
	DriverOpts    map[string]any `json:"driver_opts,omitempty"`
	Scheduler     string         `json:"scheduler"`
	SchedulerOpts map[string]any `json:"scheduler_opts,omitempty"`
}

// ScalingGroupMutationResult is the envelope of scaling group mutations.
type ScalingGroupMutationResult struct {
	Envelope
	ScalingGroup output.Item `json:"scaling_group"`
}

// Create registers a new scaling group.
func (s *ScalingGroupService) Create(ctx context.Context, name string, params ScalingGroupParams) (*ScalingGroupMutationResult, error) {
	body := map[string]any{
		"name":           name,
		"description":    params.Description,
		"is_active":      params.IsActive,
		"driver":         params.Driver,
		"driver_opts":    params.DriverOpts,
		"scheduler":      params.Scheduler,
		"scheduler_opts": params.SchedulerOpts,
	}
	var result ScalingGroupMutationResult
	if err := s.c.do(ctx, http.MethodPost, "/admin/scaling-groups", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update modifies an existing scaling group.
func (s *ScalingGroupService) Update(ctx context.Context, name string, params ScalingGroupParams) (*Envelope, error) {
	var result Envelope
	err := s.c.do(ctx, http.MethodPatch, "/admin/scaling-groups/"+url.PathEscape(name), nil, params, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a scaling group.
func (s *ScalingGroupService) Delete(ctx context.Context, name string) (*Envelope, error) {
	var result Envelope
	err := s.c.do(ctx, http.MethodDelete, "/admin/scaling-groups/"+url.PathEscape(name), nil, nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AssociateDomain allows a domain to schedule onto the scaling group.
func (s *ScalingGroupService) AssociateDomain(ctx context.Context, scalingGroup, domain string) (*Envelope, error) {
	body := map[string]any{"scaling_group": scalingGroup, "domain": domain}
	var result Envelope
	if err := s.c.do(ctx, http.MethodPost, "/admin/scaling-groups/associate-domain", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DissociateDomain revokes a domain's access to the scaling group.
func (s *ScalingGroupService) DissociateDomain(ctx context.Context, scalingGroup, domain string) (*Envelope, error) {
	body := map[string]any{"scaling_group": scalingGroup, "domain": domain}
	var result Envelope
	if err := s.c.do(ctx, http.MethodPost, "/admin/scaling-groups/dissociate-domain", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

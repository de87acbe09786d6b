package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/skylift-io/skyctl/internal/output"
)

// DefaultResourcePolicyFields is the column set of keypair resource policy
// listings and detail views.
var DefaultResourcePolicyFields = []output.FieldSpec{
	output.Field("name", "Name"),
	output.Field("created_at", "Created At").WithFormatter(output.TimeFormatter{}),
	output.Field("total_resource_slots", "Total Resource Slots").WithFormatter(output.NestedFormatter{}),
	output.Field("max_concurrent_sessions", "Max Concurrent Sessions"),
	output.Field("max_containers_per_session", "Max Containers per Session"),
	output.Field("max_vfolder_count", "Max VFolder Count"),
	output.Field("max_vfolder_size", "Max VFolder Size").WithFormatter(output.SizeFormatter{}),
	output.Field("idle_timeout", "Idle Timeout (sec)"),
	output.Field("default_for_unspecified", "Default for Unspecified"),
	output.Field("allowed_vfolder_hosts", "Allowed VFolder Hosts").WithFormatter(output.NestedFormatter{}),
}

// ResourcePolicyService administers keypair resource policies.
type ResourcePolicyService struct {
	c *Client
}

// ResourcePolicies returns the resource policy service.
func (c *Client) ResourcePolicies() *ResourcePolicyService {
	return &ResourcePolicyService{c: c}
}

// List returns all keypair resource policies.
func (s *ResourcePolicyService) List(ctx context.Context) ([]output.Item, error) {
	var resp struct {
		Items []map[string]any `json:"items"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/admin/resource-policies", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toItems(resp.Items), nil
}

// Info fetches one resource policy by name, or (nil, nil) when absent.
func (s *ResourcePolicyService) Info(ctx context.Context, name string) (output.Item, error) {
	var raw map[string]any
	err := s.c.do(ctx, http.MethodGet, "/admin/resource-policies/"+url.PathEscape(name), nil, nil, &raw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return output.Item(raw), nil
}

// ResourcePolicyParams holds the attributes of a resource policy create or
// update. TotalResourceSlots is a slot-name to amount mapping sent verbatim.
type ResourcePolicyParams struct {
	DefaultForUnspecified   string         `json:"default_for_unspecified"`
	TotalResourceSlots      map[string]any `json:"total_resource_slots"`
	MaxConcurrentSessions   int            `json:"max_concurrent_sessions"`
	MaxContainersPerSession int            `json:"max_containers_per_session"`
	MaxVFolderCount         int            `json:"max_vfolder_count"`
	MaxVFolderSize          int64          `json:"max_vfolder_size"`
	IdleTimeout             int            `json:"idle_timeout"`
	AllowedVFolderHosts     []string       `json:"allowed_vfolder_hosts"`
}

// ResourcePolicyMutationResult is the envelope of resource policy mutations.
type ResourcePolicyMutationResult struct {
	Envelope
	ResourcePolicy output.Item `json:"resource_policy"`
}

// Create registers a new keypair resource policy.
func (s *ResourcePolicyService) Create(ctx context.Context, name string, params ResourcePolicyParams) (*ResourcePolicyMutationResult, error) {
	body := map[string]any{
		"name":                       name,
		"default_for_unspecified":    params.DefaultForUnspecified,
		"total_resource_slots":       params.TotalResourceSlots,
		"max_concurrent_sessions":    params.MaxConcurrentSessions,
		"max_containers_per_session": params.MaxContainersPerSession,
		"max_vfolder_count":          params.MaxVFolderCount,
		"max_vfolder_size":           params.MaxVFolderSize,
		"idle_timeout":               params.IdleTimeout,
		"allowed_vfolder_hosts":      params.AllowedVFolderHosts,
	}
	var result ResourcePolicyMutationResult
	if err := s.c.do(ctx, http.MethodPost, "/admin/resource-policies", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update modifies an existing resource policy. Sessions already scheduled
// under the old limits are unaffected until their next scheduling decision.
func (s *ResourcePolicyService) Update(ctx context.Context, name string, params ResourcePolicyParams) (*Envelope, error) {
	var result Envelope
	err := s.c.do(ctx, http.MethodPatch, "/admin/resource-policies/"+url.PathEscape(name), nil, params, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a resource policy. The manager rejects deletion while any
// keypair still references the policy.
func (s *ResourcePolicyService) Delete(ctx context.Context, name string) (*Envelope, error) {
	var result Envelope
	err := s.c.do(ctx, http.MethodDelete, "/admin/resource-policies/"+url.PathEscape(name), nil, nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

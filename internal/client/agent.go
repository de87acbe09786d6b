package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/skylift-io/skyctl/internal/output"
)

// DefaultAgentFields is the column set of agent listings and detail views.
var DefaultAgentFields = []output.FieldSpec{
	output.Field("id", "ID"),
	output.Field("status", "Status"),
	output.Field("scaling_group", "Scaling Group"),
	output.Field("region", "Region"),
	output.Field("first_contact", "First Contact").WithFormatter(output.TimeFormatter{}),
	output.Field("cpu_cur_pct", "CPU Usage (%)"),
	output.Field("mem_cur_bytes", "Used Memory (MiB)").WithFormatter(output.MiBFormatter{}),
	output.Field("available_slots", "Available Slots").WithFormatter(output.NestedFormatter{}),
	output.Field("occupied_slots", "Occupied Slots").WithFormatter(output.NestedFormatter{}),
}

// AgentService inspects the compute agents registered to the cluster.
type AgentService struct {
	c *Client
}

// Agents returns the agent service.
func (c *Client) Agents() *AgentService {
	return &AgentService{c: c}
}

// Detail fetches one agent by ID, or (nil, nil) when absent.
func (s *AgentService) Detail(ctx context.Context, agentID string, fields []output.FieldSpec) (output.Item, error) {
	q := url.Values{}
	q.Set("fields", strings.Join(fieldNames(fields), ","))

	var raw map[string]any
	err := s.c.do(ctx, http.MethodGet, "/admin/agents/"+url.PathEscape(agentID), q, nil, &raw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return output.Item(raw), nil
}

// AgentListOptions filters paginated agent listings.
type AgentListOptions struct {
	// Status filters by agent lifecycle status (ALIVE, LOST, RESTARTING,
	// TERMINATED).
	Status string

	// Filter is a manager-side query filter expression.
	Filter string

	// Order is a manager-side ordering expression.
	Order string
}

// PaginatedList fetches one page of agents.
func (s *AgentService) PaginatedList(
	ctx context.Context,
	opts AgentListOptions,
	fields []output.FieldSpec,
	offset, pageSize int,
) (*output.PageResult, error) {
	q := listQuery(offset, pageSize, opts.Filter, opts.Order, fieldNames(fields))
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}

	var resp pagedResponse
	if err := s.c.do(ctx, http.MethodGet, "/admin/agents", q, nil, &resp); err != nil {
		return nil, err
	}
	return &output.PageResult{
		Items:      toItems(resp.Items),
		TotalCount: resp.TotalCount,
		Fields:     fields,
	}, nil
}

package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/skylift-io/skyctl/internal/output"
)

// DefaultImageListFields is the column set of image listings.
var DefaultImageListFields = []output.FieldSpec{
	output.Field("name", "Name"),
	output.Field("registry", "Registry"),
	output.Field("architecture", "Arch"),
	output.Field("tag", "Tag"),
	output.Field("digest", "Digest"),
	output.Field("size_bytes", "Size (bytes)").WithFormatter(output.SizeFormatter{}),
	output.Field("aliases", "Aliases").WithFormatter(output.NestedFormatter{}),
}

// ImageService manages the cluster's kernel image catalog.
type ImageService struct {
	c *Client
}

// Images returns the image service.
func (c *Client) Images() *ImageService {
	return &ImageService{c: c}
}

// List returns all registered images. When operationOnly is set, only
// operational (system) images are returned.
func (s *ImageService) List(ctx context.Context, operationOnly bool) ([]output.Item, error) {
	q := url.Values{}
	if operationOnly {
		q.Set("operation", "true")
	}
	var resp struct {
		Items []map[string]any `json:"items"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/admin/images", q, nil, &resp); err != nil {
		return nil, err
	}
	return toItems(resp.Items), nil
}

// RescanResult reports whether a registry rescan job was accepted, and the
// background task tracking it.
type RescanResult struct {
	Envelope
	TaskID uuid.UUID `json:"task_id"`
}

// Rescan asks the manager to refresh image metadata from its configured
// container registries. An empty registry means all of them. The returned
// task ID can be watched via BackgroundTask.
func (s *ImageService) Rescan(ctx context.Context, registry string) (*RescanResult, error) {
	body := map[string]any{}
	if registry != "" {
		body["registry"] = registry
	}
	var result RescanResult
	if err := s.c.do(ctx, http.MethodPost, "/admin/images/rescan", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Alias registers an image alias pointing at target.
func (s *ImageService) Alias(ctx context.Context, alias, target string) (*Envelope, error) {
	body := map[string]any{"alias": alias, "target": target}
	var result Envelope
	if err := s.c.do(ctx, http.MethodPost, "/admin/images/alias", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Dealias removes an image alias.
func (s *ImageService) Dealias(ctx context.Context, alias string) (*Envelope, error) {
	body := map[string]any{"alias": alias}
	var result Envelope
	if err := s.c.do(ctx, http.MethodPost, "/admin/images/dealias", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// toItems converts decoded JSON objects into renderable items.
func toItems(raw []map[string]any) []output.Item {
	items := make([]output.Item, len(raw))
	for i, m := range raw {
		items[i] = output.Item(m)
	}
	return items
}

// fieldNames projects the API-side names out of a field set for the fields
// query parameter.
func fieldNames(fields []output.FieldSpec) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.FieldName
	}
	return names
}

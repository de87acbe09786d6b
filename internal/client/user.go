package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/skylift-io/skyctl/internal/output"
)

// DefaultUserFields is the column set of user listings and detail views.
var DefaultUserFields = []output.FieldSpec{
	output.Field("uuid", "UUID"),
	output.Field("username", "Username"),
	output.Field("role", "Role"),
	output.Field("email", "Email"),
	output.Field("full_name", "Full Name"),
	output.Field("need_password_change", "Need Password Change"),
	output.Field("status", "Status"),
	output.Field("status_info", "Status Info"),
	output.Field("created_at", "Created At").WithFormatter(output.TimeFormatter{}),
	output.Field("domain_name", "Domain Name"),
	output.Field("groups", "Groups").WithFormatter(output.NestedFormatter{}),
}

// UserService administers cluster user accounts.
type UserService struct {
	c *Client
}

// Users returns the user service.
func (c *Client) Users() *UserService {
	return &UserService{c: c}
}

// Detail fetches one user by email. An empty email returns the requester's
// own account. A missing user returns (nil, nil) so callers can render the
// not-found notice without treating it as an error.
func (s *UserService) Detail(ctx context.Context, email string, fields []output.FieldSpec) (output.Item, error) {
	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}
	q.Set("fields", strings.Join(fieldNames(fields), ","))

	var raw map[string]any
	err := s.c.do(ctx, http.MethodGet, "/admin/users/detail", q, nil, &raw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return output.Item(raw), nil
}

// UserListOptions filters paginated user listings.
type UserListOptions struct {
	// Status filters by account status (active, inactive, deleted,
	// before-verification).
	Status string

	// Group filters by group ID.
	Group string

	// Filter is a manager-side query filter expression.
	Filter string

	// Order is a manager-side ordering expression.
	Order string
}

// PaginatedList fetches one page of users.
func (s *UserService) PaginatedList(
	ctx context.Context,
	opts UserListOptions,
	fields []output.FieldSpec,
	offset, pageSize int,
) (*output.PageResult, error) {
	q := listQuery(offset, pageSize, opts.Filter, opts.Order, fieldNames(fields))
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Group != "" {
		q.Set("group", opts.Group)
	}

	var resp pagedResponse
	if err := s.c.do(ctx, http.MethodGet, "/admin/users", q, nil, &resp); err != nil {
		return nil, err
	}
	return &output.PageResult{
		Items:      toItems(resp.Items),
		TotalCount: resp.TotalCount,
		Fields:     fields,
	}, nil
}

// CreateUserParams holds the attributes of a new user account.
type CreateUserParams struct {
	DomainName         string `json:"domain_name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Username           string `json:"username,omitempty"`
	FullName           string `json:"full_name,omitempty"`
	Role               string `json:"role,omitempty"`
	Status             string `json:"status,omitempty"`
	NeedPasswordChange bool   `json:"need_password_change,omitempty"`
	Description        string `json:"description,omitempty"`
}

// UserMutationResult is the envelope of user create/update operations.
type UserMutationResult struct {
	Envelope
	User output.Item `json:"user"`
}

// Create registers a new user account.
func (s *UserService) Create(ctx context.Context, params CreateUserParams) (*UserMutationResult, error) {
	var result UserMutationResult
	if err := s.c.do(ctx, http.MethodPost, "/admin/users", nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUserParams holds partial updates of an existing account. Nil
// pointers leave the corresponding attribute unchanged.
type UpdateUserParams struct {
	Password           *string `json:"password,omitempty"`
	Username           *string `json:"username,omitempty"`
	FullName           *string `json:"full_name,omitempty"`
	DomainName         *string `json:"domain_name,omitempty"`
	Role               *string `json:"role,omitempty"`
	Status             *string `json:"status,omitempty"`
	NeedPasswordChange *bool   `json:"need_password_change,omitempty"`
	Description        *string `json:"description,omitempty"`
}

// Update modifies an existing user account identified by email.
func (s *UserService) Update(ctx context.Context, email string, params UpdateUserParams) (*Envelope, error) {
	q := url.Values{}
	q.Set("email", email)
	var result Envelope
	if err := s.c.do(ctx, http.MethodPatch, "/admin/users", q, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete inactivates a user account. The account and its data remain.
func (s *UserService) Delete(ctx context.Context, email string) (*Envelope, error) {
	q := url.Values{}
	q.Set("email", email)
	var result Envelope
	if err := s.c.do(ctx, http.MethodDelete, "/admin/users", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Purge permanently deletes a user account. When purgeSharedVFolders is
// false, shared folders survive with ownership migrated to the requesting
// admin.
func (s *UserService) Purge(ctx context.Context, email string, purgeSharedVFolders bool) (*Envelope, error) {
	q := url.Values{}
	q.Set("email", email)
	body := map[string]any{"purge_shared_vfolders": purgeSharedVFolders}
	var result Envelope
	if err := s.c.do(ctx, http.MethodPost, "/admin/users/purge", q, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/skylift-io/skyctl/internal/config"
	"github.com/skylift-io/skyctl/internal/logging"
)

// minManagerVersion is the oldest manager release this client speaks to.
const minManagerVersion = "1.4.0"

// requestIDHeader carries the per-request ULID for server-side correlation.
const requestIDHeader = "X-Skylift-Request-ID"

// Client is a scoped connection to the Skylift manager API. Open one per
// command invocation and release it with Close on every exit path.
type Client struct {
	baseURL    string
	accessKey  string
	secretKey  string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient supplies a custom HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client from the given configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		accessKey:  cfg.AccessKey,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		log:        logging.ComponentLogger("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying connection resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Envelope is the common response wrapper of mutating operations. Ok false
// is an application-level failure whose Msg is shown to the user.
type Envelope struct {
	Ok  bool   `json:"ok"`
	Msg string `json:"msg"`
}

// versionInfo is the manager's self-description.
type versionInfo struct {
	Manager string `json:"manager"`
	Version string `json:"version"`
}

// CheckVersion fetches the manager version and rejects servers older than
// the minimum supported release.
func (c *Client) CheckVersion(ctx context.Context) error {
	var info versionInfo
	if err := c.do(ctx, http.MethodGet, "/version", nil, nil, &info); err != nil {
		return fmt.Errorf("fetching manager version: %w", err)
	}

	got, err := semver.NewVersion(info.Version)
	if err != nil {
		return fmt.Errorf("manager reported unparseable version %q: %w", info.Version, err)
	}
	minVer := semver.MustParse(minManagerVersion)
	if got.LessThan(minVer) {
		return fmt.Errorf("%w: server is %s, need at least %s",
			ErrIncompatibleServer, info.Version, minManagerVersion)
	}

	c.log.Debug().Str("manager", info.Manager).Str("version", info.Version).Msg("manager version accepted")
	return nil
}

// do performs one JSON request against the manager API. A nil body sends no
// payload; a non-nil out receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	requestID := ulid.Make().String()
	req.Header.Set(requestIDHeader, requestID)
	c.setAuthHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response of %s %s: %w", method, path, err)
	}
	return nil
}

// setAuthHeaders attaches the keypair credentials. Full request signing is
// the manager SDK's concern; the admin CLI sends the keypair directly over
// TLS.
func (c *Client) setAuthHeaders(req *http.Request) {
	if c.accessKey != "" {
		req.Header.Set("X-Skylift-Access-Key", c.accessKey)
	}
	if c.secretKey != "" {
		req.Header.Set("X-Skylift-Secret-Key", c.secretKey)
	}
}

// decodeAPIError turns a non-2xx response into an *APIError, tolerating
// non-JSON bodies.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var parsed struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Type = parsed.Type
		apiErr.Message = parsed.Message
		if apiErr.Message == "" {
			apiErr.Message = parsed.Msg
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// listQuery assembles the shared pagination and filtering parameters of
// paginated list endpoints.
func listQuery(offset, limit int, filter, order string, fields []string) url.Values {
	q := url.Values{}
	q.Set("offset", fmt.Sprintf("%d", offset))
	q.Set("limit", fmt.Sprintf("%d", limit))
	if filter != "" {
		q.Set("filter", filter)
	}
	if order != "" {
		q.Set("order", order)
	}
	if len(fields) > 0 {
		q.Set("fields", strings.Join(fields, ","))
	}
	return q
}

// pagedResponse is the wire shape of every paginated listing.
type pagedResponse struct {
	Items      []map[string]any `json:"items"`
	TotalCount int              `json:"total_count"`
}

// Package fred provides endpoint methods for FRED economic data.
package fred

import (
	"context"
	"net/url"

	"github.com/henrybloomingdale/fred-cli/internal/stlouisfed"
)

// DefaultBaseURL is the FRED API base URL.
const DefaultBaseURL = stlouisfed.DefaultBaseURL

// Client exposes one method per FRED resource. It embeds
// stlouisfed.Client for dispatch, pacing, and retry behavior.
type Client struct {
	*stlouisfed.Client
}

// Option configures a Client (alias for stlouisfed.Option).
type Option = stlouisfed.Option

// Re-export the base client options.
var (
	WithBaseURL      = stlouisfed.WithBaseURL
	WithAPIKey       = stlouisfed.WithAPIKey
	WithXMLOutput    = stlouisfed.WithXMLOutput
	WithHTTPClient   = stlouisfed.WithHTTPClient
	WithLogger       = stlouisfed.WithLogger
	WithRetryPolicy  = stlouisfed.WithRetryPolicy
	WithRequestState = stlouisfed.WithRequestState
	WithRateLimit    = stlouisfed.WithRateLimit
)

// NewClient creates a new FRED client with the given options.
func NewClient(opts ...Option) *Client {
	return &Client{Client: stlouisfed.NewClient(opts...)}
}

// NewClientWithBase creates a FRED client using an existing base client.
// Use this to share pacing state and rate limiters with other callers.
func NewClientWithBase(base *stlouisfed.Client) *Client {
	return &Client{Client: base}
}

// CallOption adjusts a single request.
type CallOption func(*stlouisfed.GetOptions)

// WithThrottle opts this call into the client-side pacing heuristic.
func WithThrottle() CallOption {
	return func(o *stlouisfed.GetOptions) { o.Throttle = true }
}

// AsXML switches this call to raw XML output.
func AsXML() CallOption {
	return func(o *stlouisfed.GetOptions) { o.XML = true }
}

func (c *Client) get(ctx context.Context, resource, path string, params url.Values, opts []CallOption) (*stlouisfed.Outcome, error) {
	var g stlouisfed.GetOptions
	for _, opt := range opts {
		opt(&g)
	}
	return c.Client.Get(ctx, resource, path, params, g)
}

// Category gets a specific category.
//
//	c.Category(ctx, "", url.Values{"id": {"125"}})
func (c *Client) Category(ctx context.Context, path string, params url.Values, opts ...CallOption) (*stlouisfed.Outcome, error) {
	return c.get(ctx, "category", path, params, opts)
}

// Release gets a release of economic data.
//
//	c.Release(ctx, "series", url.Values{"id": {"51"}})
func (c *Client) Release(ctx context.Context, path string, params url.Values, opts ...CallOption) (*stlouisfed.Outcome, error) {
	return c.get(ctx, "release", path, params, opts)
}

// Releases gets all releases of economic data.
//
//	c.Releases(ctx, "dates", url.Values{"limit": {"10"}})
func (c *Client) Releases(ctx context.Context, path string, params url.Values, opts ...CallOption) (*stlouisfed.Outcome, error) {
	return c.get(ctx, "releases", path, params, opts)
}

// Series gets economic series of data.
//
//	c.Series(ctx, "search", url.Values{"search_text": {"money stock"}})
func (c *Client) Series(ctx context.Context, path string, params url.Values, opts ...CallOption) (*stlouisfed.Outcome, error) {
	return c.get(ctx, "series", path, params, opts)
}

// Source gets a single source of economic data.
//
//	c.Source(ctx, "", url.Values{"id": {"51"}})
func (c *Client) Source(ctx context.Context, path string, params url.Values, opts ...CallOption) (*stlouisfed.Outcome, error) {
	return c.get(ctx, "source", path, params, opts)
}

// Sources gets all of FRED's sources of economic data.
//
//	c.Sources(ctx, "", nil)
func (c *Client) Sources(ctx context.Context, path string, params url.Values, opts ...CallOption) (*stlouisfed.Outcome, error) {
	return c.get(ctx, "sources", path, params, opts)
}

// Tags gets all FRED tags, or searches for tags by name.
//
//	c.Tags(ctx, "", url.Values{"search_text": {"monetary"}})
func (c *Client) Tags(ctx context.Context, path string, params url.Values, opts ...CallOption) (*stlouisfed.Outcome, error) {
	return c.get(ctx, "tags", path, params, opts)
}

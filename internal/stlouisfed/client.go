// Package stlouisfed provides the shared dispatch core for the St. Louis
// Fed FRED API: URL and parameter construction, client-side pacing against
// the provider's rate limit, retry of recoverable API errors, and response
// decoding. Endpoint packages build thin methods on top of this.
//
// FRED API documentation: https://api.stlouisfed.org/docs/fred/
package stlouisfed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the FRED API base URL.
	DefaultBaseURL = "https://api.stlouisfed.org/fred"
	// EnvAPIKey is the environment variable holding the API credential.
	// When set it takes precedence over WithAPIKey.
	EnvAPIKey = "FRED_API_KEY"

	// DefaultMaxResponseBytes is the maximum response body size (50 MB).
	DefaultMaxResponseBytes int64 = 50 * 1024 * 1024
)

// Client dispatches GET requests against the FRED API. It tracks the
// process-wide request count and first-request timestamp through State,
// throttles on request when the observed pace exceeds the provider budget,
// and retries recoverable API errors per Retry.
type Client struct {
	BaseURL    string
	APIKey     string
	Format     Format
	HTTPClient *http.Client
	Logger     *log.Logger
	Retry      RetryPolicy
	State      *RequestState
	Limiter    *rate.Limiter
	MaxBytes   int64

	sleep SleepFunc
	now   func() time.Time
}

// GetOptions carries the per-call switches of a dispatch.
type GetOptions struct {
	// Throttle opts this call into the pacing heuristic.
	Throttle bool
	// XML switches this call to raw XML output.
	XML bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the base URL for requests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.BaseURL = u }
}

// WithAPIKey sets the API credential. The FRED_API_KEY environment variable
// still wins when it is set.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.APIKey = key }
}

// WithXMLOutput makes raw XML the client's default output format.
func WithXMLOutput() Option {
	return func(c *Client) { c.Format = FormatXML }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithLogger sets the logger for retry and throttle diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// WithRetryPolicy overrides the retry policy for recoverable API errors.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.Retry = p }
}

// WithRequestState injects an isolated request state instead of the shared
// process-wide one.
func WithRequestState(s *RequestState) Option {
	return func(c *Client) { c.State = s }
}

// WithRateLimit installs a hard requests-per-second ceiling enforced before
// every attempt, independent of the opt-in pacing heuristic.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.Limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithMaxResponseBytes sets the maximum allowed response body size.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) { c.MaxBytes = n }
}

// WithSleep replaces the sleeper used for throttle and retry waits.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithClock replaces the time source used by the pacing heuristic.
func WithClock(fn func() time.Time) Option {
	return func(c *Client) { c.now = fn }
}

// NewClient creates a client with the given options. The credential is
// resolved once here: the FRED_API_KEY environment variable if present,
// otherwise whatever WithAPIKey supplied.
func NewClient(opts ...Option) *Client {
	c := &Client{
		BaseURL:  DefaultBaseURL,
		MaxBytes: DefaultMaxResponseBytes,
		Retry:    DefaultRetryPolicy(),
		State:    SharedRequestState(),
		Logger:   log.Default(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sleep: sleepWithContext,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.APIKey = key
	}
	return c
}

// Get dispatches a GET for the given resource and optional sub-path. The
// caller-supplied params are normalized (see normalizeParams) before the URL
// is assembled.
//
// Recoverable API errors (error code 429 or 500 in the decoded body) are
// retried per the retry policy; the final decoded payload is returned even
// when it still carries an error, and callers inspect Outcome.ErrorCode.
// Transport failures and malformed bodies are returned as Go errors and are
// never retried here.
func (c *Client) Get(ctx context.Context, resource, subPath string, params url.Values, opts GetOptions) (*Outcome, error) {
	format := c.Format
	if opts.XML {
		format = FormatXML
	}
	p, format := normalizeParams(params, resource, c.APIKey, format)

	u, err := buildURL(c.BaseURL, resource, subPath)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}
	fullURL := u + "?" + p.Encode()

	requestID := uuid.NewString()

	c.State.MarkFirstRequest(c.now())

	if opts.Throttle {
		if delay := c.State.ThrottleDelay(c.now()); delay > 0 {
			if c.Logger != nil {
				c.Logger.Debug("throttling", "requestID", requestID, "resource", resource, "delay", delay)
			}
			if err := c.sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("throttle wait: %w", err)
			}
		}
	}

	for attempt := 0; ; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		body, err := c.fetch(ctx, fullURL)
		if err != nil {
			return nil, err
		}
		c.State.RecordAttempt()

		out, err := DecodeOutcome(body, format)
		if err != nil {
			return nil, err
		}

		if !out.recoverable() {
			return out, nil
		}
		if attempt >= c.Retry.MaxRetries {
			if c.Logger != nil {
				c.Logger.Warn("giving up after retries", "requestID", requestID, "resource", resource, "code", out.ErrorCode(), "attempts", attempt+1)
			}
			return out, nil
		}

		if c.Logger != nil {
			c.Logger.Warn("request failed with recoverable code, retrying", "requestID", requestID, "resource", resource, "code", out.ErrorCode(), "attempt", attempt+1, "delay", c.Retry.Delay)
		}
		if err := c.sleep(ctx, c.Retry.Delay); err != nil {
			return nil, fmt.Errorf("retry wait: %w", err)
		}
	}
}

// fetch performs one HTTP attempt and returns the raw body. HTTP status
// codes are deliberately not interpreted here: FRED reports errors in the
// response body, and the retry loop reads them from the decoded outcome.
func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	// Guard against unbounded reads: read up to MaxBytes+1 to detect
	// oversized responses.
	r := io.LimitReader(resp.Body, c.MaxBytes+1)
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > c.MaxBytes {
		return nil, fmt.Errorf("response exceeds maximum size of %d bytes", c.MaxBytes)
	}
	return body, nil
}

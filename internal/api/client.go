package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is where the screentime backend listens in a local setup.
const DefaultBaseURL = "http://localhost:8080/api/v1/screentime"

const maxErrorBody = 512

// Config holds the connection settings for a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client issues GET requests against the screentime REST API. It holds no
// state between calls: no cache, no retries, no request deduplication.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for cfg.BaseURL.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("api: base URL not configured")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: unsupported base URL scheme %q", u.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the endpoint the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Summary returns aggregate usage over the whole dataset.
func (c *Client) Summary(ctx context.Context, p DeviceParams) (*Summary, error) {
	var out Summary
	if err := c.get(ctx, "/summary", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyStats returns one record per calendar day.
func (c *Client) DailyStats(ctx context.Context, p DailyParams) ([]DailyStat, error) {
	var out []DailyStat
	if err := c.get(ctx, "/daily", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Rankings returns apps in the requested sort order.
func (c *Client) Rankings(ctx context.Context, p RankingParams) ([]AppRanking, error) {
	var out []AppRanking
	if err := c.get(ctx, "/rankings", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories returns per-category aggregates.
func (c *Client) Categories(ctx context.Context, p DeviceParams) (CategoryStats, error) {
	var out CategoryStats
	if err := c.get(ctx, "/categories", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HourlyStats returns launch counts per hour of day.
func (c *Client) HourlyStats(ctx context.Context, p HourlyParams) ([]HourlyStat, error) {
	var out []HourlyStat
	if err := c.get(ctx, "/hourly", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Trends returns bucketed usage in hours.
func (c *Client) Trends(ctx context.Context, p TrendParams) ([]TrendPoint, error) {
	var out []TrendPoint
	if err := c.get(ctx, "/trends", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppDetail returns one app and its daily trend. packageID is placed into
// the path as is; callers must escape anything unsafe in a path segment.
func (c *Client) AppDetail(ctx context.Context, packageID string, p DeviceParams) (*AppDetail, error) {
	var out AppDetail
	if err := c.get(ctx, "/app/"+packageID, p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Devices lists the registered usage-data sources.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var out []Device
	if err := c.get(ctx, "/devices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CrossDeviceComparison(ctx context.Context) (*CrossDeviceComparison, error) {
	var out CrossDeviceComparison
	if err := c.get(ctx, "/cross-device/comparison", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WorkLifeBalance(ctx context.Context) (*WorkLifeBalance, error) {
	var out WorkLifeBalance
	if err := c.get(ctx, "/cross-device/work-life-balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TotalScreentime(ctx context.Context, p RangeParams) ([]DailyTotal, error) {
	var out []DailyTotal
	if err := c.get(ctx, "/cross-device/total-screentime", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SwitchingPatterns(ctx context.Context) ([]SwitchingPattern, error) {
	var out []SwitchingPattern
	if err := c.get(ctx, "/cross-device/switching-patterns", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AppEcosystem(ctx context.Context) (*AppEcosystem, error) {
	var out AppEcosystem
	if err := c.get(ctx, "/cross-device/app-ecosystem", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TimeAllocation(ctx context.Context) (TimeAllocation, error) {
	var out TimeAllocation
	if err := c.get(ctx, "/cross-device/time-allocation", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UserProfile(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.get(ctx, "/cross-device/user-profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     req.Method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", path, err)
	}
	return nil
}

// Package market is the HTTP client for the marketplace seller API. It owns
// request construction, retries and decoding; pagination and windowing live in
// the collector service.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
	"github.com/de-tools/seller-atlas/pkg/models/upstream"
	"github.com/de-tools/seller-atlas/pkg/store/tracker"
	"github.com/hashicorp/go-retryablehttp"
)

// Dates travel as YYYY-MM-DD in query parameters.
const dateParamLayout = "2006-01-02"

type Config struct {
	BaseURL          string        `mapstructure:"base_url"`
	UsersEndpoint    string        `mapstructure:"users_endpoint"`
	ListingsEndpoint string        `mapstructure:"listings_endpoint"`
	PayoutsEndpoint  string        `mapstructure:"payouts_endpoint"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RetryMax         int           `mapstructure:"retry_max"`
}

// Validate is called once at startup; a missing URL or endpoint path is a
// configuration error, never discovered ad hoc inside a fetch cycle.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("market: base_url is required")
	}
	if c.UsersEndpoint == "" {
		return fmt.Errorf("market: users_endpoint is required")
	}
	if c.ListingsEndpoint == "" {
		return fmt.Errorf("market: listings_endpoint is required")
	}
	if c.PayoutsEndpoint == "" {
		return fmt.Errorf("market: payouts_endpoint is required")
	}
	return nil
}

type Client struct {
	http    *retryablehttp.Client
	cfg     Config
	tracker tracker.Tracker
}

func NewClient(cfg Config, t tracker.Tracker) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		t = tracker.NewNoop()
	}

	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = cfg.RetryMax
	if cfg.Timeout > 0 {
		httpClient.HTTPClient.Timeout = cfg.Timeout
	}

	return &Client{
		http:    httpClient,
		cfg:     cfg,
		tracker: t,
	}, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/%s", c.cfg.BaseURL, c.cfg.UsersEndpoint)

	var res upstream.UsersResponse
	if err := c.getJSON(ctx, c.cfg.UsersEndpoint, "", endpoint, &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}

func (c *Client) GetListingsPage(
	ctx context.Context,
	user string,
	window domain.DateWindow,
	pageSize, pageIdx int,
) (*upstream.Listings, error) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("pageIdx", strconv.Itoa(pageIdx))
	params.Set("startFrom", window.Start.Format(dateParamLayout))
	params.Set("startTo", window.End.Format(dateParamLayout))

	endpoint := fmt.Sprintf("%s/%s/%s?%s",
		c.cfg.BaseURL, c.cfg.ListingsEndpoint, url.PathEscape(user), params.Encode())

	var res upstream.ListingsEnvelope
	if err := c.getJSON(ctx, c.cfg.ListingsEndpoint, user, endpoint, &res); err != nil {
		return nil, err
	}
	return &res.Listings, nil
}

func (c *Client) GetPayoutsPage(
	ctx context.Context,
	user string,
	pageSize, pageIdx int,
) (*upstream.PayoutsPage, error) {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("pageIdx", strconv.Itoa(pageIdx))

	endpoint := fmt.Sprintf("%s/%s/%s?%s",
		c.cfg.BaseURL, c.cfg.PayoutsEndpoint, url.PathEscape(user), params.Encode())

	var res upstream.PayoutsEnvelope
	if err := c.getJSON(ctx, c.cfg.PayoutsEndpoint, user, endpoint, &res); err != nil {
		return nil, err
	}
	return &res.Payouts, nil
}

func (c *Client) getJSON(ctx context.Context, name, user, endpoint string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", name, err)
	}

	started := time.Now()
	resp, err := c.http.Do(req)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.record(ctx, name, user, status, time.Since(started))

	if err != nil {
		return fmt.Errorf("request %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", name, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, endpoint, user string, status int, took time.Duration) {
	// Tracking must never fail a fetch cycle.
	_ = c.tracker.Record(ctx, tracker.Call{
		Endpoint: endpoint,
		Account:  user,
		Status:   status,
		Duration: took,
		CalledAt: time.Now(),
	})
}

package mediapackage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/streamops/channel-control/internal/errs"
	"go.uber.org/zap"
)

// OriginEndpoint is the packaging API's description of an origin endpoint.
// HlsPackage/DashPackage are presence markers; their contents are opaque here.
type OriginEndpoint struct {
	ID          string          `json:"Id"`
	ChannelID   string          `json:"ChannelId"`
	URL         string          `json:"Url"`
	HlsPackage  json.RawMessage `json:"HlsPackage,omitempty"`
	DashPackage json.RawMessage `json:"DashPackage,omitempty"`
}

// Streamable reports whether the endpoint exposes one of the supported
// streaming package types (HLS or DASH).
func (e OriginEndpoint) Streamable() bool {
	return len(e.HlsPackage) > 0 || len(e.DashPackage) > 0
}

type listOriginEndpointsResponse struct {
	OriginEndpoints []OriginEndpoint `json:"OriginEndpoints"`
	NextToken       string           `json:"NextToken,omitempty"`
}

// Client talks to the packaging/origin control API. It offers no server-side
// filter by channel, so callers scan the full listing.
type Client struct {
	base  string
	token string
	http  *http.Client
	log   *zap.Logger
}

// NewClient creates a packaging client for the given endpoint.
func NewClient(endpoint, token string, log *zap.Logger) *Client {
	return &Client{
		base:  strings.TrimRight(endpoint, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
		log:   log,
	}
}

// ListOriginEndpoints returns one page of origin endpoints plus the token for
// the next page ("" when exhausted).
func (c *Client) ListOriginEndpoints(ctx context.Context, nextToken string) ([]OriginEndpoint, string, error) {
	path := c.base + "/origin_endpoints"
	if nextToken != "" {
		path += "?nextToken=" + url.QueryEscape(nextToken)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("list origin endpoints: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, "", fmt.Errorf("list origin endpoints: %w", errs.ErrThrottled)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.log.Warn("packaging api error", zap.Int("status", resp.StatusCode))
		return nil, "", fmt.Errorf("list origin endpoints: packaging api status %d", resp.StatusCode)
	}

	var out listOriginEndpointsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("list origin endpoints: %w", err)
	}
	return out.OriginEndpoints, out.NextToken, nil
}

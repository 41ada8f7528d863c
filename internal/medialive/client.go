package medialive

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

	"github.com/streamops/channel-control/internal/errs"
	"go.uber.org/zap"
)

// Client talks to the encoder control API (REST/JSON). All calls are
// synchronous and request-scoped; retry policy belongs to the caller.
type Client struct {
	base  string
	token string
	http  *http.Client
	log   *zap.Logger
}

// NewClient creates an encoder client for the given endpoint. token, when
// non-empty, is sent as a bearer token.
func NewClient(endpoint, token string, log *zap.Logger) *Client {
	return &Client{
		base:  strings.TrimRight(endpoint, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
		log:   log,
	}
}

// ListChannels returns one page of channels plus the token for the next page
// ("" when exhausted).
func (c *Client) ListChannels(ctx context.Context, nextToken string) ([]Channel, string, error) {
	path := "/prod/channels"
	if nextToken != "" {
		path += "?nextToken=" + url.QueryEscape(nextToken)
	}
	var out listChannelsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, "", fmt.Errorf("list channels: %w", err)
	}
	return out.Channels, out.NextToken, nil
}

// DescribeChannel returns the full channel description.
func (c *Client) DescribeChannel(ctx context.Context, channelID string) (*Channel, error) {
	var out Channel
	if err := c.do(ctx, http.MethodGet, "/prod/channels/"+url.PathEscape(channelID), nil, &out); err != nil {
		return nil, fmt.Errorf("describe channel %s: %w", channelID, err)
	}
	return &out, nil
}

// StartChannel asks the encoder to start the channel and returns its
// post-request description.
func (c *Client) StartChannel(ctx context.Context, channelID string) (*Channel, error) {
	var out Channel
	if err := c.do(ctx, http.MethodPost, "/prod/channels/"+url.PathEscape(channelID)+"/start", nil, &out); err != nil {
		return nil, fmt.Errorf("start channel %s: %w", channelID, err)
	}
	return &out, nil
}

// StopChannel asks the encoder to stop the channel.
func (c *Client) StopChannel(ctx context.Context, channelID string) (*Channel, error) {
	var out Channel
	if err := c.do(ctx, http.MethodPost, "/prod/channels/"+url.PathEscape(channelID)+"/stop", nil, &out); err != nil {
		return nil, fmt.Errorf("stop channel %s: %w", channelID, err)
	}
	return &out, nil
}

// BatchUpdateSchedule submits schedule actions as a single Creates batch.
func (c *Client) BatchUpdateSchedule(ctx context.Context, channelID string, actions ...ScheduleAction) error {
	body := batchUpdateScheduleRequest{
		Creates: batchScheduleActionCreateRequest{ScheduleActions: actions},
	}
	if err := c.do(ctx, http.MethodPut, "/prod/channels/"+url.PathEscape(channelID)+"/schedule", body, nil); err != nil {
		return fmt.Errorf("batch update schedule %s: %w", channelID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := classify(resp.StatusCode); err != nil {
		c.log.Warn("encoder api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// classify maps encoder HTTP statuses onto the domain error taxonomy.
func classify(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return errs.ErrChannelNotFound
	case status == http.StatusTooManyRequests:
		return errs.ErrThrottled
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return errs.ErrInvalidInput
	default:
		return fmt.Errorf("encoder api status %d", status)
	}
}

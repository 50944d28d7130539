// Package youtube fetches channel counters from the YouTube Data API.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

type Client struct {
	svc    *ytapi.Service
	apiKey string
	log    logger.Logger
}

// NewClient builds a client whose every request is bounded by timeout.
// The key travels as the "key" query parameter on each call.
func NewClient(ctx context.Context, baseURL, apiKey string, timeout time.Duration, log logger.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	svc, err := ytapi.NewService(ctx,
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithEndpoint(strings.TrimRight(baseURL, "/")+"/"),
	)
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}

	return &Client{
		svc:    svc,
		apiKey: apiKey,
		log:    log,
	}, nil
}

// FetchCounters makes a single request, no retries. Any non-2xx status is
// returned as a *googleapi.Error.
func (c *Client) FetchCounters(ctx context.Context, channelID string) (domain.Counters, error) {
	resp, err := c.svc.Channels.List([]string{"statistics"}).
		Id(channelID).
		Context(ctx).
		Do(googleapi.QueryParameter("key", c.apiKey))
	if err != nil {
		return domain.Counters{}, fmt.Errorf("youtube: channel stats: %w", err)
	}

	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return domain.Counters{}, domain.ErrChannelNotFound
	}

	stats := resp.Items[0].Statistics
	if stats == nil {
		stats = &ytapi.ChannelStatistics{}
	}

	counters := domain.Counters{
		Views:       int64(stats.ViewCount),
		Subscribers: int64(stats.SubscriberCount),
		Videos:      int64(stats.VideoCount),
	}

	c.log.Debug("youtube: channel stats fetched", "channel_id", channelID, "views", counters.Views)

	return counters, nil
}

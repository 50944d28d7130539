package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()

	c, err := NewClient(context.Background(), baseURL, "secret", timeout, logger.Nop())
	require.NoError(t, err)
	return c
}

func TestFetchCounters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "statistics", r.URL.Query().Get("part"))
		assert.Equal(t, "UC123", r.URL.Query().Get("id"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"UC123","statistics":{"viewCount":"1000","subscriberCount":"50","videoCount":"10"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)

	got, err := c.FetchCounters(context.Background(), "UC123")
	require.NoError(t, err)
	assert.Equal(t, domain.Counters{Views: 1000, Subscribers: 50, Videos: 10}, got)
}

func TestFetchCountersNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"kind":"youtube#channelListResponse","items":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)

	_, err := c.FetchCounters(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)
}

func TestFetchCountersHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)

	_, err := c.FetchCounters(context.Background(), "UC123")
	require.Error(t, err)

	var gerr *googleapi.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusForbidden, gerr.Code)
	assert.NotErrorIs(t, err, domain.ErrChannelNotFound)
}

func TestFetchCountersTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 50*time.Millisecond)

	_, err := c.FetchCounters(context.Background(), "UC123")
	assert.Error(t, err)
}

package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrChannelNotFound = errors.New("channel not found, is CHANNEL_ID correct?")
	ErrHeaderMismatch  = errors.New("table header does not match")
	ErrEmptyTable      = errors.New("table has no usable rows")
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrUnknownChart    = errors.New("unknown chart type")
)

// DateLayout is how the snapshot date is written to the table.
const DateLayout = "2006-01-02"

const (
	ColumnDate        = "Tarih"
	ColumnTotalViews  = "Toplam Izlenme"
	ColumnDailyDelta  = "Gunluk Artis"
	ColumnSubscribers = "Abone Sayisi"
	ColumnVideos      = "Video Sayisi"
)

// Header is row 1 of the persisted table. It is compared verbatim.
var Header = []string{ColumnDate, ColumnTotalViews, ColumnDailyDelta, ColumnSubscribers, ColumnVideos}

// Counters is one fetch of the tracked channel's cumulative counters.
type Counters struct {
	Views       int64 `json:"views"`
	Subscribers int64 `json:"subscribers"`
	Videos      int64 `json:"videos"`
}

// DailySnapshot is the row the collector appends.
type DailySnapshot struct {
	Date        time.Time `json:"date"`
	TotalViews  int64     `json:"total_views"`
	DailyDelta  int64     `json:"daily_delta"`
	Subscribers int64     `json:"subscribers"`
	Videos      int64     `json:"videos"`
}

func (s DailySnapshot) Cells() []any {
	return []any{
		s.Date.Format(DateLayout),
		s.TotalViews,
		s.DailyDelta,
		s.Subscribers,
		s.Videos,
	}
}

type CountersFetcher interface {
	FetchCounters(ctx context.Context, channelID string) (Counters, error)
}

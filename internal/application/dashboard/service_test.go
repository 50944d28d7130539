package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-tracker/internal/adapters/memory"
	"yt-tracker/internal/application/collector"
	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

type recordingObserver struct {
	usable, dropped int
	err             error
	calls           int
}

func (o *recordingObserver) TableRead(usable, dropped int, err error) {
	o.usable, o.dropped, o.err = usable, dropped, err
	o.calls++
}

func TestLoad(t *testing.T) {
	p := memory.NewProvider()
	p.Put("sheet", memory.NewTable(
		domain.Header,
		[]string{"2024-01-02", "1.500", "500", "51", "11"},
		[]string{"2024-01-01", "1.000", "0", "50", "10"},
	))
	obs := &recordingObserver{}

	d, err := NewService(p, "sheet", obs, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Records, 2)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d.Latest.Date)
	assert.Equal(t, domain.Some(1500), d.Latest.TotalViews)
	assert.Equal(t, 2, obs.usable)
	assert.Equal(t, 1, obs.calls)
}

func TestLoadEmpty(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"no rows", nil},
		{"header only", [][]string{domain.Header}},
		{"unparseable date", [][]string{domain.Header, {"someday", "1000", "0", "50", "10"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := memory.NewProvider()
			p.Put("sheet", memory.NewTable(tt.rows...))

			_, err := NewService(p, "sheet", nil, logger.Nop()).Load(context.Background())
			assert.ErrorIs(t, err, domain.ErrEmptyTable)
		})
	}
}

func TestLoadReadError(t *testing.T) {
	p := memory.NewProvider()
	tbl := memory.NewTable()
	tbl.ReadErr = errors.New("quota")
	p.Put("sheet", tbl)
	obs := &recordingObserver{}

	_, err := NewService(p, "sheet", obs, logger.Nop()).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmptyTable)
	assert.Error(t, obs.err)
}

func TestLoadReadsFreshEachTime(t *testing.T) {
	p := memory.NewProvider()
	tbl := memory.NewTable(domain.Header, []string{"2024-01-01", "1000", "0", "50", "10"})
	p.Put("sheet", tbl)
	svc := NewService(p, "sheet", nil, logger.Nop())

	d, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Records, 1)

	require.NoError(t, tbl.Append(context.Background(), []any{"2024-01-02", int64(1200), int64(200), int64(50), int64(10)}, domain.InputUserEntered))

	d, err = svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Records, 2)
	assert.Equal(t, domain.Some(200), d.Latest.DailyDelta)
}

func TestSeries(t *testing.T) {
	p := memory.NewProvider()
	p.Put("sheet", memory.NewTable(
		domain.Header,
		[]string{"2024-01-01", "1000", "0", "50", "10"},
		[]string{"2024-01-02", "1200", "oops", "52", "10"},
	))

	s, err := NewService(p, "sheet", nil, logger.Nop()).Series(context.Background(), domain.MetricDailyDelta)
	require.NoError(t, err)
	require.Len(t, s.Points, 2)
	assert.Equal(t, domain.Some(0), s.Points[0].Value)
	assert.False(t, s.Points[1].Value.Valid)
}

func TestCards(t *testing.T) {
	cards := Cards(domain.Record{
		TotalViews:  domain.Some(1234567),
		DailyDelta:  domain.Some(500),
		Subscribers: domain.Some(1050),
	})

	assert.Equal(t, []domain.Card{
		{Title: "Toplam İzlenme", Value: "1.234.567"},
		{Title: "Günlük Artış", Value: "500"},
		{Title: "Abone", Value: "1.050"},
		{Title: "Video", Value: "-"},
	}, cards)
}

// A row written by the collector reads back with the same date and values.
func TestCollectorRoundTrip(t *testing.T) {
	p := memory.NewProvider()
	p.Put("sheet", memory.NewTable(domain.Header, []string{"2024-05-31", "1000", "0", "50", "10"}))

	fetcher := fetcherFunc(func(ctx context.Context, id string) (domain.Counters, error) {
		return domain.Counters{Views: 1500, Subscribers: 55, Videos: 12}, nil
	})
	now := time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC)

	snap, err := collector.NewService(fetcher, p, collector.Options{
		TableID: "sheet",
		Now:     func() time.Time { return now },
	}, logger.Nop()).Run(context.Background())
	require.NoError(t, err)

	d, err := NewService(p, "sheet", nil, logger.Nop()).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snap.Date, d.Latest.Date)
	assert.Equal(t, domain.Some(snap.TotalViews), d.Latest.TotalViews)
	assert.Equal(t, domain.Some(500), d.Latest.DailyDelta)
	assert.Equal(t, domain.Some(snap.Subscribers), d.Latest.Subscribers)
	assert.Equal(t, domain.Some(snap.Videos), d.Latest.Videos)
}

type fetcherFunc func(ctx context.Context, channelID string) (domain.Counters, error)

func (f fetcherFunc) FetchCounters(ctx context.Context, channelID string) (domain.Counters, error) {
	return f(ctx, channelID)
}

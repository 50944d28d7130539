package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-tracker/internal/domain"
)

func TestRecordsSortsAndDropsBadDates(t *testing.T) {
	rows := [][]string{
		domain.Header,
		{"2024-01-03", "1.500", "500", "51", "11"},
		{"not a date", "1", "1", "1", "1"},
		{"2024-01-01", "1000", "0", "50", "10"},
		{"2024-01-02", "", "x", "50", "10"},
	}

	recs, dropped := Records(rows)
	require.Len(t, recs, 3)
	assert.Equal(t, 1, dropped)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), recs[0].Date)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), recs[2].Date)

	assert.False(t, recs[1].TotalViews.Valid)
	assert.False(t, recs[1].DailyDelta.Valid)
	assert.Equal(t, domain.Some(50), recs[1].Subscribers)
	assert.Equal(t, domain.Some(1500), recs[2].TotalViews)
}

func TestRecordsOnlyUnparseableDate(t *testing.T) {
	recs, dropped := Records([][]string{domain.Header, {"??", "1000", "0", "50", "10"}})
	assert.Empty(t, recs)
	assert.Equal(t, 1, dropped)
}

func TestRecordsColumnsByName(t *testing.T) {
	header := []string{"Video Sayisi", "Tarih", "Extra", "Toplam Izlenme"}
	recs, _ := Records([][]string{header, {"10", "2024-01-01", "zzz", "1000"}})

	require.Len(t, recs, 1)
	assert.Equal(t, domain.Some(10), recs[0].Videos)
	assert.Equal(t, domain.Some(1000), recs[0].TotalViews)
	assert.False(t, recs[0].Subscribers.Valid)
}

func TestRoundTrip(t *testing.T) {
	s := New(time.Date(2024, 7, 4, 15, 0, 0, 0, time.UTC), domain.Counters{Views: 1234567, Subscribers: 50, Videos: 10}, 1234000, true)

	row := make([]string, 0, len(s.Cells()))
	for _, c := range s.Cells() {
		switch v := c.(type) {
		case string:
			row = append(row, v)
		case int64:
			row = append(row, Format(domain.Some(v)))
		}
	}

	recs, _ := Records([][]string{domain.Header, row})
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, s.Date, r.Date)
	assert.Equal(t, domain.Some(s.TotalViews), r.TotalViews)
	assert.Equal(t, domain.Some(s.DailyDelta), r.DailyDelta)
	assert.Equal(t, domain.Some(s.Subscribers), r.Subscribers)
	assert.Equal(t, domain.Some(s.Videos), r.Videos)
}

func TestSeriesOf(t *testing.T) {
	recs := []domain.Record{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), DailyDelta: domain.Some(0)},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	s := SeriesOf(recs, domain.MetricDailyDelta)
	assert.Equal(t, "Günlük İzlenme Artışı", s.Title)
	require.Len(t, s.Points, 2)
	assert.True(t, s.Points[0].Value.Valid)
	assert.False(t, s.Points[1].Value.Valid)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.234.567", Format(domain.Some(1234567)))
	assert.Equal(t, "999", Format(domain.Some(999)))
	assert.Equal(t, "0", Format(domain.Some(0)))
	assert.Equal(t, "-", Format(domain.Value{}))
}

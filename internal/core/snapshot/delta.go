// Package snapshot holds the pure rules for building and reading daily
// snapshot rows. Nothing here does I/O.
package snapshot

import (
	"slices"
	"time"

	"yt-tracker/internal/domain"
)

// HeaderMatches reports whether row is exactly the table header.
func HeaderMatches(row []string) bool {
	return slices.Equal(row, domain.Header)
}

// PreviousTotal returns the total views of the last data row. The second
// result is false when there is no data row or its total cannot be parsed.
func PreviousTotal(rows [][]string) (int64, bool) {
	if len(rows) <= 1 {
		return 0, false
	}

	last := rows[len(rows)-1]
	if len(last) < 2 {
		return 0, false
	}

	n, err := ParseCount(last[1])
	if err != nil {
		return 0, false
	}

	return n, true
}

// DailyDelta is curr-prev clamped at zero. The upstream counter is sometimes
// corrected downwards and growth must never go negative.
func DailyDelta(prev int64, hasPrev bool, curr int64) int64 {
	if !hasPrev {
		return 0
	}
	return max(0, curr-prev)
}

// New builds the row for now's UTC calendar day.
func New(now time.Time, c domain.Counters, prev int64, hasPrev bool) domain.DailySnapshot {
	return domain.DailySnapshot{
		Date:        Day(now),
		TotalViews:  c.Views,
		DailyDelta:  DailyDelta(prev, hasPrev, c.Views),
		Subscribers: c.Subscribers,
		Videos:      c.Videos,
	}
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

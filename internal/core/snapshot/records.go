package snapshot

import (
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"yt-tracker/internal/domain"
)

// Columns maps header names to their index in a row.
type Columns map[string]int

// ColumnsOf indexes a header row. Unknown columns are kept and ignored.
func ColumnsOf(header []string) Columns {
	cols := make(Columns, len(header))
	for i, name := range header {
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func (c Columns) cell(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ParseRow turns one data row into a Record. Only an unreadable date is an
// error, numbers that cannot be read are left missing.
func ParseRow(cols Columns, row []string) (domain.Record, error) {
	date, err := ParseDate(cols.cell(row, domain.ColumnDate))
	if err != nil {
		return domain.Record{}, err
	}

	return domain.Record{
		Date:        date,
		TotalViews:  ParseValue(cols.cell(row, domain.ColumnTotalViews)),
		DailyDelta:  ParseValue(cols.cell(row, domain.ColumnDailyDelta)),
		Subscribers: ParseValue(cols.cell(row, domain.ColumnSubscribers)),
		Videos:      ParseValue(cols.cell(row, domain.ColumnVideos)),
	}, nil
}

// Records parses a full table read, header first. Rows with a bad date are
// dropped and the rest is sorted by date, oldest first.
func Records(rows [][]string) ([]domain.Record, int) {
	if len(rows) <= 1 {
		return nil, 0
	}

	cols := ColumnsOf(rows[0])
	dropped := 0

	records := lo.FilterMap(rows[1:], func(row []string, _ int) (domain.Record, bool) {
		rec, err := ParseRow(cols, row)
		if err != nil {
			dropped++
			return domain.Record{}, false
		}
		return rec, true
	})

	slices.SortStableFunc(records, func(a, b domain.Record) int {
		return a.Date.Compare(b.Date)
	})

	return records, dropped
}

// SeriesOf projects one metric out of the records.
func SeriesOf(records []domain.Record, m domain.Metric) domain.Series {
	return domain.Series{
		Metric: m,
		Title:  m.Title(),
		Points: lo.Map(records, func(r domain.Record, _ int) domain.Point {
			return domain.Point{Date: r.Date, Value: m.Of(r)}
		}),
	}
}

// Format prints a count with "." thousands separators, "-" when missing.
func Format(v domain.Value) string {
	if !v.Valid {
		return "-"
	}
	return formatInt(v.N)
}

func formatInt(n int64) string {
	return humanize.FormatInteger("#.###,", int(n))
}

package snapshot

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"yt-tracker/internal/domain"
)

var (
	errEmptyCell = errors.New("empty cell")

	// grouped matches integers written with thousands separators.
	grouped = regexp.MustCompile(`^-?\d{1,3}([.,]\d{3})+$`)
)

// ParseCount parses an integer that may carry "." or "," thousands
// separators, e.g. "1.234.567".
func ParseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(".", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyCell
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse count %q: %w", s, err)
	}
	return n, nil
}

// ParseValue is the lenient reader used by the viewer. Anything it cannot
// read becomes a missing value.
func ParseValue(s string) domain.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Value{}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return domain.Some(n)
	}
	if grouped.MatchString(s) {
		if n, err := ParseCount(s); err == nil {
			return domain.Some(n)
		}
	}
	// "1500.0" is a decimal, not 15000
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return domain.Some(int64(f))
	}

	return domain.Value{}
}

var dateLayouts = []string{
	domain.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006",
	"01/02/2006",
	"2006/01/02",
}

// ParseDate reads a date cell and truncates it to the calendar day as
// written in the cell, ignoring any offset it carries.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", s)
}

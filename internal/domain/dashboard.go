package domain

import (
	"fmt"
	"time"
)

// Value is a numeric cell that may be missing.
type Value struct {
	N     int64 `json:"n"`
	Valid bool  `json:"valid"`
}

func Some(n int64) Value { return Value{N: n, Valid: true} }

// Record is a typed table row as seen by the viewer.
type Record struct {
	Date        time.Time `json:"date"`
	TotalViews  Value     `json:"total_views"`
	DailyDelta  Value     `json:"daily_delta"`
	Subscribers Value     `json:"subscribers"`
	Videos      Value     `json:"videos"`
}

type Metric string

const (
	MetricTotalViews  Metric = ColumnTotalViews
	MetricDailyDelta  Metric = ColumnDailyDelta
	MetricSubscribers Metric = ColumnSubscribers
	MetricVideos      Metric = ColumnVideos
)

var AllMetrics = []Metric{MetricTotalViews, MetricDailyDelta, MetricSubscribers, MetricVideos}

func ParseMetric(s string) (Metric, error) {
	for _, m := range AllMetrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

func (m Metric) Title() string {
	switch m {
	case MetricTotalViews:
		return "Toplam İzlenme"
	case MetricDailyDelta:
		return "Günlük İzlenme Artışı"
	case MetricSubscribers:
		return "Abone Sayısı"
	case MetricVideos:
		return "Video Sayısı"
	}
	return string(m)
}

// Of picks the metric's value out of a record.
func (m Metric) Of(r Record) Value {
	switch m {
	case MetricTotalViews:
		return r.TotalViews
	case MetricDailyDelta:
		return r.DailyDelta
	case MetricSubscribers:
		return r.Subscribers
	case MetricVideos:
		return r.Videos
	}
	return Value{}
}

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

func ParseChartKind(s string) (ChartKind, error) {
	switch ChartKind(s) {
	case ChartLine, ChartBar:
		return ChartKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, s)
}

type Point struct {
	Date  time.Time `json:"date"`
	Value Value     `json:"value"`
}

type Series struct {
	Metric Metric  `json:"metric"`
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}

type Card struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type Dashboard struct {
	Records []Record `json:"records"`
	Latest  Record   `json:"latest"`
}

package http

import (
	"net/url"

	"yt-tracker/internal/domain"
)

func GetString(q url.Values, key string, def string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return def
}

// GetMetric reads the metric selection, defaulting to total views.
func GetMetric(q url.Values) (domain.Metric, error) {
	return domain.ParseMetric(GetString(q, "metric", string(domain.MetricTotalViews)))
}

// GetChartKind reads the chart selection, defaulting to a line chart.
func GetChartKind(q url.Values) (domain.ChartKind, error) {
	return domain.ParseChartKind(GetString(q, "chart", string(domain.ChartLine)))
}

package http

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"

	"yt-tracker/internal/domain"
)

const chartHeight = "520px"

// echarts leaves a gap for "-".
const missing = "-"

// RenderChart writes a standalone chart page for one series.
func RenderChart(w io.Writer, s domain.Series, kind domain.ChartKind) error {
	dates := lo.Map(s.Points, func(p domain.Point, _ int) string {
		return p.Date.Format(domain.DateLayout)
	})

	values := lo.Map(s.Points, func(p domain.Point, _ int) any {
		if !p.Value.Valid {
			return missing
		}
		return p.Value.N
	})

	initOpts := charts.WithInitializationOpts(opts.Initialization{
		PageTitle: s.Title,
		Width:     "100%",
		Height:    chartHeight,
	})
	titleOpts := charts.WithTitleOpts(opts.Title{Title: s.Title})

	switch kind {
	case domain.ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(initOpts, titleOpts)
		bar.SetXAxis(dates).AddSeries(string(s.Metric), lo.Map(values, func(v any, _ int) opts.BarData {
			return opts.BarData{Value: v}
		}))
		return bar.Render(w)

	default:
		line := charts.NewLine()
		line.SetGlobalOptions(initOpts, titleOpts)
		line.SetXAxis(dates).AddSeries(string(s.Metric), lo.Map(values, func(v any, _ int) opts.LineData {
			return opts.LineData{Value: v, Symbol: "circle"}
		}))
		return line.Render(w)
	}
}

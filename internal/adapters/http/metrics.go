package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ViewerMetrics is the viewer's Prometheus registry. It also observes table
// reads made by the dashboard service.
type ViewerMetrics struct {
	registry *prometheus.Registry

	renders     *prometheus.CounterVec
	tableReads  *prometheus.CounterVec
	usableRows  prometheus.Gauge
	droppedRows prometheus.Gauge
}

func NewViewerMetrics() *ViewerMetrics {
	m := &ViewerMetrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viewer_renders_total",
			Help: "Dashboard renders by page.",
		}, []string{"page"}),
		tableReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "viewer_table_reads_total",
			Help: "Snapshot table reads by result.",
		}, []string{"result"}),
		usableRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viewer_table_usable_rows",
			Help: "Usable rows seen on the last table read.",
		}),
		droppedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viewer_table_dropped_rows",
			Help: "Rows dropped for an unreadable date on the last table read.",
		}),
	}

	m.registry.MustRegister(m.renders, m.tableReads, m.usableRows, m.droppedRows)
	return m
}

func (m *ViewerMetrics) TableRead(usable, dropped int, err error) {
	if err != nil {
		m.tableReads.WithLabelValues("error").Inc()
		return
	}

	m.tableReads.WithLabelValues("ok").Inc()
	m.usableRows.Set(float64(usable))
	m.droppedRows.Set(float64(dropped))
}

func (m *ViewerMetrics) Rendered(page string) {
	m.renders.WithLabelValues(page).Inc()
}

func (m *ViewerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

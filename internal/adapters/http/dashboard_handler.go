package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"yt-tracker/internal/adapters/http/response"
	"yt-tracker/internal/application/dashboard"
	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

const emptyNotice = "Tablo boş. Önce collector'ı çalıştırıp veri ekle."

// DashboardService is what the handler needs from the dashboard service.
type DashboardService interface {
	Load(ctx context.Context) (*domain.Dashboard, error)
	Series(ctx context.Context, m domain.Metric) (domain.Series, error)
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Metrics    []option
	Charts     []option
	Cards      []domain.Card
	ChartURL   string
	ChartTitle string
	Notice     string
	Error      string
}

type DashboardHandler struct {
	svc     DashboardService
	metrics *ViewerMetrics
	res     response.ResponseWriter
	log     logger.Logger
}

func NewDashboardHandler(svc DashboardService, metrics *ViewerMetrics, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		svc:     svc,
		metrics: metrics,
		res:     response.NewJSONWriter(log),
		log:     log,
	}
}

func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	metric, err := GetMetric(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := GetChartKind(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := pageData{
		Metrics:    metricOptions(metric),
		Charts:     chartOptions(kind),
		ChartTitle: metric.Title(),
	}
	status := http.StatusOK

	d, err := h.svc.Load(r.Context())
	switch {
	case errors.Is(err, domain.ErrEmptyTable):
		data.Notice = emptyNotice
	case err != nil:
		h.log.Error("dashboard: failed to load table", "error", err)
		data.Error = "Tablo okunamadı: " + err.Error()
		status = http.StatusBadGateway
	default:
		data.Cards = dashboard.Cards(d.Latest)
		data.ChartURL = "/chart?" + url.Values{
			"metric": {string(metric)},
			"chart":  {string(kind)},
		}.Encode()
	}

	buf := &bytes.Buffer{}
	if err := pageTmpl.Execute(buf, data); err != nil {
		h.log.Error("dashboard: failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	h.rendered("index")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	metric, err := GetMetric(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := GetChartKind(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	series, err := h.svc.Series(r.Context(), metric)
	if errors.Is(err, domain.ErrEmptyTable) {
		http.Error(w, emptyNotice, http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("dashboard: failed to load series", "error", err)
		http.Error(w, "failed to read table", http.StatusBadGateway)
		return
	}

	buf := &bytes.Buffer{}
	if err := RenderChart(buf, series, kind); err != nil {
		h.log.Error("dashboard: failed to render chart", "error", err)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	h.rendered("chart")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *DashboardHandler) Latest(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Load(r.Context())
	if err != nil {
		h.loadError(w, err)
		return
	}

	h.res.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data: map[string]any{
			"latest": d.Latest,
			"cards":  dashboard.Cards(d.Latest),
		},
		Meta: map[string]any{"rows": len(d.Records)},
	})
}

func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	metric, err := GetMetric(r.URL.Query())
	if err != nil {
		h.res.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	series, err := h.svc.Series(r.Context(), metric)
	if err != nil {
		h.loadError(w, err)
		return
	}

	h.res.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    series,
	})
}

func (h *DashboardHandler) loadError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrEmptyTable) {
		h.res.Error(w, http.StatusNotFound, "table is empty")
		return
	}

	h.log.Error("dashboard: failed to load table", "error", err)
	h.res.Error(w, http.StatusBadGateway, "failed to read table")
}

func (h *DashboardHandler) rendered(page string) {
	if h.metrics != nil {
		h.metrics.Rendered(page)
	}
}

func metricOptions(selected domain.Metric) []option {
	out := make([]option, 0, len(domain.AllMetrics))
	for _, m := range domain.AllMetrics {
		out = append(out, option{Value: string(m), Label: string(m), Selected: m == selected})
	}
	return out
}

func chartOptions(selected domain.ChartKind) []option {
	return []option{
		{Value: string(domain.ChartLine), Label: "Çizgi", Selected: selected == domain.ChartLine},
		{Value: string(domain.ChartBar), Label: "Bar", Selected: selected == domain.ChartBar},
	}
}

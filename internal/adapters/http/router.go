// Package http
package http

import (
	"net/http"

	"yt-tracker/internal/adapters/http/middleware"
	"yt-tracker/internal/adapters/ws/seriesws"
	"yt-tracker/internal/config"
	"yt-tracker/internal/logger"
)

type RouterDeps struct {
	Dashboard *DashboardHandler
	WsSeries  *seriesws.Handler
	Metrics   *ViewerMetrics
	Log       logger.Logger
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.Recover(deps.Log))
	globalMw.Use(middleware.Logging(deps.Log))
	globalMw.Use(middleware.CORS(cfg))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// METRICS
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	// DASHBOARD
	mux.HandleFunc("GET /{$}", deps.Dashboard.Index)
	mux.HandleFunc("GET /chart", deps.Dashboard.Chart)

	// API
	mux.HandleFunc("GET /api/latest", deps.Dashboard.Latest)
	mux.HandleFunc("GET /api/series", deps.Dashboard.Series)

	// WEBSOCKET
	if deps.WsSeries != nil {
		mux.HandleFunc("GET /ws", deps.WsSeries.Serve)
	}

	return globalMw.Apply(mux)
}

package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cakesync_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cakesync_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	syncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cakesync_sync_runs_total",
			Help: "Total number of calendar sync runs",
		},
		[]string{"trigger", "status"},
	)

	ordersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cakesync_orders_created_total",
			Help: "Orders created from calendar events",
		},
	)

	eventsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cakesync_events_skipped_total",
			Help: "Calendar events skipped (already synced or unparseable)",
		},
	)

	eventErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cakesync_event_errors_total",
			Help: "Per-event errors collected during sync runs",
		},
	)
)

// Middleware collects request counts and latencies per route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path, status).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordSyncRun records the outcome of one whole sync run.
func RecordSyncRun(trigger string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	syncRunsTotal.WithLabelValues(trigger, status).Inc()
}

// ObserveReport feeds a run's per-event counts into the counters.
func ObserveReport(report *domain.SyncReport) {
	if report == nil {
		return
	}
	ordersCreatedTotal.Add(float64(report.Created))
	eventsSkippedTotal.Add(float64(report.Skipped))
	eventErrorsTotal.Add(float64(len(report.Errors)))
}

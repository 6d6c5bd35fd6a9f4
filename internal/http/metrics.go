package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds all HTTP-related metrics.
type HTTPMetrics struct {
	requestsTotal *prometheus.CounterVec
	requestDur    *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP collectors on reg.
func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasker",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route template and status code.",
		}, []string{"method", "route", "status"}),
		requestDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tasker",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by method and route template.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route"}),
	}
	for _, c := range []prometheus.Collector{m.requestsTotal, m.requestDur} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MetricsMiddleware returns an Echo middleware that records HTTP metrics.
// Routes are labelled by their template (/users/:id) so ids never become
// label values.
func (m *HTTPMetrics) MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := normalizePath(c.Path())
			method := c.Request().Method
			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.requestDur.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// normalizePath folds unmatched requests into one label value.
func normalizePath(path string) string {
	if path == "" {
		return "unmatched"
	}
	return path
}

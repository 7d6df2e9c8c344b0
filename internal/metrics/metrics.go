// Package metrics exposes Prometheus HTTP metrics for the service.
//
// Wire it once in the router:
//
//	e.Use(m.Middleware())
//	e.GET("/metrics", m.Handler())
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "products"

type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
	)
	return m
}

// Middleware labels by route template (c.Path()) to keep cardinality bounded.
// Errors not rendered further down the chain are counted by their HTTP code.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.RequestInFlight.Inc()
			defer m.RequestInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = 500
				}
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			m.RequestTotal.WithLabelValues(labels...).Inc()
			return err
		}
	}
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

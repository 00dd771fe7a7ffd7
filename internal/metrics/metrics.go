// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Collectors exist from package init so services can record into them
// whether or not Register has been called.
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by route, method and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vidtube_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Toggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_toggles_total",
			Help: "Like and subscription toggles, by kind and resulting state.",
		},
		[]string{"kind", "result"},
	)

	VideoViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vidtube_video_views_total",
			Help: "Counted video views.",
		},
	)

	MediaUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_media_uploads_total",
			Help: "Media relay uploads, by outcome.",
		},
		[]string{"outcome"},
	)

	MediaDeleteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vidtube_media_delete_failures_total",
			Help: "Hosted media deletions that failed and were skipped.",
		},
	)
)

// Register adds every collector to reg. Call once at startup.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		RequestDuration,
		RequestsInFlight,
		Toggles,
		VideoViews,
		MediaUploads,
		MediaDeleteFailures,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Middleware records request duration and in-flight count.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		method := c.Method()
		RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		// Route patterns keep label cardinality bounded.
		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		RequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		RequestsInFlight.Dec()

		return err
	}
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		httpHandler(c.Context())
		return nil
	}
}

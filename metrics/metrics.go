// Package metrics collects and exposes prometheus metrics for the app.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request-level metrics into a prometheus registry.
type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	followUpserts   prometheus.Counter
}

// NewCollector creates a Collector with its own registry and registers all
// metrics on it.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wtfspaces_http_requests_total",
			Help: "Requests served, by route and status code.",
		}, []string{"route", "status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wtfspaces_http_request_duration_seconds",
			Help:    "Request latency in seconds, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		followUpserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtfspaces_follow_upserts_total",
			Help: "Authorized follow upserts performed.",
		}),
	}
	c.registry.MustRegister(
		c.requests,
		c.requestDuration,
		c.followUpserts,
	)
	return c
}

// RecordRequest records one served request.
func (c *Collector) RecordRequest(route string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordFollowUpsert records one follow mutation that passed authorization.
func (c *Collector) RecordFollowUpsert() {
	c.followUpserts.Inc()
}

// Handler returns the http handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

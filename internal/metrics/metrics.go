// Package metrics records client-side request metrics for the review API.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the API request metrics. It satisfies api.RequestObserver.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	FanoutRequests  prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewCollector registers the metrics on reg. A nil reg uses a fresh registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reviewdesk_api_requests_total",
			Help: "Total number of review API requests",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reviewdesk_api_request_duration_seconds",
			Help:    "Review API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),

		FanoutRequests: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reviewdesk_vote_fanout_requests",
			Help:    "Number of user-vote lookups issued per product load",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}),

		gatherer: reg,
	}
}

// ObserveRequest records one completed request. Status zero means the
// request failed before a response arrived.
func (c *Collector) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	normalized := NormalizePath(path)
	c.RequestsTotal.WithLabelValues(method, normalized, label).Inc()
	c.RequestDuration.WithLabelValues(method, normalized).Observe(elapsed.Seconds())
}

// ObserveFanout records how many lookups a vote fan-out issued.
func (c *Collector) ObserveFanout(n int) {
	if c == nil {
		return
	}
	c.FanoutRequests.Observe(float64(n))
}

// Handler exposes the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// NormalizePath reduces high-cardinality path labels by replacing ids with
// placeholders. This keeps the metric label space bounded.
func NormalizePath(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) < 3 || segments[0] != "api" {
		return path
	}

	switch segments[1] {
	case "products":
		if len(segments) == 3 && segments[2] != "search" {
			return "/api/products/:id"
		}
	case "comments", "reviews":
		switch len(segments) {
		case 3:
			return "/api/" + segments[1] + "/:id"
		case 4:
			return "/api/" + segments[1] + "/:id/" + segments[3]
		}
	case "moderation":
		if len(segments) == 5 && segments[2] == "flags" {
			return "/api/moderation/flags/:id/" + segments[4]
		}
		if len(segments) == 5 && segments[2] == "content" {
			return "/api/moderation/content/" + segments[3] + "/:id"
		}
	}
	return path
}

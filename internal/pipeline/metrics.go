package pipeline

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"resty.dev/v3"
)

var (
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaignplan_pipeline_request_latency_seconds",
			Help:    "Histogram of pipeline backend request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"method", "route", "status_code"},
	)
)

type routeKey struct{}

// withRoute labels the request with its route template so ids don't end up in metric labels.
func withRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

func metricMiddleware(_ *resty.Client, response *resty.Response) error {
	route, _ := response.Request.Context().Value(routeKey{}).(string)
	if route == "" {
		route = "unknown"
	}

	requestLatency.WithLabelValues(
		response.Request.Method,
		route,
		strconv.Itoa(response.StatusCode()),
	).Observe(response.Duration().Seconds())

	return nil
}

package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// resolveTotal counts route resolutions by result
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bundlemanifest_resolve_total",
		Help: "Total route resolutions by result",
	}, []string{"result"})

	// resolveDuration tracks resolution latency, including the first manifest read
	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bundlemanifest_resolve_duration_seconds",
		Help:    "Route resolution duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})

	// renderTotal counts markup renders by result
	renderTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bundlemanifest_render_total",
		Help: "Total HTML renders by result",
	}, []string{"result"})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

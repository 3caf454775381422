// Package metrics exposes prometheus collectors for mirror runs. They are
// registered on the default registry and served by the HTTP controller's
// /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spacesync",
		Name:      "sync_runs_total",
		Help:      "Mirror runs by mirror name, trigger and result",
	}, []string{"mirror", "trigger", "result"})

	syncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "spacesync",
		Name:      "sync_duration_seconds",
		Help:      "Duration of mirror runs",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"mirror"})

	lastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "spacesync",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run per mirror",
	}, []string{"mirror"})
)

// ObserveSync records the outcome of one mirror run
func ObserveSync(mirror, trigger string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	syncRuns.WithLabelValues(mirror, trigger, result).Inc()
	syncDuration.WithLabelValues(mirror).Observe(duration.Seconds())
	if err == nil {
		lastSuccess.WithLabelValues(mirror).SetToCurrentTime()
	}
}

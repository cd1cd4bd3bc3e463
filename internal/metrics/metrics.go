// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	initOnce sync.Once

	sampleEventsCreatedCounter *prometheus.CounterVec
	sampleEventsFailedCounter  *prometheus.CounterVec
	provisionDurationMetric    prometheus.Histogram
	firstEventsRecordedCounter prometheus.Counter
)

// Init registers metrics on the default Prometheus registry exactly once.
func Init() {
	initOnce.Do(func() {
		sampleEventsCreatedCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sample_events_created_total",
				Help: "Total number of sample events created by platform.",
			},
			[]string{"platform"},
		)

		sampleEventsFailedCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sample_events_failed_total",
				Help: "Total number of failed sample event provisioning attempts by reason.",
			},
			[]string{"reason"},
		)

		provisionDurationMetric = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sample_event_provision_duration_seconds",
				Help:    "Duration of sample event provisioning in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		)

		firstEventsRecordedCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "project_first_events_recorded_total",
				Help: "Total number of projects that received their first event.",
			},
		)

		prometheus.MustRegister(
			sampleEventsCreatedCounter,
			sampleEventsFailedCounter,
			provisionDurationMetric,
			firstEventsRecordedCounter,
		)

		// Ensure failure reasons are visible at /metrics before first increment.
		for _, reason := range []string{
			"invalid_reference",
			"project_not_found",
			"unknown_sample_type",
			"internal",
		} {
			sampleEventsFailedCounter.WithLabelValues(reason)
		}
	})
}

func IncSampleEventCreated(platform string) {
	Init()
	sampleEventsCreatedCounter.WithLabelValues(platform).Inc()
}

func IncSampleEventFailed(reason string) {
	Init()
	sampleEventsFailedCounter.WithLabelValues(reason).Inc()
}

func ObserveProvisionDuration(d time.Duration) {
	Init()
	provisionDurationMetric.Observe(d.Seconds())
}

func IncFirstEventRecorded() {
	Init()
	firstEventsRecordedCounter.Inc()
}

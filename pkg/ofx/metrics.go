// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ActionsTotal counts dispatched actions by kind and returned status.
// Use RegisterMetrics to register this with a Prometheus registry.
var ActionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ofx_actions_total",
		Help: "Total number of host actions dispatched",
	},
	[]string{"action", "status"},
)

// ActionDuration is the histogram of action handling time.
// Use RegisterMetrics to register this with a Prometheus registry.
var ActionDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ofx_action_duration_seconds",
		Help:    "Host action handling duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"action"},
)

// liveInstances is exported through RegisterMetrics only.
var liveInstances = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "ofx_live_instances",
		Help: "Number of effect instances created and not yet destroyed",
	},
)

// LiveInstancesGauge returns the gauge of live instances.
func LiveInstancesGauge() prometheus.Gauge { return liveInstances }

// RegisterMetrics registers ofx package metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ActionsTotal)
	reg.MustRegister(ActionDuration)
	reg.MustRegister(liveInstances)
}

func recordAction(kind ActionKind, status Status, elapsed time.Duration) {
	ActionsTotal.WithLabelValues(kind.Label(), status.String()).Inc()
	ActionDuration.WithLabelValues(kind.Label()).Observe(elapsed.Seconds())
}

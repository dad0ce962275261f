// Package metrics defines all custom Prometheus metrics for the Storo
// booking API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storo"

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - payment_method: "pay-later" or "online"
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by payment method.",
	},
	[]string{"payment_method"},
)

// PaymentsVerifiedTotal counts payment confirmation attempts.
// Label:
//   - result: "ok", "invalid_signature", or "error"
var PaymentsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_verified_total",
		Help:      "Total number of payment confirmation attempts, by result.",
	},
	[]string{"result"},
)

// PartnersRegisteredTotal counts partner registration requests accepted.
var PartnersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "partners_registered_total",
		Help:      "Total number of partner registrations submitted for approval.",
	},
)

// NearbyQueryDuration measures how long a partner proximity query takes.
var NearbyQueryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "nearby_query_duration_seconds",
		Help:      "Duration of nearby-partner geospatial queries.",
		Buckets:   prometheus.DefBuckets,
	},
)

// NearbyResultsCount tracks how many partners a proximity query returned.
var NearbyResultsCount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "nearby_results_count",
		Help:      "Number of approved partners returned per proximity query.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
	},
)

// TicketsCreatedTotal counts support tickets opened.
var TicketsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of support tickets created.",
	},
)

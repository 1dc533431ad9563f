package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the trip lifecycle paths.
var (
	TripsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trips_created_total",
			Help: "Total number of trips created",
		},
	)

	AcceptEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accept_events_total",
			Help: "Total number of acceptance events received",
		},
	)

	AcceptEventsAppliedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accept_events_applied_total",
			Help: "Total number of acceptance events that transitioned a trip",
		},
	)

	AcceptEventsMalformedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accept_events_malformed_total",
			Help: "Total number of acceptance events dropped as undecodable",
		},
	)

	AcceptEventsUnknownTripTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accept_events_unknown_trip_total",
			Help: "Total number of acceptance events referencing an unknown trip",
		},
	)

	AcceptEventsConflictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accept_events_conflict_total",
			Help: "Total number of acceptance events naming a different driver than assigned",
		},
	)
)

// Register registers all metrics with the default registry.
func Register() {
	prometheus.MustRegister(
		TripsCreatedTotal,
		AcceptEventsTotal,
		AcceptEventsAppliedTotal,
		AcceptEventsMalformedTotal,
		AcceptEventsUnknownTripTotal,
		AcceptEventsConflictTotal,
	)
}

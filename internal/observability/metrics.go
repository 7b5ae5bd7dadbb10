package observability

import "github.com/prometheus/client_golang/prometheus"

// Domain collectors. HTTP traffic is measured separately by
// middleware.Metrics; these count what the matching engine does.
var (
	// NextDogLookups counts selector calls by filter mode and outcome
	// ("hit", "seeded_hit", "miss").
	NextDogLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pugorugh_next_dog_lookups_total",
			Help: "Next-dog selections by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	// SeededInteractions counts undecided ledger rows created by backfill.
	SeededInteractions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pugorugh_seeded_interactions_total",
			Help: "Undecided interactions materialized for unseen dogs.",
		},
	)

	// StatusUpdates counts status writes by resulting status word.
	StatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pugorugh_status_updates_total",
			Help: "Dog status updates by status.",
		},
		[]string{"status"},
	)

	// DogsCreated counts catalog inserts.
	DogsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pugorugh_dogs_created_total",
			Help: "Dogs added to the catalog.",
		},
	)
)

func init() {
	prometheus.MustRegister(NextDogLookups, SeededInteractions, StatusUpdates, DogsCreated)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	CompetitionsCreated prometheus.Counter
	CodeCollisions      prometheus.Counter
	CodeFallbacks       prometheus.Counter
	JoinAttempts        *prometheus.CounterVec
	EntriesCreated      prometheus.Counter
}

// New registers and returns the application collectors. Pass a fresh registry
// in tests to keep them isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CompetitionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leetrboo_competitions_created_total",
			Help: "Number of competitions created.",
		}),
		CodeCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leetrboo_competition_code_collisions_total",
			Help: "Number of invite code candidates rejected due to collision.",
		}),
		CodeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leetrboo_competition_code_fallbacks_total",
			Help: "Number of times the suffixed fallback code path was taken.",
		}),
		JoinAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leetrboo_join_attempts_total",
			Help: "Join procedure attempts by outcome.",
		}, []string{"outcome"}),
		EntriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leetrboo_entries_created_total",
			Help: "Number of participant entries created.",
		}),
	}

	reg.MustRegister(
		m.CompetitionsCreated,
		m.CodeCollisions,
		m.CodeFallbacks,
		m.JoinAttempts,
		m.EntriesCreated,
	)
	return m
}

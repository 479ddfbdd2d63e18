package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "filecms", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "filecms", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DocumentOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "filecms", Name: "document_operations_total", Help: "Number of successful document store mutations by operation."},
		[]string{"op"},
	)
	RevisionsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "filecms", Name: "revisions_recorded_total", Help: "Number of revision snapshots appended."},
	)
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "filecms", Name: "auth_attempts_total", Help: "Sign-in and sign-up attempts by action and result."},
		[]string{"action", "result"},
	)
	GuardRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "filecms", Name: "guard_rejected_total", Help: "Requests redirected because no user was signed in."},
	)
	SearchQueries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "bookviewer", Name: "search_queries_total", Help: "Number of non-empty book searches."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DocumentOperations)
	reg.MustRegister(RevisionsRecorded)
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(GuardRejected)
	reg.MustRegister(SearchQueries)
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recruit"

var (
	JobsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_published_total",
		Help:      "Job postings published",
	})
	JobsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_updated_total",
		Help:      "Job postings updated",
	})
	ApplicationsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Applications submitted, reapplied=true for reactivated ones",
	}, []string{"reapplied"})
	ApplicationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_refused_total",
		Help:      "Apply attempts refused before persistence",
	}, []string{"reason"})
	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "side_effect_failures_total",
		Help:      "Failed notifier, search refresh and analytics calls",
	}, []string{"collaborator", "operation"})
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Notifications handed to a delivery channel",
	}, []string{"channel"})
	SearchCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_cache_lookups_total",
		Help:      "Job view cache lookups by result",
	}, []string{"result"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CandidateRecordLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_record_lookups_total",
			Help: "Candidate record lookups by source (cache, database, inline)",
		},
		[]string{"source"},
	)

	InsightsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidate_insights_emitted_total",
			Help: "Insights produced by the rule engine",
		},
		[]string{"type", "priority"},
	)

	CompletionRate = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "candidate_lifecycle_completion_rate",
			Help:    "Pipeline completion percentage of evaluated candidates",
			Buckets: prometheus.LinearBuckets(0, 100.0/7, 8),
		},
	)
)

// ObserveInsight counts one emitted insight.
func ObserveInsight(insightType, priority string) {
	InsightsEmitted.WithLabelValues(insightType, priority).Inc()
}

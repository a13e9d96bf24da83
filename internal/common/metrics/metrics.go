// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "estimator_worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "estimator_worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EstimatesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_estimates_computed_total",
			Help: "Estimates computed, by franchise and city tier",
		},
		[]string{"franchise", "city_tier"},
	)

	EstimateTotals = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimator_estimate_total_amount",
			Help:    "Distribution of estimated startup totals",
			Buckets: prometheus.ExponentialBuckets(10000, 2, 10),
		},
		[]string{"franchise"},
	)

	ComparisonsAssembled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_comparisons_total",
			Help: "Comparisons assembled, by number of rendered columns",
		},
		[]string{"columns"},
	)

	ScenarioStoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_scenario_store_writes_total",
			Help: "Scenario list rewrites, by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	SavedScenarios = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "estimator_saved_scenarios",
			Help: "Number of scenarios in the loaded list",
		},
	)
)

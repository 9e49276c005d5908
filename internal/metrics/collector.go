// Package metrics exposes Prometheus collectors for content processing,
// workflow execution and AI access.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AI access metrics
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteflow_ai_requests_total",
			Help: "Total number of AI access requests by response source",
		},
		[]string{"source"},
	)

	rateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "noteflow_ratelimit_wait_seconds",
			Help:    "Time spent waiting for a rate limiter token",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)

	// Processing metrics
	contentProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteflow_content_processed_total",
			Help: "Total number of content items processed",
		},
		[]string{"content_type", "outcome"},
	)

	processingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "noteflow_processing_duration_seconds",
			Help:    "Content processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"content_type"},
	)

	// Workflow metrics
	workflowActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteflow_workflow_actions_total",
			Help: "Total number of workflow actions executed",
		},
		[]string{"kind", "outcome"},
	)

	categorizerEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteflow_categorizer_evaluations_total",
			Help: "Total number of category rule evaluations",
		},
		[]string{"outcome"},
	)
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// RecordAIRequest counts an AI access request served from source.
func RecordAIRequest(source string) {
	aiRequestsTotal.WithLabelValues(source).Inc()
}

// ObserveRateLimitWait records how long a caller waited for a token.
func ObserveRateLimitWait(d time.Duration) {
	rateLimitWait.Observe(d.Seconds())
}

// RecordProcessing records the outcome and duration of processing one item.
func RecordProcessing(contentType string, err error, d time.Duration) {
	contentProcessedTotal.WithLabelValues(contentType, outcome(err)).Inc()
	processingDuration.WithLabelValues(contentType).Observe(d.Seconds())
}

// RecordWorkflowAction counts an executed workflow action.
func RecordWorkflowAction(kind string, err error) {
	workflowActionsTotal.WithLabelValues(kind, outcome(err)).Inc()
}

// RecordRuleEvaluation counts a category rule evaluation.
func RecordRuleEvaluation(err error) {
	categorizerEvaluations.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

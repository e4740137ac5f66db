package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	feedbackRequestsTotal  *prometheus.CounterVec
	feedbackLatencySeconds *prometheus.HistogramVec
	modelPredictionsTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the feedback API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		feedbackRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_requests_total",
			Help: "Total number of feedback API requests served.",
		}, []string{"method", "route", "status"})

		feedbackLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedback_latency_seconds",
			Help:    "Latency distribution for feedback API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		modelPredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "model_predictions_total",
			Help: "Classifier predictions by outcome, including the no-model fallback.",
		}, []string{"outcome"})

		prometheus.MustRegister(feedbackRequestsTotal, feedbackLatencySeconds, modelPredictionsTotal)
	})
}

// FeedbackRequests exposes the counter for feedback API requests.
func FeedbackRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return feedbackRequestsTotal
}

// FeedbackLatency exposes the latency histogram for feedback API requests.
func FeedbackLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return feedbackLatencySeconds
}

// ModelPredictions exposes the counter for classifier outcomes.
func ModelPredictions() *prometheus.CounterVec {
	RegisterMetrics()
	return modelPredictionsTotal
}

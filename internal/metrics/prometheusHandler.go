package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var chunksIndexedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chunks_indexed_total",
	Help: "Text chunks written to the vector store across crawls and report ingestions",
})

var policyDraftsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "policy_drafts_total",
	Help: "Policy drafts labelled by outcome",
}, []string{"outcome"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

// WriteHeader shadows the embedded writer so the final status reaches the
// request counter.
func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func AddChunksIndexed(count int) {
	chunksIndexedTotal.Add(float64(count))
}

func CountPolicyOutcomes(written, failed int) {
	policyDraftsTotal.WithLabelValues("written").Add(float64(written))
	policyDraftsTotal.WithLabelValues("failed").Add(float64(failed))
}

var jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_job_duration_seconds",
	Help:    "End to end job execution time by final status.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 120},
}, []string{"status"})

var stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_stage_duration_seconds",
	Help:    "Latency of pipeline stages and their dependency calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 60},
}, []string{"stage"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	stageDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	jobDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

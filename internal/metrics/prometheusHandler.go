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

var indexWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "index_writes_total",
	Help: "Index write attempts labelled by result (inserted, skipped, error)",
}, []string{"result"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status      int
	wroteHeader bool
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.Status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the real writer.
func (r *HttpStatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
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

func IncrementIndexWrites(result string) {
	indexWrites.WithLabelValues(result).Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent running one pipeline job.",
	Buckets: []float64{.5, 1, 2, 5, 10, 30, 60, 90},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

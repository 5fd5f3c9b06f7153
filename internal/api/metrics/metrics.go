package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewRegistry returns a registry pre-populated with the standard process and
// Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Metrics holds the Prometheus instruments exported by the API server.
type Metrics struct {
	// HTTP surface
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Job lifecycle
	JobsCreated   prometheus.Counter
	JobsCompleted prometheus.Counter
	JobsFailed    prometheus.Counter
	JobDuration   prometheus.Histogram

	// Transcript output
	ChunksProcessed prometheus.Counter
	ChunksFailed    prometheus.Counter
	AudioSeconds    prometheus.Counter
}

// NewMetrics creates all instruments and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "m2t_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "m2t_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		JobsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "m2t_jobs_created_total",
			Help: "Total number of transcription jobs submitted over the API",
		}),
		JobsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "m2t_jobs_completed_total",
			Help: "Total number of jobs that produced a transcript",
		}),
		JobsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "m2t_jobs_failed_total",
			Help: "Total number of jobs that finished without a transcript",
		}),
		JobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "m2t_job_duration_seconds",
			Help:    "Wall time from job start to completion",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~68 minutes
		}),

		ChunksProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "m2t_chunks_processed_total",
			Help: "Total number of audio chunks sent to a transcription backend",
		}),
		ChunksFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "m2t_chunks_failed_total",
			Help: "Total number of audio chunks whose transcription failed",
		}),
		AudioSeconds: factory.NewCounter(prometheus.CounterOpts{
			Name: "m2t_audio_seconds_total",
			Help: "Total seconds of source audio processed",
		}),
	}
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordJobCreated counts a newly submitted job.
func (m *Metrics) RecordJobCreated() {
	m.JobsCreated.Inc()
}

// RecordJobFinished records the terminal state of a job. Jobs with at least
// one transcribed chunk count as completed.
func (m *Metrics) RecordJobFinished(succeeded bool, durationSeconds float64) {
	if succeeded {
		m.JobsCompleted.Inc()
	} else {
		m.JobsFailed.Inc()
	}
	m.JobDuration.Observe(durationSeconds)
}

// RecordJobOutput accumulates per-job chunk and audio counters.
func (m *Metrics) RecordJobOutput(chunkCount, successCount, audioDurationMs int) {
	m.ChunksProcessed.Add(float64(chunkCount))
	if failed := chunkCount - successCount; failed > 0 {
		m.ChunksFailed.Add(float64(failed))
	}
	m.AudioSeconds.Add(float64(audioDurationMs) / 1000)
}

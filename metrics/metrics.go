package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AnalyzeTotal counts analysis requests by outcome.
	AnalyzeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scamcheck",
		Subsystem: "analyzer",
		Name:      "analyze_total",
		Help:      "Total number of analysis requests handled, labeled by result.",
	}, []string{"result"})

	// AnalyzeDurationSeconds is end-to-end time per analysis request,
	// dominated by the model call.
	AnalyzeDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "scamcheck",
		Subsystem: "analyzer",
		Name:      "analyze_duration_seconds",
		Help:      "End-to-end time to handle an analysis request (image fetch + model call + sanitize).",
		// Keep buckets fairly coarse to avoid high-cardinality time series.
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 120},
	}, []string{"result"})

	// ImageFetchFailTotal counts image fetches absorbed as text-only
	// degradation, labeled by reason.
	ImageFetchFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scamcheck",
		Subsystem: "analyzer",
		Name:      "image_fetch_fail_total",
		Help:      "Total number of image fetches that failed and degraded the analysis to text-only.",
	}, []string{"reason"})

	// CleanupFailTotal counts best-effort blob deletions that failed.
	CleanupFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scamcheck",
		Subsystem: "analyzer",
		Name:      "cleanup_fail_total",
		Help:      "Total number of staged-image deletions that failed (suppressed, never surfaced).",
	})

	// UploadTotal counts image uploads by outcome.
	UploadTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scamcheck",
		Subsystem: "analyzer",
		Name:      "upload_total",
		Help:      "Total number of image upload requests, labeled by result.",
	}, []string{"result"})
)

// Register registers analyzer metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AnalyzeTotal,
			AnalyzeDurationSeconds,
			ImageFetchFailTotal,
			CleanupFailTotal,
			UploadTotal,
		)
	})
}

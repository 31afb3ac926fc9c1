package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the music catalog service.
// Metrics are organized by subsystem: HTTP, imports, and publisher dedup.
// All counters and histograms are registered via promauto for automatic
// registration with the default Prometheus registry.
type Metrics struct {
	// HTTPRequestsTotal counts HTTP requests, labeled by method, path and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request duration in seconds, labeled by method and path.
	HTTPRequestDuration *prometheus.HistogramVec

	// ImportsStarted counts CSV import runs initiated.
	ImportsStarted prometheus.Counter

	// ImportsCompleted counts CSV import runs that finished successfully.
	ImportsCompleted prometheus.Counter

	// ImportsFailed counts CSV import runs that ended in failure.
	ImportsFailed prometheus.Counter

	// ImportDuration observes the end-to-end duration of import runs in seconds.
	ImportDuration prometheus.Histogram

	// WorksImported counts works created by imports, labeled by CSV layout.
	WorksImported *prometheus.CounterVec

	// WorksSkipped counts already-present works skipped by imports, labeled by CSV layout.
	WorksSkipped *prometheus.CounterVec

	// PeopleCreated counts people created by imports.
	PeopleCreated prometheus.Counter

	// PublicationsCreated counts publications created by imports.
	PublicationsCreated prometheus.Counter

	// DuplicateScans counts publisher duplicate scans performed.
	DuplicateScans prometheus.Counter

	// DuplicateGroupsFound observes the number of candidate groups per scan.
	DuplicateGroupsFound prometheus.Histogram

	// PublishersMerged counts completed publisher merges.
	PublishersMerged prometheus.Counter

	// PublicationsRepointed counts publications moved between publishers by merges.
	PublicationsRepointed prometheus.Counter

	// MergeFailures counts failed merges, labeled by the merge step that failed.
	MergeFailures *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// HTTP
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),

		// Imports
		ImportsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_started_total",
			Help:      "Total number of CSV import runs started",
		}),
		ImportsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_completed_total",
			Help:      "Total number of CSV import runs completed successfully",
		}),
		ImportsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_failed_total",
			Help:      "Total number of CSV import runs that failed",
		}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Duration of CSV import runs in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		WorksImported: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "works_imported_total",
			Help:      "Total number of works created by imports",
		}, []string{"layout"}),
		WorksSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "works_skipped_total",
			Help:      "Total number of already-present works skipped by imports",
		}, []string{"layout"}),
		PeopleCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "people_created_total",
			Help:      "Total number of people created by imports",
		}),
		PublicationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publications_created_total",
			Help:      "Total number of publications created by imports",
		}),

		// Publisher dedup
		DuplicateScans: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_scans_total",
			Help:      "Total number of publisher duplicate scans performed",
		}),
		DuplicateGroupsFound: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duplicate_groups_found",
			Help:      "Number of candidate duplicate groups found per scan",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		PublishersMerged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publishers_merged_total",
			Help:      "Total number of completed publisher merges",
		}),
		PublicationsRepointed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publications_repointed_total",
			Help:      "Total number of publications moved between publishers by merges",
		}),
		MergeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_failures_total",
			Help:      "Total number of failed publisher merges by merge step",
		}, []string{"step"}),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordImportStarted increments the import started counter.
func (m *Metrics) RecordImportStarted() {
	m.ImportsStarted.Inc()
}

// RecordImportCompleted records a successful import run.
func (m *Metrics) RecordImportCompleted(durationSeconds float64) {
	m.ImportsCompleted.Inc()
	m.ImportDuration.Observe(durationSeconds)
}

// RecordImportFailed records a failed import run.
func (m *Metrics) RecordImportFailed(durationSeconds float64) {
	m.ImportsFailed.Inc()
	m.ImportDuration.Observe(durationSeconds)
}

// RecordWorksImported records works created and skipped for a CSV layout.
func (m *Metrics) RecordWorksImported(layout string, imported, skipped int) {
	m.WorksImported.WithLabelValues(layout).Add(float64(imported))
	m.WorksSkipped.WithLabelValues(layout).Add(float64(skipped))
}

// RecordPeopleCreated adds to the people created counter.
func (m *Metrics) RecordPeopleCreated(count int) {
	m.PeopleCreated.Add(float64(count))
}

// RecordPublicationsCreated adds to the publications created counter.
func (m *Metrics) RecordPublicationsCreated(count int) {
	m.PublicationsCreated.Add(float64(count))
}

// RecordDuplicateScan records a duplicate scan and the number of groups it found.
func (m *Metrics) RecordDuplicateScan(groupCount int) {
	m.DuplicateScans.Inc()
	m.DuplicateGroupsFound.Observe(float64(groupCount))
}

// RecordMergeCompleted records a completed merge and its repointed publications.
func (m *Metrics) RecordMergeCompleted(repointed int64) {
	m.PublishersMerged.Inc()
	m.PublicationsRepointed.Add(float64(repointed))
}

// RecordMergeFailed records a failed merge by step.
func (m *Metrics) RecordMergeFailed(step string) {
	m.MergeFailures.WithLabelValues(step).Inc()
}

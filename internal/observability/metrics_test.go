package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics("test_catalog_new")
	require.NotNil(t, m)

	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.ImportsStarted)
	assert.NotNil(t, m.WorksImported)
	assert.NotNil(t, m.PublishersMerged)
	assert.NotNil(t, m.MergeFailures)
}

func TestRecordWorksImported(t *testing.T) {
	m := NewMetrics("test_catalog_works")

	m.RecordWorksImported("Allsanger", 120, 8)

	assert.Equal(t, float64(120), testutil.ToFloat64(m.WorksImported.WithLabelValues("Allsanger")))
	assert.Equal(t, float64(8), testutil.ToFloat64(m.WorksSkipped.WithLabelValues("Allsanger")))
}

func TestRecordMergeCompleted(t *testing.T) {
	m := NewMetrics("test_catalog_merge")

	m.RecordMergeCompleted(12)
	m.RecordMergeCompleted(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.PublishersMerged))
	assert.Equal(t, float64(15), testutil.ToFloat64(m.PublicationsRepointed))
}

func TestRecordMergeFailed(t *testing.T) {
	m := NewMetrics("test_catalog_merge_failed")

	m.RecordMergeFailed("repoint")
	m.RecordMergeFailed("rename")
	m.RecordMergeFailed("rename")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.MergeFailures.WithLabelValues("repoint")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.MergeFailures.WithLabelValues("rename")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.MergeFailures.WithLabelValues("delete")))
}

func TestRecordDuplicateScan(t *testing.T) {
	m := NewMetrics("test_catalog_scan")

	m.RecordDuplicateScan(4)
	m.RecordDuplicateScan(0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DuplicateScans))
}

func TestRecordImportLifecycle(t *testing.T) {
	m := NewMetrics("test_catalog_import")

	m.RecordImportStarted()
	m.RecordImportCompleted(12.5)
	m.RecordImportStarted()
	m.RecordImportFailed(3.2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ImportsStarted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportsCompleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportsFailed))
}

func TestRecordPeopleAndPublications(t *testing.T) {
	m := NewMetrics("test_catalog_counts")

	m.RecordPeopleCreated(42)
	m.RecordPublicationsCreated(7)

	assert.Equal(t, float64(42), testutil.ToFloat64(m.PeopleCreated))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.PublicationsCreated))
}

package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.BatchQueued()
	m.BatchQueued()
	m.BatchFinished("completed", 20*time.Millisecond)
	m.BatchFinished("failed", time.Millisecond)
	m.AnalyzerFailed("grammar")
	m.SuggestionFeedback("accepted")
	m.QueueDepth(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.batchesQueued))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batchesFinished.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batchesFinished.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyzerFailed.WithLabelValues("grammar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feedback.WithLabelValues("accepted")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.queueDepth))
}

func TestMetrics_InstancesAreIndependent(t *testing.T) {
	a, b := New(), New()

	a.BatchQueued()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.batchesQueued))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.batchesQueued))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.BatchFinished("completed", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `inkwell_analysis_batches_finished_total{status="completed"} 1`))
	assert.Contains(t, text, "inkwell_analysis_duration_seconds_bucket")
	assert.Contains(t, text, "go_goroutines")
}

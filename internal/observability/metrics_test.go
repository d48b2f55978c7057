package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.CacheHit()
	m.CacheMiss()
	m.Reconciliation("update")
	m.Mutation("create", "success")
	m.StreamChunk()
	m.ObserveRequest("GET", "/api/articles", "200", time.Millisecond)
	assert.NotNil(t, m.Handler())
}

func TestMetricsExposition(t *testing.T) {
	m := New()
	m.CacheHit()
	m.Mutation("create", "success")
	m.StreamChunk()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "mediadesk_cache_hits_total 1")
	assert.Contains(t, body, `mediadesk_mutations_total{kind="create",outcome="success"} 1`)
	assert.Contains(t, body, "mediadesk_stream_chunks_total 1")
}

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestObserveRequest tests request counting by method and status.
func TestObserveRequest(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveRequest("GET", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", 200, 20*time.Millisecond)
	m.ObserveRequest("GET", 404, time.Millisecond)
	m.ObserveRequest("POST", 0, time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "404")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", StatusTransportError)), 0)

	count, err := testutil.GatherAndCount(registry, "basic_api_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// TestObserveRequest_NilMetrics tests that a nil receiver is a no-op.
func TestObserveRequest_NilMetrics(t *testing.T) {
	t.Parallel()

	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", 200, time.Millisecond)
	})
}

// TestNew_WithoutRegisterer tests unregistered collectors.
func TestNew_WithoutRegisterer(t *testing.T) {
	t.Parallel()

	m := New(nil)
	require.NotNil(t, m)

	m.ObserveRequest("DELETE", 204, time.Millisecond)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("DELETE", "204")), 0)
}

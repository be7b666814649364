package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("PUT", "/api/media/:id/rating", "200"))
	RecordAPIRequest("PUT", "/api/media/:id/rating", 200, 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("PUT", "/api/media/:id/rating", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("item"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("item"))

	RecordCacheLookup("item", true)
	RecordCacheLookup("item", false)
	RecordCacheLookup("item", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(CacheHits.WithLabelValues("item")))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheMisses.WithLabelValues("item")))
}

func TestSetCircuitBreakerState(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}
	for _, tt := range tests {
		SetCircuitBreakerState("test", tt.state)
		assert.Equal(t, tt.want, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test")))
	}
}

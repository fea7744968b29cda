package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Mutation("checkout")
	m.Mutation("checkout")
	m.PersistFailure("cart")
	m.AdvisorFallback("describe")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("checkout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures.WithLabelValues("cart")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdvisorFallbacks.WithLabelValues("describe")))
}

func TestHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Mutation("add_to_cart")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `goyal_store_mutations_total{op="add_to_cart"} 1`)
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRequest("/api/cart", 200, 12*time.Millisecond)
	m.ObserveRequest("/api/cart", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/api/cart", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/api/cart", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.LatencyMS))
}

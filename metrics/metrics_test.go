package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := Middleware(mux)

	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "GET /api/v1/venues/{id}", "404"))
	for _, path := range []string{"/api/v1/venues/1", "/api/v1/venues/2"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "GET /api/v1/venues/{id}", "404"))

	assert.Equal(t, 2.0, after-before)
	assert.Equal(t, 0.0, testutil.ToFloat64(APIActiveRequests))
}

func TestMiddleware_Unmatched(t *testing.T) {
	h := Middleware(http.NewServeMux())
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "unmatched", "404"))-before)
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("test"))

	RecordCacheLookup("test", true)
	RecordCacheLookup("test", false)
	RecordCacheLookup("test", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(CacheHits.WithLabelValues("test"))-hits)
	assert.Equal(t, 2.0, testutil.ToFloat64(CacheMisses.WithLabelValues("test"))-misses)
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/foods/:id", "200"))

	ObserveRequest("GET", "/api/foods/:id", http.StatusOK, 12*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/foods/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveRequest_Unmatched(t *testing.T) {
	ObserveRequest("GET", "", http.StatusNotFound, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRecommend("ok")
	ObserveRequest("GET", "/health", http.StatusOK, time.Millisecond)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "food_recommend_calls_total")
	assert.Contains(t, string(body), "food_http_requests_total")
}

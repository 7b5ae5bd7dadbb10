package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/dog/:id/:status/next/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": 1}) })
	r.PUT("/dog/:id/:status/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cases := []struct {
		method, target string
		label, status  string
	}{
		{http.MethodGet, "/dog/1/liked/next/", "/dog/:id/:status/next/", "200"},
		{http.MethodGet, "/dog/2/undecided/next/", "/dog/:id/:status/next/", "200"},
		{http.MethodPut, "/dog/3/liked/", "/dog/:id/:status/", "204"},
		{http.MethodGet, "/nowhere", "/nowhere", "404"},
	}
	before := make([]float64, len(cases))
	for i, tc := range cases {
		before[i] = testutil.ToFloat64(httpReqs.WithLabelValues(tc.method, tc.label, tc.status))
	}
	for _, tc := range cases {
		serve(r, tc.method, tc.target)
	}

	// The two next/ calls share one series.
	wantDelta := []float64{2, 2, 1, 1}
	for i, tc := range cases {
		got := testutil.ToFloat64(httpReqs.WithLabelValues(tc.method, tc.label, tc.status)) - before[i]
		if got != wantDelta[i] {
			t.Errorf("%s %s: delta = %v; want %v", tc.method, tc.label, got, wantDelta[i])
		}
	}
	if v := testutil.ToFloat64(httpInflight); v != 0 {
		t.Errorf("inflight = %v after all requests finished", v)
	}
	if n := testutil.CollectAndCount(httpLat, "pugorugh_http_request_duration_seconds"); n < 3 {
		t.Errorf("latency series = %d", n)
	}
	if n := testutil.CollectAndCount(httpRespSize, "pugorugh_http_response_size_bytes"); n < 1 {
		t.Errorf("size series = %d", n)
	}
}

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveReport(t *testing.T) {
	m := New()

	m.ObserveReport(SourceStored, 3)
	m.ObserveReport(SourcePreview, 7)
	m.ObserveReport(SourceStored, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Reports.WithLabelValues(SourceStored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reports.WithLabelValues(SourcePreview)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transfers), "previews do not move the gauge")

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveReport(SourceStored, 1) })
}

func TestHandler(t *testing.T) {
	m := New()
	m.Requests.WithLabelValues("/api/settlement", "GET", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `cuptrip_http_requests_total{code="200",method="GET",route="/api/settlement"} 1`)
}

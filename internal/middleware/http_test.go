package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/cuptrip/internal/auth"
	"github.com/mmynk/cuptrip/internal/metrics"
	"github.com/mmynk/cuptrip/internal/models"
)

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/api/settlement":                         "/api/settlement",
		"/cuptrip.v1.BudgetService/GetSettlement": "/cuptrip.v1.BudgetService/GetSettlement",
		"/healthz":                                "/healthz",
		"/metrics":                                "/metrics",
		"/":                                       "static",
		"/assets/app.js":                          "static",
		"/budget":                                 "static",
		"/api/junk":                               "unknown",
		"/api/settlement/extra":                   "unknown",
		"/cuptrip.v1.BudgetService/DropTables":    "unknown",
		"/cuptrip.v1.Nope/Call":                   "unknown",
	}
	for path, want := range tests {
		assert.Equal(t, want, routeLabel(path), path)
	}
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	h := Metrics(m, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/settlement", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/settlement", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("/api/settlement", "GET", "500")))
}

func TestMetrics_BoundedLabels(t *testing.T) {
	m := metrics.New()
	h := Metrics(m, http.NotFoundHandler())

	for i := 0; i < 50; i++ {
		for _, path := range []string{
			fmt.Sprintf("/api/junk/%d", i),
			fmt.Sprintf("/cuptrip.v1.Nope/Call%d", i),
			fmt.Sprintf("/assets/%d.js", i),
		} {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		}
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Method = fmt.Sprintf("VERB%d", i)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	// unknown, static and /healthz with a folded method
	assert.Equal(t, 3, testutil.CollectAndCount(m.Requests))
	assert.Equal(t, 3, testutil.CollectAndCount(m.RequestDuration))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.Requests.WithLabelValues("unknown", "GET", "404")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.Requests.WithLabelValues("/healthz", "other", "404")))
}

func TestLogging_PassesThrough(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS("https://cup.example", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/settlement", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called, "preflight should not reach the handler")
	assert.Equal(t, "https://cup.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settlement", nil))
	assert.True(t, called)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"Bearer a b", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestWithTraveler(t *testing.T) {
	ctx := WithTraveler(context.Background(), &auth.Claims{TravelerID: "t1", Name: "Alice"})
	assert.Equal(t, "t1", GetTravelerID(ctx))
	assert.Equal(t, "Alice", GetName(ctx))
	assert.Empty(t, GetTravelerID(context.Background()))
}

func TestClaimsRoundTrip(t *testing.T) {
	m := auth.NewJWTManager("middleware-test-secret", time.Minute, "test-trip")
	token, err := m.Generate(&models.Traveler{ID: "t1", Name: "Alice"})
	assert.NoError(t, err)

	raw, ok := bearerToken("Bearer " + token)
	assert.True(t, ok)
	claims, err := m.Validate(raw)
	assert.NoError(t, err)
	assert.Equal(t, "t1", GetTravelerID(WithTraveler(context.Background(), claims)))
}

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/applications/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/applications/{id}", "404"))

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/applications/{id}", "404"))
	assert.Equal(t, 3.0, after-before)
	assert.Zero(t, testutil.ToFloat64(httpInFlight))
}

func TestCompensated(t *testing.T) {
	okBefore := testutil.ToFloat64(compensations.WithLabelValues("ok"))
	failedBefore := testutil.ToFloat64(compensations.WithLabelValues("failed"))

	Compensated(nil)
	Compensated(errors.New("boom"))
	Compensated(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(compensations.WithLabelValues("ok"))-okBefore)
	assert.Equal(t, 2.0, testutil.ToFloat64(compensations.WithLabelValues("failed"))-failedBefore)
}

func TestHandlerExposesRegistry(t *testing.T) {
	ApplicationCreated()
	PublishFailed()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "applications_api_applications_created_total")
	assert.Contains(t, rec.Body.String(), "applications_api_applications_publish_failures_total")
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/access-points/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/access-points/{id}", "404"))

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/access-points/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/access-points/{id}", "404"))
	assert.Equal(t, 3.0, after-before)
}

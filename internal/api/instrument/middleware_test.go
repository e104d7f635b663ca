package instrument

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/knowyourrights/cards/server/internal/metrics"
)

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	var logs bytes.Buffer
	r := mux.NewRouter()
	r.Use(Middleware(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	r.HandleFunc("/api/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	counter := metrics.HTTPRequestsTotal.WithLabelValues("/api/things/{id}", http.MethodGet, "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/things/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
	assert.Contains(t, logs.String(), `"route":"/api/things/{id}"`)
	assert.Contains(t, logs.String(), `"status":418`)
}

func TestStatusWriter_DefaultsToOK(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr}
	_, _ = sw.Write([]byte("hello"))
	sw.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusOK, sw.status)
	assert.Equal(t, 5, sw.bytes)
}

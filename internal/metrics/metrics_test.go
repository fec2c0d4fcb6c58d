package metrics

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Chain(mux, Prometheus())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET /teapot", "GET", "418"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET /teapot", "GET", "418"))

	assert.Equal(t, before+1, after)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := Chain(http.NotFoundHandler(), RequestLogger(log))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Contains(t, buf.String(), "path=/nope")
	assert.Contains(t, buf.String(), "status=404")
}

func TestObserveRule(t *testing.T) {
	type rule string
	before := testutil.ToFloat64(RulesFired.WithLabelValues("typo"))
	ObserveRule(rule("typo"))
	assert.Equal(t, before+1, testutil.ToFloat64(RulesFired.WithLabelValues("typo")))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type fakeMetrics struct {
	route  string
	status int
	calls  int
}

func (f *fakeMetrics) Record(route, _ string, status int, _ time.Duration) {
	f.route = route
	f.status = status
	f.calls++
}

func TestLoggerRecordsRoutePattern(t *testing.T) {
	metrics := &fakeMetrics{}
	r := chi.NewRouter()
	r.Use(Logger(metrics))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	if metrics.calls != 1 {
		t.Fatalf("expected one observation, got %d", metrics.calls)
	}
	if metrics.route != "/items/{id}" || metrics.status != http.StatusTeapot {
		t.Fatalf("unexpected observation: %+v", metrics)
	}
}

func TestLoggerWithoutMetrics(t *testing.T) {
	handler := Logger(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

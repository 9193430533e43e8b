package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClientMetricsExistAndIncrement(t *testing.T) {
	lbl := "test.operation"

	ClientRequests.WithLabelValues(lbl, http.MethodGet, "200").Inc()
	if v := testutil.ToFloat64(ClientRequests.WithLabelValues(lbl, http.MethodGet, "200")); v < 1 {
		t.Fatalf("expected ClientRequests >= 1, got %v", v)
	}

	ClientRequestErrors.WithLabelValues(lbl, http.MethodPut).Add(2)
	if v := testutil.ToFloat64(ClientRequestErrors.WithLabelValues(lbl, http.MethodPut)); v < 2 {
		t.Fatalf("expected ClientRequestErrors >= 2, got %v", v)
	}

	ClientRequestDuration.WithLabelValues(lbl, http.MethodGet).Observe(0.25)
	if n := testutil.CollectAndCount(ClientRequestDuration, "pinotctl_client_request_duration_seconds"); n < 1 {
		t.Fatalf("expected at least one duration series, got %d", n)
	}
}

func TestMockControllerMetricsLabelCardinality(t *testing.T) {
	MockControllerRequests.Reset()
	defer MockControllerRequests.Reset()
	labels := []string{"/tenants/:name", http.MethodGet, "404"}
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MockControllerRequests panicked with labels %v: %v", labels, r)
		}
	}()

	MockControllerRequests.WithLabelValues(labels...).Inc()
	if v := testutil.ToFloat64(MockControllerRequests.WithLabelValues(labels...)); v != 1 {
		t.Fatalf("expected metric value 1 after increment, got %v", v)
	}
}

func TestMetricsHandlerServesClientMetrics(t *testing.T) {
	ClientRequests.WithLabelValues("handler.test", http.MethodGet, "200").Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pinotctl_client_requests_total") {
		t.Fatalf("expected client request metric in output")
	}
}

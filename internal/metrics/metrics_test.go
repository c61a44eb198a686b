package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"irrigation_gateway/internal/retry"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAttempt_CountsOutcomesAndExhaustion(t *testing.T) {
	r := New()
	fail := errors.New("timeout")

	r.ObserveAttempt(retry.Attempt{Operation: "start_zone", Number: 1, Max: 2, Err: fail})
	r.ObserveAttempt(retry.Attempt{Operation: "start_zone", Number: 2, Max: 2, Err: fail})
	r.ObserveAttempt(retry.Attempt{Operation: "stop_all", Number: 1, Max: 2})

	if got := testutil.ToFloat64(r.attempts.WithLabelValues("start_zone", outcomeFailure)); got != 2 {
		t.Fatalf("start_zone failures=%v, want 2", got)
	}
	if got := testutil.ToFloat64(r.attempts.WithLabelValues("stop_all", outcomeSuccess)); got != 1 {
		t.Fatalf("stop_all successes=%v, want 1", got)
	}
	if got := testutil.ToFloat64(r.exhausted.WithLabelValues("start_zone")); got != 1 {
		t.Fatalf("start_zone exhausted=%v, want 1", got)
	}
	if got := testutil.ToFloat64(r.exhausted.WithLabelValues("stop_all")); got != 0 {
		t.Fatalf("stop_all exhausted=%v, want 0", got)
	}
}

func TestObserveResponse(t *testing.T) {
	r := New()
	r.ObserveResponse("zone_status", true)
	r.ObserveResponse("zone_status", false)
	r.ObserveResponse("zone_status", true)

	if got := testutil.ToFloat64(r.responses.WithLabelValues("zone_status", outcomeSuccess)); got != 2 {
		t.Fatalf("successes=%v, want 2", got)
	}
}

func TestHandler_ExposesGatewayMetrics(t *testing.T) {
	r := New()
	r.ObserveGateWait(150 * time.Millisecond)
	r.ObserveAttempt(retry.Attempt{Operation: "identity", Number: 1, Max: 2, Elapsed: time.Millisecond})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{
		"irrigation_gateway_device_gate_wait_seconds",
		"irrigation_gateway_device_attempts_total",
		"irrigation_gateway_device_attempt_duration_seconds",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gw "irrigation_gateway"
	"irrigation_gateway/internal/device"
	"irrigation_gateway/internal/models"
	"irrigation_gateway/internal/retry"
	"irrigation_gateway/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal %s: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func TestStartZone_Success(t *testing.T) {
	z := &mockZones{startResp: gw.Succeeded("Zone 3 started for 10 minutes", models.Ack{Type: "AcknowledgeResponse"})}
	r := newTestRouter(&service.Service{Zones: z})

	w, env := doJSON(t, r, http.MethodPost, "/api/start-zone", `{"zone":3,"duration":"10"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if !env.Success || env.Message != "Zone 3 started for 10 minutes" || env.Error != "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if z.lastZone != float64(3) || z.lastDuration != "10" {
		t.Fatalf("args not passed through: zone=%#v duration=%#v", z.lastZone, z.lastDuration)
	}
}

func TestStartZone_OmittedDurationIsNil(t *testing.T) {
	z := &mockZones{startResp: gw.Succeeded("ok", nil)}
	r := newTestRouter(&service.Service{Zones: z})

	doJSON(t, r, http.MethodPost, "/api/start-zone", `{"zone":4}`)

	if z.lastDuration != nil {
		t.Fatalf("expected nil duration, got %#v", z.lastDuration)
	}
}

func TestStartZone_MalformedBody(t *testing.T) {
	z := &mockZones{}
	r := newTestRouter(&service.Service{Zones: z})

	for _, body := range []string{`{"zone":`, ``} {
		w, env := doJSON(t, r, http.MethodPost, "/api/start-zone", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status=%d", body, w.Code)
		}
		if env.Success || env.Message != msgStartFailed || !strings.HasPrefix(env.Error, errInvalidBodyPref) {
			t.Fatalf("body %q: unexpected envelope %+v", body, env)
		}
	}
	if z.startCalls != 0 {
		t.Fatalf("service must not be called for a malformed body")
	}
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		resp gw.Response
		want int
	}{
		{"success", gw.Succeeded("ok", nil), http.StatusOK},
		{"invalid argument", gw.Failed("Failed to start zone", "zone is required",
			fmt.Errorf("%w: zone is required", service.ErrInvalidArgument)), http.StatusBadRequest},
		{"not initialized", gw.Failed("Failed to start zone", "controller not initialized",
			fmt.Errorf("%w: dial tcp", device.ErrNotInitialized)), http.StatusServiceUnavailable},
		{"exhausted", gw.Failed("Failed to start zone", "zone busy",
			&retry.ExhaustedError{Operation: "start_zone", Attempts: 2, Err: &device.Error{Op: "start_zone", Err: errors.New("zone busy")}}),
			http.StatusInternalServerError},
		{"unclassified", gw.Failed("Failed to start zone", "boom", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Zones: &mockZones{startResp: tc.resp}})
			w, env := doJSON(t, r, http.MethodPost, "/api/start-zone", `{"zone":1,"duration":1}`)
			if w.Code != tc.want {
				t.Fatalf("status=%d, want %d", w.Code, tc.want)
			}
			if env.Success != tc.resp.Success || env.Error != tc.resp.Error {
				t.Fatalf("envelope not passed through: %+v", env)
			}
		})
	}
}

func TestFailureEnvelopeHasNoData(t *testing.T) {
	z := &mockZones{infoResp: gw.Failed("Failed to get controller info", "timeout", errors.New("timeout"))}
	r := newTestRouter(&service.Service{Zones: z})

	w, _ := doJSON(t, r, http.MethodGet, "/api/controller-info", "")

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["data"]; ok {
		t.Fatalf("failure envelope must not carry data: %s", w.Body.String())
	}
	if raw["success"] != false || raw["error"] != "timeout" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestStopZone_EmptyAndWithZone(t *testing.T) {
	z := &mockZones{stopResp: gw.Succeeded("All zones stopped", models.Ack{Type: "AcknowledgeResponse"})}
	r := newTestRouter(&service.Service{Zones: z})

	w, env := doJSON(t, r, http.MethodPost, "/api/stop-zone", "")
	if w.Code != http.StatusOK || env.Message != "All zones stopped" {
		t.Fatalf("empty body: status=%d env=%+v", w.Code, env)
	}
	if z.lastStopZone != nil {
		t.Fatalf("expected nil zone, got %#v", z.lastStopZone)
	}

	doJSON(t, r, http.MethodPost, "/api/stop-zone", `{"zone":5}`)
	if z.lastStopZone != float64(5) {
		t.Fatalf("zone not passed through: %#v", z.lastStopZone)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/stop-zone", `{"zone":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status=%d", w.Code)
	}
	if z.stopCalls != 2 {
		t.Fatalf("stop calls=%d, want 2", z.stopCalls)
	}
}

func TestControllerInfoAndStatus(t *testing.T) {
	z := &mockZones{
		infoResp: gw.Succeeded("Controller info retrieved", models.ControllerInfo{
			Model: "ESP-TM2 v3.0", Connected: true, Address: "192.168.5.17",
		}),
		statusResp: gw.Succeeded("Zone status retrieved", models.ZoneStatus{
			ActiveZones: []int{2}, Timestamp: "2025-06-01T06:30:15.250Z",
		}),
	}
	r := newTestRouter(&service.Service{Zones: z})

	w, env := doJSON(t, r, http.MethodGet, "/api/controller-info", "")
	if w.Code != http.StatusOK {
		t.Fatalf("info status=%d", w.Code)
	}
	var info models.ControllerInfo
	if err := json.Unmarshal(env.Data, &info); err != nil || info.Model != "ESP-TM2 v3.0" || !info.Connected {
		t.Fatalf("unexpected info %s (%v)", env.Data, err)
	}

	w, env = doJSON(t, r, http.MethodGet, "/api/zone-status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status status=%d", w.Code)
	}
	var st models.ZoneStatus
	if err := json.Unmarshal(env.Data, &st); err != nil || len(st.ActiveZones) != 1 || st.ActiveZones[0] != 2 {
		t.Fatalf("unexpected status %s (%v)", env.Data, err)
	}
}

func TestHealth(t *testing.T) {
	for _, tc := range []struct {
		ready bool
		want  string
	}{{true, controllerReady}, {false, controllerUnavailable}} {
		r := newTestRouter(&service.Service{Zones: &mockZones{ready: tc.ready}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("health status=%d", w.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != statusOK || body["controller"] != tc.want {
			t.Fatalf("unexpected health body: %v", body)
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("irrigation_gateway_requests_total 1\n"))
	})
	r := newTestRouter(&service.Service{Zones: &mockZones{}}, WithMetrics(metrics))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "requests_total") {
		t.Fatalf("metrics: status=%d body=%s", w.Code, w.Body.String())
	}

	r = newTestRouter(&service.Service{Zones: &mockZones{}})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("metrics without recorder: status=%d", w.Code)
	}
}

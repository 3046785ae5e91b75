package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/njchilds90/goquad"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	in, err := goquad.New(goquad.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reg := prometheus.NewRegistry()
	srv := httptest.NewServer(newServer(in, newMetrics(reg), reg))
	t.Cleanup(srv.Close)
	return srv
}

func postTool(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/tool", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /tool: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, out
}

// ============================================================
// /tool
// ============================================================

func TestTool_Trapezodial(t *testing.T) {
	srv := newTestServer(t)
	resp, out := postTool(t, srv, `{"tool":"trapezodial","params":{"equation":"x^2","bound_least":0,"bound_most":1,"trapezoid_count":4,"true_result":0.333333}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	result, ok := out["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("want result object, got %v", out)
	}
	if result["result"] != 0.34375 {
		t.Errorf("want 0.34375, got %v", result["result"])
	}
}

func TestTool_InvalidEquation(t *testing.T) {
	srv := newTestServer(t)
	resp, out := postTool(t, srv, `{"tool":"guass_integration","params":{"equation":"***invalid","bound_least":0,"bound_most":1,"true_result":0,"points":2}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	if msg, _ := out["error"].(string); !strings.Contains(msg, "invalid function") {
		t.Errorf("want invalid function error, got %v", out)
	}
	if _, ok := out["result"]; ok {
		t.Errorf("want no result, got %v", out["result"])
	}
}

func TestTool_NonFiniteResult(t *testing.T) {
	srv := newTestServer(t)
	_, out := postTool(t, srv, `{"tool":"trapezodial","params":{"equation":"1/x","bound_least":0,"bound_most":1,"trapezoid_count":4,"true_result":0}}`)
	if msg, _ := out["error"].(string); !strings.Contains(msg, "not representable") {
		t.Errorf("want not representable error, got %v", out)
	}
}

func TestTool_RejectsBadRequests(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/tool")
	if err != nil {
		t.Fatalf("GET /tool: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET: want 405, got %d", resp.StatusCode)
	}

	bodies := []string{
		`{"tool":`,
		`{"tool":"romberg","extra":1}`,
		`{"tool":"romberg"} {"tool":"romberg"}`,
	}
	for _, body := range bodies {
		resp, out := postTool(t, srv, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: want 400, got %d", body, resp.StatusCode)
		}
		if out["error"] == nil {
			t.Errorf("%s: want error message", body)
		}
	}
}

// ============================================================
// Other endpoints
// ============================================================

func TestSchemaAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/schema")
	if err != nil {
		t.Fatalf("GET /schema: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != goquad.MCPToolSpec() {
		t.Errorf("schema mismatch")
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	var health map[string]string
	json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if health["status"] != "ok" {
		t.Errorf("want status ok, got %v", health)
	}
}

func TestMetrics_CountsToolCalls(t *testing.T) {
	srv := newTestServer(t)
	postTool(t, srv, `{"tool":"romberg","params":{"equation":"x","bound_least":0,"bound_most":1,"true_result":0.5}}`)
	postTool(t, srv, `{"tool":"no_such_tool"}`)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, want := range []string{
		`goquad_tool_calls_total{outcome="ok",tool="romberg"} 1`,
		`goquad_tool_calls_total{outcome="error",tool="unknown"} 1`,
		`goquad_tool_duration_seconds_count{tool="romberg"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %s\n%s", want, body)
		}
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("want echoed id abc-123, got %q", got)
	}

	resp, err = http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("want generated uuid, got %q", got)
	}
}

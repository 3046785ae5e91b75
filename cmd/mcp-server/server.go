package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/njchilds90/goquad"
	"github.com/njchilds90/goquad/internal/logging"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type server struct {
	integrator *goquad.Integrator
	metrics    *metrics
}

func newServer(in *goquad.Integrator, m *metrics, gatherer prometheus.Gatherer) http.Handler {
	s := &server{integrator: in, metrics: m}

	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, goquad.MCPToolSpec())
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return withRequestLog(mux)
}

// POST /tool — handle a tool call
func (s *server) handleTool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer func() {
		if rec := recover(); rec != nil {
			logging.ErrorContext(ctx, "panic in /tool", "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req goquad.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	start := time.Now()
	resp := s.integrator.HandleToolCall(req)
	elapsed := time.Since(start)

	label := req.Tool
	if !goquad.IsTool(label) {
		label = "unknown"
	}
	s.metrics.observe(label, elapsed, resp.Error != "")
	var callErr error
	if resp.Error != "" {
		callErr = errors.New(resp.Error)
	}
	logging.ToolCall(ctx, req.Tool, elapsed, callErr)

	// Non-finite results cannot be encoded; report them instead of a truncated body.
	body, err := json.Marshal(resp)
	if err != nil {
		body, _ = json.Marshal(goquad.ToolResponse{Error: "result is not representable in JSON: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(append(body, '\n'))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestLog tags each request with an id (honouring X-Request-ID) and logs it.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := logging.WithRequestID(r.Context(), id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))
		logging.HTTPRequestContext(ctx, r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
	})
}

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/vire-dashboard/internal/common"
)

func bareServer() *Server {
	return &Server{logger: common.NewSilentLogger()}
}

func TestCorrelationID_Generated(t *testing.T) {
	s := bareServer()
	var seen string
	h := s.correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = common.CorrelationID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("expected generated correlation ID in context")
	}
	if got := w.Header().Get("X-Correlation-ID"); got != seen {
		t.Errorf("response header %q does not match context %q", got, seen)
	}
}

func TestCorrelationID_FromRequestHeaders(t *testing.T) {
	s := bareServer()
	var seen string
	h := s.correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = common.CorrelationID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "corr-1" {
		t.Errorf("expected corr-1, got %q", seen)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	req.Header.Set("X-Correlation-ID", "corr-2")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "req-1" {
		t.Errorf("expected X-Request-ID to win, got %q", seen)
	}
}

func TestRecoveryMiddleware_Returns500(t *testing.T) {
	s := bareServer()
	h := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	s := bareServer()
	called := false
	h := s.corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/api/portfolio/summary", nil))

	if called {
		t.Error("preflight should not reach the handler")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected wildcard CORS origin")
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := bareServer()
	h := s.securityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	for _, header := range []string{"X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy", "Content-Security-Policy"} {
		if w.Header().Get(header) == "" {
			t.Errorf("expected %s header", header)
		}
	}
}

func TestMaxBodySize_RejectsLargeBodies(t *testing.T) {
	s := bareServer()
	var readErr error
	h := s.maxBodySizeMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/", strings.NewReader("0123456789")))
	if readErr == nil {
		t.Error("expected read error for oversized body")
	}
}

func TestLoggingMiddleware_CapturesStatus(t *testing.T) {
	s := bareServer()
	h := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("tea"))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "tea" {
		t.Errorf("logging middleware altered response: %d %q", w.Code, w.Body.String())
	}
}

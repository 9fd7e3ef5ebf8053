package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesOutermostFirst(t *testing.T) {
	t.Parallel()

	tag := func(s string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(s))
				next.ServeHTTP(w, r)
			})
		}
	}

	rr := httptest.NewRecorder()
	Chain(okHandler("H"), tag("1"), tag("2"), tag("3")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Body.String() != "123H" {
		t.Errorf("expected '123H', got %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"generated when absent", "", false},
		{"preserved when present", "req-abc", true},
		{"replaced when oversized", strings.Repeat("x", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set("X-Request-ID", tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			header := rr.Header().Get("X-Request-ID")
			if header != seen {
				t.Errorf("header %q does not match context %q", header, seen)
			}
			if tt.wantSame && header != tt.incoming {
				t.Errorf("expected %q to be preserved, got %q", tt.incoming, header)
			}
			if !tt.wantSame && len(header) != 36 {
				t.Errorf("expected generated uuid, got %q", header)
			}
		})
	}
}

func TestGetRequestID_MissingOrWrongType(t *testing.T) {
	t.Parallel()

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	ctx := context.WithValue(context.Background(), RequestIDKey, 42)
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("expected empty for wrong type, got %q", got)
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_PanicBecomesProblem(t *testing.T) {
	t.Parallel()

	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rr.Body.String(), `"message"`) {
		t.Errorf("expected message field, got %s", rr.Body.String())
	}
}

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Recovery(okHandler("fine")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "fine" {
		t.Errorf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		allowed   []string
		origin    string
		wantAllow string
	}{
		{"allowed origin", []string{"http://localhost:3000"}, "http://localhost:3000", "http://localhost:3000"},
		{"other origin", []string{"http://localhost:3000"}, "https://evil.example", ""},
		{"wildcard", []string{"*"}, "https://any.example", "https://any.example"},
		{"no origin", []string{"http://localhost:3000"}, "", ""},
		{"trailing slash and case", []string{"http://LocalHost:3000/"}, "http://localhost:3000", "http://localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/stalls", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed)(okHandler("ok")).ServeHTTP(rr, req)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			if rr.Header().Get("Access-Control-Allow-Methods") == "" {
				t.Error("expected Allow-Methods header")
			}
		})
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	t.Parallel()

	called := false
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/dishes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent || called {
		t.Errorf("expected 204 without calling handler, got %d (called=%v)", rr.Code, called)
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress(t *testing.T) {
	t.Parallel()

	const body = `[{"id":"stall:a","name":"Spice Route"}]`

	req := httptest.NewRequest(http.MethodGet, "/api/stalls", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rr := httptest.NewRecorder()
	Compress(okHandler(body)).ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding")
	}
	zr, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer func() { _ = zr.Close() }()
	plain, _ := io.ReadAll(zr)
	if string(plain) != body {
		t.Errorf("decompressed %q", plain)
	}

	plainReq := httptest.NewRequest(http.MethodGet, "/api/stalls", nil)
	rr = httptest.NewRecorder()
	Compress(okHandler(body)).ServeHTTP(rr, plainReq)
	if rr.Header().Get("Content-Encoding") != "" || rr.Body.String() != body {
		t.Error("response should pass through uncompressed")
	}
}

func TestCompress_PassesThroughEncodedBodies(t *testing.T) {
	t.Parallel()

	h := Compress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "identity")
		_, _ = w.Write([]byte("raw"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "identity" || rr.Body.String() != "raw" {
		t.Errorf("expected untouched body, got %q (%q)", rr.Body.String(), rr.Header().Get("Content-Encoding"))
	}
}

func TestCompress_NoContent(t *testing.T) {
	t.Parallel()

	h := Compress(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/stalls", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent || rr.Header().Get("Content-Encoding") != "" || rr.Body.Len() != 0 {
		t.Errorf("204 should not be compressed: code=%d encoding=%q len=%d",
			rr.Code, rr.Header().Get("Content-Encoding"), rr.Body.Len())
	}
}

// ============================================================================
// responseWriter Tests
// ============================================================================

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	_, _ = rw.Write([]byte("x"))
	rw.WriteHeader(http.StatusTeapot)

	if rw.statusCode != http.StatusOK {
		t.Errorf("status after implicit 200 should stay 200, got %d", rw.statusCode)
	}
	if rw.bytes != 1 {
		t.Errorf("expected 1 byte counted, got %d", rw.bytes)
	}
	if rw.Unwrap() != rr {
		t.Error("Unwrap should return the underlying writer")
	}
}

// ============================================================================
// Metrics Tests
// ============================================================================

func TestMetrics_LabelsByPattern(t *testing.T) {
	t.Parallel()

	var pattern string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/queries/{query}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	h := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r)
		pattern = r.Pattern
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/queries/5", nil))

	if rr.Code != http.StatusAccepted {
		t.Errorf("expected 202, got %d", rr.Code)
	}
	if pattern != "GET /api/queries/{query}" {
		t.Errorf("expected mux pattern to be visible, got %q", pattern)
	}
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/stylehub/storefront/pkg/logger"
)

func newTestLogger(w *bytes.Buffer) *slog.Logger {
	return logger.NewWithWriter("test-svc", "info", w)
}

// loggedRequest runs req through RequestLogger with a handler that emits one
// log line from the request-scoped logger, and returns the decoded line.
func loggedRequest(t *testing.T, req *http.Request) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	handler := RequestLogger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("handled")
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if buf.Len() == 0 {
		t.Fatal("expected log output")
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	return out
}

func TestRequestLogger_StoresLoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf)

	var ctxLogger *slog.Logger
	handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logger.FromContext(r.Context())
		ctxLogger.Info("handler log")
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cart", nil))

	if ctxLogger == nil {
		t.Fatal("expected non-nil logger from context")
	}
	if buf.Len() == 0 {
		t.Fatal("expected log output")
	}
}

func TestRequestLogger_IncludesCorrelationID(t *testing.T) {
	ctx := logger.WithCorrelationID(context.Background(), "corr-9f2c")
	req := httptest.NewRequest(http.MethodGet, "/cart", nil).WithContext(ctx)

	out := loggedRequest(t, req)
	if got := out["correlation_id"]; got != "corr-9f2c" {
		t.Errorf("correlation_id = %v, want %q", got, "corr-9f2c")
	}
}

func TestRequestLogger_IncludesUserIDFromHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	req.Header.Set("X-User-ID", "shopper-88")

	out := loggedRequest(t, req)
	if got := out["user_id"]; got != "shopper-88" {
		t.Errorf("user_id = %v, want %q", got, "shopper-88")
	}
}

func TestRequestLogger_IncludesTraceFields(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	req := httptest.NewRequest(http.MethodGet, "/products", nil).WithContext(ctx)

	out := loggedRequest(t, req)
	if got := out["trace_id"]; got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace_id = %v, want %q", got, "4bf92f3577b34da6a3ce929d0e0e4736")
	}
	if got := out["span_id"]; got != "00f067aa0ba902b7" {
		t.Errorf("span_id = %v, want %q", got, "00f067aa0ba902b7")
	}
}

func TestRequestLogger_NoUserID_OmitsField(t *testing.T) {
	out := loggedRequest(t, httptest.NewRequest(http.MethodGet, "/products", nil))
	if _, ok := out["user_id"]; ok {
		t.Error("user_id should not be present when not set")
	}
}

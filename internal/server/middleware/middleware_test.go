package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

func TestChain_Order(t *testing.T) {
	var calls []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(mark("m1"), mark("m2"), mark("m3"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls = append(calls, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"m1", "m2", "m3", "handler"}, calls)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/gradle/repo", nil))
		require.NotEmpty(t, seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/gradle/repo", nil)
		req.Header.Set(RequestIDHeader, "caller-id")
		handler.ServeHTTP(w, req)
		assert.Equal(t, "caller-id", seen)
		assert.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "report accepted", method: http.MethodPost, path: "/api/v1/gradle/my-service", status: http.StatusOK},
		{name: "bad report", method: http.MethodPost, path: "/api/v1/maven/my-service", status: http.StatusBadRequest},
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			var ctxLogger *zerolog.Logger
			handler := Chain(RequestID(), Logger(&logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = logging.FromContext(r.Context())
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotSame(t, logging.Default(), ctxLogger)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "HTTP request", entry["message"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.path, entry["path"])
			assert.InDelta(t, float64(tt.status), entry["status"], 0)
			assert.Equal(t, w.Header().Get(RequestIDHeader), entry["request_id"])
			assert.Contains(t, entry, "duration_ms")
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := Recovery(&logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/gradle/repo", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		Data  any `json:"data"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Data)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Contains(t, buf.String(), "Panic recovered")
}

func TestResponseWriter_CapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusBadGateway)

	assert.Equal(t, http.StatusBadGateway, rw.statusCode)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Same(t, rec, rw.Unwrap())
}

func TestResponseWriter_HijackUnsupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _, err := rw.Hijack()
	assert.Error(t, err)
}

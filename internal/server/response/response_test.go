package response

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]int{"created": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"created":2},"error":null}`, w.Body.String())
}

func TestFail(t *testing.T) {
	resp := Fail("BAD_REQUEST", "No body", "")
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":null,"error":{"code":"BAD_REQUEST","message":"No body"}}`, string(raw))
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "empty report",
			err:     errors.NewValidationError("body", "", "No body"),
			status:  http.StatusBadRequest,
			code:    "BAD_REQUEST",
			message: "No body",
		},
		{
			name:   "unreadable report",
			err:    errors.WrapParse("gradle", "report", fmt.Errorf("token too long")),
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
		{
			name:   "report too large",
			err:    errors.WrapParse("maven", "report", &http.MaxBytesError{Limit: 10 << 20}),
			status: http.StatusRequestEntityTooLarge,
			code:   "PAYLOAD_TOO_LARGE",
		},
		{
			name:   "search failed",
			err:    errors.WrapResource("search", "component", "guava", errors.NewAPIError("ardoq", 500, "boom")),
			status: http.StatusBadGateway,
			code:   "BAD_GATEWAY",
		},
		{
			name:   "remote unauthorized",
			err:    &errors.AuthenticationError{Service: "ardoq", Method: "token", Message: "rejected"},
			status: http.StatusBadGateway,
			code:   "BAD_GATEWAY",
		},
		{
			name:   "deadline",
			err:    fmt.Errorf("search: %w", context.DeadlineExceeded),
			status: http.StatusGatewayTimeout,
			code:   "GATEWAY_TIMEOUT",
		},
		{
			name:   "not found",
			err:    errors.NewNotFoundError("parser", "npm"),
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "unexpected",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error.Message)
			}
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	InternalError(w, errors.New("api key abc123 rejected"))
	assert.NotContains(t, w.Body.String(), "abc123")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "10 MiB", formatBytes(10<<20))
	assert.Equal(t, "64 KiB", formatBytes(64<<10))
	assert.Equal(t, "512 bytes", formatBytes(512))
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowed(w, http.MethodGet)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decode(t, w).Error.Details, "GET")
}

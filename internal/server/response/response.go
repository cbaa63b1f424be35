// Package response writes the JSON envelope used by every API endpoint:
// a data field on success and an error field on failure.
package response

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
)

// Response is the envelope of every API response.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes a failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success wraps data in an envelope.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail builds an error envelope.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes resp with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes data with status 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// MethodNotAllowed writes a 405 error.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(
		"METHOD_NOT_ALLOWED",
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	))
}

// PayloadTooLarge writes a 413 error.
func PayloadTooLarge(w http.ResponseWriter, limit int64) {
	JSON(w, http.StatusRequestEntityTooLarge, Fail(
		"PAYLOAD_TOO_LARGE",
		"Report too large",
		"Reports are limited to "+formatBytes(limit),
	))
}

// BadGateway writes a 502 error for a failure of the remote store.
func BadGateway(w http.ResponseWriter, details string) {
	JSON(w, http.StatusBadGateway, Fail("BAD_GATEWAY", "Remote store request failed", details))
}

// GatewayTimeout writes a 504 error.
func GatewayTimeout(w http.ResponseWriter, details string) {
	JSON(w, http.StatusGatewayTimeout, Fail("GATEWAY_TIMEOUT", "Remote store timed out", details))
}

// InternalError writes a 500 error without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ServiceUnavailable writes a 503 error.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail("SERVICE_UNAVAILABLE", "Service unavailable", message))
}

// ErrorFromType maps err onto a status code and writes the envelope.
// Report problems are the caller's fault; remote store failures are a bad gateway.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		maxBytes   *http.MaxBytesError
		validation *errors.ValidationError
		parseErr   *errors.ParseError
		resource   *errors.ResourceError
		authErr    *errors.AuthenticationError
	)

	switch {
	case errors.As(err, &maxBytes):
		PayloadTooLarge(w, maxBytes.Limit)
	case errors.As(err, &validation):
		BadRequest(w, validation.Message, err.Error())
	case errors.As(err, &parseErr):
		BadRequest(w, parseErr.Message, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.IsTimeout(err):
		GatewayTimeout(w, err.Error())
	case errors.As(err, &resource), errors.As(err, &authErr), errors.IsAPIError(err),
		errors.IsUnavailable(err), errors.IsPreconditionFailed(err), errors.IsRateLimited(err):
		BadGateway(w, err.Error())
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	default:
		InternalError(w, err)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit:
		return strconv.FormatInt(n/(unit*unit), 10) + " MiB"
	case n >= unit:
		return strconv.FormatInt(n/unit, 10) + " KiB"
	default:
		return strconv.FormatInt(n, 10) + " bytes"
	}
}

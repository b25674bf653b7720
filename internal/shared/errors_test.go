package shared

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func assertHTTPError(t *testing.T, err *echo.HTTPError, status int, code string) {
	t.Helper()

	if err.Code != status {
		t.Errorf("expected status %d, got %d", status, err.Code)
	}
	apiErr, ok := err.Message.(*APIError)
	if !ok {
		t.Fatal("expected message to be *APIError")
	}
	if apiErr.Code != code {
		t.Errorf("expected code '%s', got '%s'", code, apiErr.Code)
	}
}

func TestNewAPIError(t *testing.T) {
	err := NewAPIError("test_code", "test message")
	if err.Code != "test_code" {
		t.Errorf("expected code 'test_code', got '%s'", err.Code)
	}
	if err.Message != "test message" {
		t.Errorf("expected message 'test message', got '%s'", err.Message)
	}
	if err.Details != nil {
		t.Errorf("expected nil details, got %v", err.Details)
	}
}

func TestAPIError_ToHTTP(t *testing.T) {
	apiErr := NewAPIError("code", "message")
	httpErr := apiErr.ToHTTP(http.StatusBadRequest)

	assertHTTPError(t, httpErr, http.StatusBadRequest, "code")
}

func TestHTTPHelpers(t *testing.T) {
	tests := []struct {
		name   string
		err    *echo.HTTPError
		status int
		code   string
	}{
		{"bad request", BadRequest("bad", "bad request"), http.StatusBadRequest, "bad"},
		{"not found", NotFound("missing", "missing thing"), http.StatusNotFound, "missing"},
		{"internal", InternalError("boom", "exploded"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertHTTPError(t, tt.err, tt.status, tt.code)
		})
	}
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewBadRequestError_CustomCode(t *testing.T) {
	code := "TRIP_NOT_AVAILABLE"
	err := NewBadRequestError("Trip does not exist or has already started", true, &code, nil)

	if err.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", err.Status)
	}
	if err.Code != code {
		t.Errorf("code = %q, want %q", err.Code, code)
	}
	if err.Error() != "Trip does not exist or has already started" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestNewBadRequestError_DefaultCode(t *testing.T) {
	err := NewBadRequestError("bad", false, nil, []FieldError{{Field: "page", Error: "must be at least 1"}})

	if err.Code != "BAD_REQUEST" {
		t.Errorf("code = %q, want BAD_REQUEST", err.Code)
	}
	if len(err.Errors) != 1 || err.Errors[0].Field != "page" {
		t.Errorf("field errors = %+v", err.Errors)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Client not found", true, nil)
	if err.Status != http.StatusNotFound || err.Code != "NOT_FOUND" {
		t.Errorf("got %d %q, want 404 NOT_FOUND", err.Status, err.Code)
	}
}

func TestNewTooManyRequestsError(t *testing.T) {
	err := NewTooManyRequestsError("60s")
	if err.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", err.Status)
	}
	if err.Code != "TOO_MANY_REQUESTS" {
		t.Errorf("code = %q", err.Code)
	}
	if err.Message != "Too many requests, retry after 60s" {
		t.Errorf("message = %q", err.Message)
	}
}

func TestHTTPError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("assign: %w", NewNotFoundError("Client not found", true, nil))

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("errors.As did not find *HTTPError")
	}
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.Status)
	}
	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("errors.Is should match any *HTTPError")
	}
}

func TestWithMessage_DoesNotMutate(t *testing.T) {
	base := NewInternalServerError()
	copied := base.WithMessage("database unavailable")

	if base.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("base message mutated to %q", base.Message)
	}
	if copied.Message != "database unavailable" || copied.Status != base.Status {
		t.Errorf("copy = %+v", copied)
	}
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	if got := MakeUpperCaseWithUnderscores("Service Unavailable"); got != "SERVICE_UNAVAILABLE" {
		t.Errorf("got %q", got)
	}
}

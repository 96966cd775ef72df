package testutil

import (
	"errors"
	"testing"

	apperrors "guardrails/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertAppErrorIs checks that err carries the code, message and status of sentinel.
func AssertAppErrorIs(t *testing.T, err error, sentinel *apperrors.AppError) {
	t.Helper()

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError %q, got %T: %v", sentinel.Code, err, err)
	}
	if appErr.Code != sentinel.Code || appErr.Message != sentinel.Message || appErr.StatusCode != sentinel.StatusCode {
		t.Errorf("expected %s/%q/%d, got %s/%q/%d",
			sentinel.Code, sentinel.Message, sentinel.StatusCode,
			appErr.Code, appErr.Message, appErr.StatusCode)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

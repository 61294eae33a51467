package testutil

import (
	"errors"
	"testing"

	apperrors "finledger/internal/errors"
)

// appError unwraps err into an *AppError or fails the test.
func appError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatal("expected an AppError, got nil")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	appErr := appError(t, err)
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertFieldError checks that err is a VALIDATION_ERROR naming every given field.
func AssertFieldError(t *testing.T, err error, fields ...string) {
	t.Helper()

	appErr := appError(t, err)
	if appErr.Code != apperrors.ErrValidation.Code {
		t.Fatalf("expected %s, got %q (message: %s)", apperrors.ErrValidation.Code, appErr.Code, appErr.Message)
	}
	for _, field := range fields {
		if _, ok := appErr.Fields[field]; !ok {
			t.Errorf("expected a %q field error, got %v", field, appErr.Fields)
		}
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

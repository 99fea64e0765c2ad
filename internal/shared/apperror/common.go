package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrInvalidRange = New(
		CodeInvalidRange,
		"The provided date range is invalid",
		http.StatusUnprocessableEntity,
	)

	ErrConflict = New(
		CodeConflict,
		"The resource was modified concurrently",
		http.StatusConflict,
	)

	ErrStoreUnavailable = New(
		CodeStoreUnavailable,
		"The record store is unavailable",
		http.StatusServiceUnavailable,
	)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}

// StoreUnavailable wraps an infrastructure failure so callers can tell it
// apart from expected business outcomes.
func StoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if As(err, &appErr) {
		return err
	}
	return ErrStoreUnavailable.WithCause(err)
}

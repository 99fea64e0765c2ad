package apperror

import "net/http"

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP resolves any error into the envelope fields written by handlers.
// Errors outside the taxonomy are reported as an internal error without
// leaking their text.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return HTTPError{
			Status:  status,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}

// IsUnexpected reports whether err should be logged as an operational
// failure rather than an expected business outcome.
func IsUnexpected(err error) bool {
	var appErr *AppError
	if !As(err, &appErr) {
		return true
	}
	return appErr.Code == CodeStoreUnavailable || appErr.Code == CodeInternalError
}

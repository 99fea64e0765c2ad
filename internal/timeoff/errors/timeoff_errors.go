package timeofferrors

import (
	"net/http"

	"go-staffhub/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidRange,
		"start_date must be before or equal end_date",
		http.StatusUnprocessableEntity,
	)
	ErrRangeTooWide = apperror.New(
		apperror.CodeInvalidRange,
		"calendar range must not exceed one year",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be APPROVED or DENIED",
		http.StatusBadRequest,
	)
	ErrTimeOffNotFound = apperror.New(
		apperror.CodeNotFound,
		"time off request not found",
		http.StatusNotFound,
	)
	ErrNotAllowedToDecide = apperror.New(
		apperror.CodeForbidden,
		"only managers and admins can approve or deny time off",
		http.StatusForbidden,
	)
	ErrNotAllowedToDelete = apperror.New(
		apperror.CodeForbidden,
		"only the owner, a manager or an admin can delete this request",
		http.StatusForbidden,
	)
)

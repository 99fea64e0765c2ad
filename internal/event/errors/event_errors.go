package eventerrors

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
	ErrTitleRequired = apperror.New(
		apperror.CodeInvalidInput,
		"title is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date, expected yyyy-mm-dd",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidRange,
		"to must not be before from",
		http.StatusUnprocessableEntity,
	)
	ErrNothingToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"at least one field must be provided",
		http.StatusBadRequest,
	)
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"event not found",
		http.StatusNotFound,
	)
	ErrNotAllowedToManage = apperror.New(
		apperror.CodeForbidden,
		"only a manager or an admin can change events",
		http.StatusForbidden,
	)
)

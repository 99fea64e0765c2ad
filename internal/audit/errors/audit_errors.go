package auditerrors

import (
	"net/http"

	"go-staffhub/internal/shared/apperror"
)

var (
	ErrInvalidEvent = apperror.New(
		apperror.CodeInvalidInput,
		"lifecycle event is missing identifiers",
		http.StatusBadRequest,
	)
	ErrHistoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"no history for this time off request",
		http.StatusNotFound,
	)
	ErrNotAllowedToView = apperror.New(
		apperror.CodeForbidden,
		"only the owner, a manager or an admin can view this history",
		http.StatusForbidden,
	)
)

package orderrequesterrors

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
	ErrItemsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"at least one item is required",
		http.StatusBadRequest,
	)
	ErrOrderRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"order request not found",
		http.StatusNotFound,
	)
	ErrNotAllowedToMarkOrdered = apperror.New(
		apperror.CodeForbidden,
		"only a manager or an admin can mark a request as ordered",
		http.StatusForbidden,
	)
	ErrNotAllowedToDelete = apperror.New(
		apperror.CodeForbidden,
		"only the requester, a manager or an admin can remove this request",
		http.StatusForbidden,
	)
)

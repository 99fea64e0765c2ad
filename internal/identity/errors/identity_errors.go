package identityerrors

import (
	"go-staffhub/internal/shared/apperror"
	"net/http"
)

var (
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Token not found",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrMissingUserID = apperror.New(
		apperror.CodeUnauthorized,
		"User ID not found in token",
		http.StatusUnauthorized,
	)
)

package rsvperrors

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
	ErrEventIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"event_id is required",
		http.StatusBadRequest,
	)
	ErrAlreadyRsvped = apperror.New(
		apperror.CodeConflict,
		"user already has an rsvp for this event",
		http.StatusConflict,
	)
	ErrRsvpNotFound = apperror.New(
		apperror.CodeNotFound,
		"rsvp not found",
		http.StatusNotFound,
	)
	ErrNotAllowedToDelete = apperror.New(
		apperror.CodeForbidden,
		"only the owner, a manager or an admin can remove this rsvp",
		http.StatusForbidden,
	)
)

package timeentryerrors

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
	ErrInvalidSince = apperror.New(
		apperror.CodeInvalidInput,
		"invalid since date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeAlreadyClockedIn,
		"already clocked in",
		http.StatusConflict,
	)
	ErrNoOpenEntry = apperror.New(
		apperror.CodeNoOpenEntry,
		"no open time entry to clock out of",
		http.StatusConflict,
	)
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
)

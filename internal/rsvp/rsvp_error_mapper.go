package rsvp

import (
	"errors"

	rsvperrors "go-staffhub/internal/rsvp/errors"
	"go-staffhub/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rsvperrors.ErrRsvpNotFound
	}

	if apperror.IsUniqueViolation(err, EventUserIndex, eventUserColumns) {
		return rsvperrors.ErrAlreadyRsvped
	}

	return apperror.StoreUnavailable(err)
}

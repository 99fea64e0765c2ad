package timeentry

import (
	"errors"

	"go-staffhub/internal/shared/apperror"
	timeentryerrors "go-staffhub/internal/timeentry/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeentryerrors.ErrTimeEntryNotFound
	}

	if apperror.IsUniqueViolation(err, OpenEntryIndex, openEntryColumns) {
		return timeentryerrors.ErrAlreadyClockedIn
	}

	return apperror.StoreUnavailable(err)
}

package timeoff

import (
	"errors"

	"go-staffhub/internal/shared/apperror"
	timeofferrors "go-staffhub/internal/timeoff/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeofferrors.ErrTimeOffNotFound
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return apperror.StoreUnavailable(err)
}

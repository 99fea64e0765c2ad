package event

import (
	"errors"

	eventerrors "go-staffhub/internal/event/errors"
	"go-staffhub/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return eventerrors.ErrEventNotFound
	}

	return apperror.StoreUnavailable(err)
}

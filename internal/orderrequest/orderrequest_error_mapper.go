package orderrequest

import (
	"errors"

	orderrequesterrors "go-staffhub/internal/orderrequest/errors"
	"go-staffhub/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return orderrequesterrors.ErrOrderRequestNotFound
	}

	return apperror.StoreUnavailable(err)
}

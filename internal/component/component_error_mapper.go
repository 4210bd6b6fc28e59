package component

import (
	"errors"

	componenterrors "go-payroll/internal/component/errors"
	"go-payroll/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return componenterrors.ErrComponentNotFound
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.ErrInternal.Wrap(err)
}

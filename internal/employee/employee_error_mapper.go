package employee

import (
	"errors"

	employeeerrors "go-payroll/internal/employee/errors"

	"gorm.io/gorm"
)

// MapDirectoryError translates directory lookups into payroll-facing errors.
func MapDirectoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	return err
}

package payroll

import (
	"errors"
	"strings"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintEmployeePeriod = "uq_salary_slip_employee_period"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrSlipNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == constraintEmployeePeriod {
			return payrollerrors.ErrDuplicateSlip
		}
	}

	// TranslateError memetakan unique violation ke ErrDuplicatedKey. Reference
	// tidak bisa bentrok karena counter naik di tx yang sama.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return payrollerrors.ErrDuplicateSlip
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintEmployeePeriod) {
		return payrollerrors.ErrDuplicateSlip
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.ErrInternal.Wrap(err)
}

package componenterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"invalid component kind",
		http.StatusBadRequest,
	)
	ErrInvalidCalculationType = apperror.New(
		apperror.CodeInvalidInput,
		"calculation_type must be FIXED or PERCENTAGE",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"component amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrAmountRequired = apperror.New(
		apperror.CodeInvalidInput,
		"amount is required",
		http.StatusBadRequest,
	)
	ErrInvalidOvertime = apperror.New(
		apperror.CodeInvalidInput,
		"overtime requires days_count, hours_per_day and hourly_rate",
		http.StatusBadRequest,
	)
	ErrWindowRequired = apperror.New(
		apperror.CodeInvalidInput,
		"bonus and incentive components require window_start and window_end",
		http.StatusBadRequest,
	)
	ErrInvalidWindow = apperror.New(
		apperror.CodeInvalidInput,
		"window_end must be on or after window_start",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll component not found",
		http.StatusNotFound,
	)
)

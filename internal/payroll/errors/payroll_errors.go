package payrollerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary_period, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid status filter",
		http.StatusBadRequest,
	)
	ErrPaymentMethodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"payment_method is required",
		http.StatusBadRequest,
	)
	ErrSlipNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary slip not found",
		http.StatusNotFound,
	)
	ErrDuplicateSlip = apperror.New(
		apperror.CodeDuplicate,
		"salary slip already generated for this employee and period",
		http.StatusUnprocessableEntity,
	)
	ErrSlipAlreadyPaid = apperror.New(
		apperror.CodeConflict,
		"salary slip is already paid",
		http.StatusConflict,
	)
	ErrSlipNotPayable = apperror.New(
		apperror.CodeInvalidState,
		"only generated or sent salary slips can be paid",
		http.StatusConflict,
	)
	ErrDeletePaidSlip = apperror.New(
		apperror.CodeConflict,
		"paid salary slips cannot be deleted",
		http.StatusConflict,
	)
	ErrBulkRunInProgress = apperror.New(
		apperror.CodeConflict,
		"a bulk payroll run for this period is already in progress",
		http.StatusConflict,
	)
)

package advanceerrors

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
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"principal_amount and monthly_deduction must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDeductionAmount = apperror.New(
		apperror.CodeInvalidInput,
		"deduction amount cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrStartBeforeIssue = apperror.New(
		apperror.CodeInvalidInput,
		"start_deduction_date cannot be before issue_date",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary advance status filter",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrAdvanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary advance not found",
		http.StatusNotFound,
	)
	ErrAdvanceNotActive = apperror.New(
		apperror.CodeConflict,
		"salary advance is not active",
		http.StatusConflict,
	)
	ErrAdvanceAlreadyPosted = apperror.New(
		apperror.CodeConflict,
		"deduction already posted for this salary slip",
		http.StatusConflict,
	)
	ErrCancelOnlyActive = apperror.New(
		apperror.CodeConflict,
		"only active salary advances can be cancelled",
		http.StatusConflict,
	)
)

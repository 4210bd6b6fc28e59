package taxerrors

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
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"tax amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"percentage must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidSlabRange = apperror.New(
		apperror.CodeInvalidInput,
		"income_to must be greater than or equal to income_from",
		http.StatusBadRequest,
	)
	ErrSlabNotFound = apperror.New(
		apperror.CodeNotFound,
		"tax slab not found",
		http.StatusNotFound,
	)
	ErrExemptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"tax exemption not found",
		http.StatusNotFound,
	)
	ErrMinimumLimitNotFound = apperror.New(
		apperror.CodeNotFound,
		"no active minimum tax limit",
		http.StatusNotFound,
	)
)

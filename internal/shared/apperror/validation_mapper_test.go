package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	SalaryPeriod string `json:"salary_period" binding:"required"`
}

func bindJSON(body string) error {
	var req sampleRequest
	return binding.JSON.BindBody([]byte(body), &req)
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()

	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantDetails int
	}{
		{name: "missing field", body: `{"employee_id":"8f0c7a8e-1111-4c1e-9d2a-111111111111"}`, wantMessage: "Salary Period is required", wantDetails: 1},
		{name: "bad uuid", body: `{"employee_id":"x","salary_period":"2026-03"}`, wantMessage: "Employee Id must be a valid UUID", wantDetails: 1},
		{name: "every violation in details", body: `{}`, wantMessage: "Employee Id is required", wantDetails: 2},
		{name: "malformed json", body: `{"employee_id":`, wantMessage: "Request body is not valid JSON"},
		{name: "wrong type", body: `{"employee_id":1,"salary_period":"2026-03"}`, wantMessage: "Employee Id is invalid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := apperror.MapValidationError(bindJSON(tc.body))

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, tc.wantMessage, appErr.Message)

			if tc.wantDetails > 0 {
				details, ok := appErr.Details.([]apperror.FieldError)
				require.True(t, ok)
				assert.Len(t, details, tc.wantDetails)
			}
		})
	}
}

func TestAppError_WrapKeepsSentinel(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.ErrInternal.Wrap(cause)

	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.ErrorIs(t, err, cause)

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Nil(t, httpErr.Details)
}

func TestToHTTP_UnknownError(t *testing.T) {
	httpErr := apperror.ToHTTP(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
}

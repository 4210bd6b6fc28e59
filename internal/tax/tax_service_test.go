package tax_test

import (
	"context"
	"testing"

	"go-payroll/internal/tax"
	taxerrors "go-payroll/internal/tax/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaxService_Validation(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	// Validation fails before any repository call or transaction.
	svc := tax.NewService(db, nil)

	neg := dec("-1")
	below := dec("100")

	tests := []struct {
		name string
		req  tax.SlabRequest
		want error
	}{
		{"negative income_from", tax.SlabRequest{IncomeFrom: neg, Percentage: dec("5")}, taxerrors.ErrNegativeAmount},
		{"negative fixed", tax.SlabRequest{FixedAmount: neg}, taxerrors.ErrNegativeAmount},
		{"percentage above 100", tax.SlabRequest{Percentage: dec("100.01")}, taxerrors.ErrInvalidPercentage},
		{"negative percentage", tax.SlabRequest{Percentage: neg}, taxerrors.ErrInvalidPercentage},
		{"income_to below income_from", tax.SlabRequest{IncomeFrom: dec("200"), IncomeTo: &below}, taxerrors.ErrInvalidSlabRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSlab(ctx, companyID, tc.req)
			assert.ErrorIs(t, err, tc.want)

			_, err = svc.UpdateSlab(ctx, companyID, uuid.NewString(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("invalid company id", func(t *testing.T) {
		_, err := svc.CreateSlab(ctx, "not-a-uuid", tax.SlabRequest{})
		assert.ErrorIs(t, err, taxerrors.ErrInvalidCompanyID)
	})

	t.Run("negative exemption", func(t *testing.T) {
		_, err := svc.CreateExemption(ctx, companyID, tax.CreateExemptionRequest{Title: "x", Amount: neg})
		assert.ErrorIs(t, err, taxerrors.ErrNegativeAmount)
	})

	t.Run("negative minimum limit", func(t *testing.T) {
		_, err := svc.SetMinimumLimit(ctx, companyID, tax.SetMinimumLimitRequest{Threshold: neg})
		assert.ErrorIs(t, err, taxerrors.ErrNegativeAmount)
	})

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

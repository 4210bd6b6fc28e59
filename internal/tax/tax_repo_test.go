package tax_test

import (
	"context"
	"testing"

	"go-payroll/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&tax.TaxSlab{}, &tax.TaxExemption{}, &tax.MinimumTaxLimit{}))
	return db
}

func TestRepository_FindSlabForIncome(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := tax.NewRepository(db)

	companyID := uuid.New()
	other := uuid.New()

	mk := func(company uuid.UUID, from, to string, active bool) *tax.TaxSlab {
		s := slab(from, to, "0", "5")
		s.CompanyID = company
		s.IsActive = active
		require.NoError(t, repo.CreateSlab(ctx, s))
		return s
	}

	low := mk(companyID, "0", "10000", true)
	mid := mk(companyID, "10000.01", "50000", true)
	overlap := mk(companyID, "30000", "60000", true)
	top := mk(companyID, "60000.01", "", true)
	mk(companyID, "0", "", false)
	mk(other, "0", "", true)

	cases := []struct {
		name   string
		income string
		want   *tax.TaxSlab
	}{
		{"lower bound inclusive", "0", low},
		{"upper bound inclusive", "10000", low},
		{"middle bracket", "20000", mid},
		{"overlap picks highest income_from", "40000", overlap},
		{"open top bracket", "9999999", top},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.FindSlabForIncome(ctx, companyID.String(), dec(tc.income))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want.ID, got.ID)
		})
	}

	t.Run("gap returns nil", func(t *testing.T) {
		got, err := repo.FindSlabForIncome(ctx, companyID.String(), dec("10000.005"))
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRepository_ExemptionsAndMinimumLimit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := tax.NewRepository(db)
	companyID := uuid.New()

	for _, e := range []struct {
		amount string
		active bool
	}{{"1000", true}, {"2500.50", true}, {"9999", false}} {
		require.NoError(t, repo.CreateExemption(ctx, &tax.TaxExemption{
			ID:        uuid.New(),
			CompanyID: companyID,
			Title:     "exemption",
			Amount:    dec(e.amount),
			IsActive:  e.active,
		}))
	}

	sum, err := repo.SumActiveExemptions(ctx, companyID.String())
	require.NoError(t, err)
	assert.Equal(t, "3500.50", sum.StringFixed(2))

	limit, err := repo.FindActiveMinimumLimit(ctx, companyID.String())
	require.NoError(t, err)
	assert.Nil(t, limit)

	err = repo.DeleteSlab(ctx, companyID.String(), uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestService_SetMinimumLimit_ReplacesActive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	repo := tax.NewRepository(db)
	svc := tax.NewService(sqlDB, repo)
	companyID := uuid.NewString()

	_, err = svc.SetMinimumLimit(ctx, companyID, tax.SetMinimumLimitRequest{Threshold: dec("25000")})
	require.NoError(t, err)
	second, err := svc.SetMinimumLimit(ctx, companyID, tax.SetMinimumLimitRequest{Threshold: dec("30000")})
	require.NoError(t, err)

	current, err := svc.GetMinimumLimit(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, "30000.00", current.Threshold.StringFixed(2))

	var active int64
	require.NoError(t, db.Model(&tax.MinimumTaxLimit{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestService_SlabLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	svc := tax.NewService(sqlDB, tax.NewRepository(db))
	companyID := uuid.NewString()

	upper := decimal.NewFromInt(50000)
	created, err := svc.CreateSlab(ctx, companyID, tax.SlabRequest{
		IncomeFrom:  decimal.Zero,
		IncomeTo:    &upper,
		FixedAmount: decimal.Zero,
		Percentage:  dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	updated, err := svc.UpdateSlab(ctx, companyID, created.ID, tax.SlabRequest{
		IncomeFrom:  decimal.Zero,
		FixedAmount: dec("100"),
		Percentage:  dec("7.5"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.IncomeTo)
	assert.Equal(t, "7.50", updated.Percentage.StringFixed(2))

	slabs, err := svc.GetSlabs(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, slabs, 1)

	require.NoError(t, svc.DeleteSlab(ctx, companyID, created.ID))
	slabs, err = svc.GetSlabs(ctx, companyID)
	require.NoError(t, err)
	assert.Empty(t, slabs)
}

package component_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/component"
	componenterrors "go-payroll/internal/component/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStore struct {
	componentsForFn func(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]component.Component, error)
	createFn        func(ctx context.Context, c *component.Component) error
	findAllFn       func(ctx context.Context, companyID string, filter component.QueryFilter) ([]component.Component, error)
	findByIDFn      func(ctx context.Context, companyID, id string) (*component.Component, error)
	updateFn        func(ctx context.Context, c *component.Component) error
	deleteFn        func(ctx context.Context, companyID, id string) error
	belongsFn       func(ctx context.Context, companyID, employeeID string) (bool, error)
}

func (f *fakeStore) WithTx(tx *sql.Tx) component.Store { return f }

func (f *fakeStore) ComponentsFor(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]component.Component, error) {
	if f.componentsForFn != nil {
		return f.componentsForFn(ctx, companyID, employeeID, periodStart, periodEnd)
	}
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, c *component.Component) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeStore) FindAll(ctx context.Context, companyID string, filter component.QueryFilter) ([]component.Component, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeStore) FindByID(ctx context.Context, companyID, id string) (*component.Component, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) Update(ctx context.Context, c *component.Component) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeStore) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.belongsFn != nil {
		return f.belongsFn(ctx, companyID, employeeID)
	}
	return true, nil
}

type componentServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service component.Service
	store   *fakeStore
}

func setupComponentServiceTest(t *testing.T) *componentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	store := &fakeStore{}
	return &componentServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: component.NewService(db, store),
		store:   store,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func strPtr(v string) *string { return &v }

func TestComponentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("percentage incentive", func(t *testing.T) {
		deps := setupComponentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var created *component.Component
		deps.store.createFn = func(ctx context.Context, c *component.Component) error {
			created = c
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, component.CreateComponentRequest{
			EmployeeID:      employeeID,
			Kind:            "INCENTIVE",
			Title:           "Sales incentive",
			CalculationType: component.CalculationPercentage,
			Amount:          decPtr("10"),
			WindowStart:     strPtr("2026-03-01"),
			WindowEnd:       strPtr("2026-03-31"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "INCENTIVE", resp.Kind)
		assert.Equal(t, "2026-03-01", *resp.WindowStart)
		assert.True(t, created.IsActive)
		assert.Equal(t, actorID, created.CreatedBy.String())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overtime ignores calculation type", func(t *testing.T) {
		deps := setupComponentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, companyID, actorID, component.CreateComponentRequest{
			EmployeeID:  employeeID,
			Kind:        "OVERTIME",
			Title:       "Weekend overtime",
			DaysCount:   decPtr("2"),
			HoursPerDay: decPtr("4"),
			HourlyRate:  decPtr("30000"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "2", *resp.DaysCount)
		assert.Empty(t, resp.CalculationType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employee outside company", func(t *testing.T) {
		deps := setupComponentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.store.belongsFn = func(ctx context.Context, companyID, employeeID string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, component.CreateComponentRequest{
			EmployeeID:      employeeID,
			Kind:            "BENEFIT",
			Title:           "Transport",
			CalculationType: component.CalculationFixed,
			Amount:          decPtr("2000"),
		})

		assert.ErrorIs(t, err, componenterrors.ErrEmployeeNotInCompany)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestComponentService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	tests := []struct {
		name string
		req  component.CreateComponentRequest
		want error
	}{
		{
			name: "unknown kind",
			req:  component.CreateComponentRequest{EmployeeID: employeeID, Kind: "ALLOWANCE", CalculationType: "FIXED", Amount: decPtr("1")},
			want: componenterrors.ErrInvalidKind,
		},
		{
			name: "unknown calculation type",
			req:  component.CreateComponentRequest{EmployeeID: employeeID, Kind: "BENEFIT", CalculationType: "HOURLY", Amount: decPtr("1")},
			want: componenterrors.ErrInvalidCalculationType,
		},
		{
			name: "negative amount",
			req:  component.CreateComponentRequest{EmployeeID: employeeID, Kind: "RECURRING_DEDUCTION", CalculationType: "FIXED", Amount: decPtr("-5")},
			want: componenterrors.ErrNegativeAmount,
		},
		{
			name: "missing amount",
			req:  component.CreateComponentRequest{EmployeeID: employeeID, Kind: "BENEFIT", CalculationType: "FIXED"},
			want: componenterrors.ErrAmountRequired,
		},
		{
			name: "bonus without window",
			req:  component.CreateComponentRequest{EmployeeID: employeeID, Kind: "BONUS", CalculationType: "FIXED", Amount: decPtr("100")},
			want: componenterrors.ErrWindowRequired,
		},
		{
			name: "window end before start",
			req: component.CreateComponentRequest{EmployeeID: employeeID, Kind: "BENEFIT", CalculationType: "FIXED", Amount: decPtr("100"),
				WindowStart: strPtr("2026-03-31"), WindowEnd: strPtr("2026-03-01")},
			want: componenterrors.ErrInvalidWindow,
		},
		{
			name: "malformed date",
			req: component.CreateComponentRequest{EmployeeID: employeeID, Kind: "BENEFIT", CalculationType: "FIXED", Amount: decPtr("100"),
				WindowStart: strPtr("03/01/2026")},
			want: componenterrors.ErrInvalidDateFormat,
		},
		{
			name: "overtime missing factors",
			req:  component.CreateComponentRequest{EmployeeID: employeeID, Kind: "OVERTIME", DaysCount: decPtr("2")},
			want: componenterrors.ErrInvalidOvertime,
		},
		{
			name: "malformed employee id",
			req:  component.CreateComponentRequest{EmployeeID: "emp-1", Kind: "BENEFIT", CalculationType: "FIXED", Amount: decPtr("1")},
			want: componenterrors.ErrInvalidEmployeeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupComponentServiceTest(t)
			defer deps.db.Close()

			_, err := deps.service.Create(ctx, companyID, "", tt.req)

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestComponentService_GetByID_NotFound(t *testing.T) {
	deps := setupComponentServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(context.Background(), uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, componenterrors.ErrComponentNotFound)
}

func TestComponentService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()

	deps := setupComponentServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.store.findByIDFn = func(ctx context.Context, cid, cidID string) (*component.Component, error) {
		return &component.Component{
			ID:              id,
			CompanyID:       uuid.MustParse(companyID),
			Kind:            component.KindBenefit,
			Title:           "Transport",
			CalculationType: component.CalculationFixed,
			Amount:          decimal.RequireFromString("1500"),
			IsActive:        true,
		}, nil
	}
	deps.store.updateFn = func(ctx context.Context, c *component.Component) error {
		assert.Equal(t, "2000.00", c.Amount.StringFixed(2))
		assert.False(t, c.IsActive)
		return nil
	}
	inactive := false

	resp, err := deps.service.Update(ctx, companyID, id.String(), component.UpdateComponentRequest{
		Title:           "Transport",
		CalculationType: component.CalculationFixed,
		Amount:          decPtr("2000"),
		IsActive:        &inactive,
	})

	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestComponentService_Delete_NotFound(t *testing.T) {
	deps := setupComponentServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	deps.store.deleteFn = func(ctx context.Context, companyID, id string) error {
		return gorm.ErrRecordNotFound
	}

	err := deps.service.Delete(context.Background(), uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, componenterrors.ErrComponentNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

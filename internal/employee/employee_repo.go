package employee

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Directory interface {
	WithTx(tx *sql.Tx) Directory
	// FindProfile returns gorm.ErrRecordNotFound when the employee does not
	// exist in the company or has been removed.
	FindProfile(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Profile, error)
	ListActiveIDs(ctx context.Context, companyID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewDirectory(db *gorm.DB) Directory {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Directory {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

type profileRow struct {
	ID               string
	FullName         string
	EmploymentStatus string
	BaseSalary       decimal.NullDecimal
}

func (r *repository) FindProfile(ctx context.Context, companyID, employeeID string, asOf time.Time) (*Profile, error) {
	salary := r.conn(ctx).
		Model(&Salary{}).
		Select("base_salary").
		Where("employee_salaries.employee_id = employees.id").
		Where("employee_salaries.effective_date <= ?", asOf).
		Order("employee_salaries.effective_date DESC").
		Limit(1)

	var row profileRow
	err := r.conn(ctx).
		Model(&Employee{}).
		Select("employees.id, employees.full_name, employees.employment_status, (?) AS base_salary", salary).
		Scopes(tenant.Scope(companyID)).
		Where("employees.id = ?", employeeID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:         id,
		FullName:   row.FullName,
		BaseSalary: decimal.Zero,
		IsActive:   IsActiveStatus(row.EmploymentStatus),
	}
	if row.BaseSalary.Valid {
		profile.BaseSalary = row.BaseSalary.Decimal
	}
	return profile, nil
}

func (r *repository) ListActiveIDs(ctx context.Context, companyID string) ([]string, error) {
	var ids []string
	err := r.conn(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("employment_status NOT IN ?", inactiveStatuses).
		Order("employee_number ASC, id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

package advance

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QueryFilter struct {
	EmployeeID string
	Status     string
}

//go:generate mockgen -source=advance_repo.go -destination=mock/advance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *SalaryAdvance) error
	FindAll(ctx context.Context, companyID string, filter QueryFilter) ([]SalaryAdvance, error)
	FindByID(ctx context.Context, companyID, id string) (*SalaryAdvance, error)
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*SalaryAdvance, error)
	FindReady(ctx context.Context, companyID, employeeID string, asOf time.Time) ([]SalaryAdvance, error)
	Update(ctx context.Context, a *SalaryAdvance) error
	HasPosting(ctx context.Context, advanceID, slipID string) (bool, error)
	CreatePosting(ctx context.Context, p *AdvancePosting) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, a *SalaryAdvance) error {
	return r.conn(ctx).Omit("Postings").Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter QueryFilter) ([]SalaryAdvance, error) {
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var advances []SalaryAdvance
	err := db.Order("issue_date DESC").Find(&advances).Error
	return advances, err
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*SalaryAdvance, error) {
	var a SalaryAdvance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Postings", func(db *gorm.DB) *gorm.DB {
			return db.Order("posted_at ASC")
		}).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*SalaryAdvance, error) {
	var a SalaryAdvance
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindReady(ctx context.Context, companyID, employeeID string, asOf time.Time) ([]SalaryAdvance, error) {
	var advances []SalaryAdvance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Where("start_deduction_date <= ?", asOf).
		Where("remaining_balance > 0").
		Order("start_deduction_date ASC, created_at ASC").
		Find(&advances).Error
	return advances, err
}

func (r *repository) Update(ctx context.Context, a *SalaryAdvance) error {
	return r.conn(ctx).Omit("Postings").Save(a).Error
}

func (r *repository) HasPosting(ctx context.Context, advanceID, slipID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&AdvancePosting{}).
		Where("advance_id = ? AND salary_slip_id = ?", advanceID, slipID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreatePosting(ctx context.Context, p *AdvancePosting) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

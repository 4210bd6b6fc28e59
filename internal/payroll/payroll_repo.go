package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueryFilter struct {
	EmployeeID   string
	SalaryPeriod string
	Status       string
}

// PaymentUpdate is written by the paid transition.
type PaymentUpdate struct {
	PaidAt           time.Time
	PaidBy           uuid.UUID
	PaymentMethod    string
	PaymentReference *string
	PaymentNotes     *string
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slip *SalarySlip) error
	ExistsForPeriod(ctx context.Context, companyID, employeeID, period string) (bool, error)
	FindAll(ctx context.Context, companyID string, filter QueryFilter) ([]SalarySlip, error)
	FindByID(ctx context.Context, companyID, id string) (*SalarySlip, error)
	// MarkPaid only moves a slip whose status is one of fromStatuses and
	// reports whether it did.
	MarkPaid(ctx context.Context, companyID, id string, fromStatuses []string, payment PaymentUpdate) (bool, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
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

func (r *repository) Create(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).Create(slip).Error
}

func (r *repository) ExistsForPeriod(ctx context.Context, companyID, employeeID, period string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&SalarySlip{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND salary_period = ?", employeeID, period).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter QueryFilter) ([]SalarySlip, error) {
	var slips []SalarySlip
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.SalaryPeriod != "" {
		db = db.Where("salary_period = ?", filter.SalaryPeriod)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	err := db.
		Order("salary_period DESC").
		Order("slip_reference ASC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) MarkPaid(
	ctx context.Context,
	companyID, id string,
	fromStatuses []string,
	payment PaymentUpdate,
) (bool, error) {
	res := r.conn(ctx).
		Model(&SalarySlip{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("status IN ?", fromStatuses).
		Updates(map[string]any{
			"status":            StatusPaid,
			"paid_at":           payment.PaidAt,
			"paid_by":           payment.PaidBy,
			"payment_method":    payment.PaymentMethod,
			"payment_reference": payment.PaymentReference,
			"payment_notes":     payment.PaymentNotes,
			"updated_at":        payment.PaidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status <> ?", StatusPaid).
		Delete(&SalarySlip{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

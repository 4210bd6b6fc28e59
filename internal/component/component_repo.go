package component

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/tenant"

	"gorm.io/gorm"
)

type QueryFilter struct {
	EmployeeID string
	Kind       string
}

// Store reads and maintains payroll components.
type Store interface {
	WithTx(tx *sql.Tx) Store
	// ComponentsFor returns the active components whose window overlaps the period.
	ComponentsFor(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]Component, error)
	Create(ctx context.Context, c *Component) error
	FindAll(ctx context.Context, companyID string, filter QueryFilter) ([]Component, error)
	FindByID(ctx context.Context, companyID, id string) (*Component, error)
	Update(ctx context.Context, c *Component) error
	Delete(ctx context.Context, companyID, id string) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

type store struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) WithTx(tx *sql.Tx) Store {
	return &store{db: s.db, tx: tx}
}

func (s *store) conn(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if s.tx != nil {
		db.Statement.ConnPool = s.tx
	}
	return db
}

func (s *store) ComponentsFor(
	ctx context.Context,
	companyID, employeeID string,
	periodStart, periodEnd time.Time,
) ([]Component, error) {
	var components []Component
	err := s.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("is_active = ?", true).
		Where("(window_start IS NULL OR window_start <= ?)", periodEnd).
		Where("(window_end IS NULL OR window_end >= ?)", periodStart).
		Order("kind ASC, created_at ASC").
		Find(&components).Error
	return components, err
}

func (s *store) Create(ctx context.Context, c *Component) error {
	return s.conn(ctx).Create(c).Error
}

func (s *store) FindAll(ctx context.Context, companyID string, filter QueryFilter) ([]Component, error) {
	db := s.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Kind != "" {
		db = db.Where("kind = ?", filter.Kind)
	}

	var components []Component
	err := db.Order("created_at DESC").Find(&components).Error
	return components, err
}

func (s *store) FindByID(ctx context.Context, companyID, id string) (*Component, error) {
	var c Component
	err := s.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (s *store) Update(ctx context.Context, c *Component) error {
	return s.conn(ctx).Save(c).Error
}

func (s *store) Delete(ctx context.Context, companyID, id string) error {
	res := s.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Component{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *store) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := s.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

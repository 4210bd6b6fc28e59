package tax

import (
	"context"
	"database/sql"
	"errors"

	"go-payroll/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tax_repo.go -destination=mock/tax_repo_mock.go -package=mock
type Repository interface {
	ConfigReader
	WithTx(tx *sql.Tx) Repository

	CreateSlab(ctx context.Context, slab *TaxSlab) error
	FindSlabs(ctx context.Context, companyID string) ([]TaxSlab, error)
	FindSlabByID(ctx context.Context, companyID, id string) (*TaxSlab, error)
	UpdateSlab(ctx context.Context, slab *TaxSlab) error
	DeleteSlab(ctx context.Context, companyID, id string) error

	CreateExemption(ctx context.Context, exemption *TaxExemption) error
	FindExemptions(ctx context.Context, companyID string) ([]TaxExemption, error)
	DeleteExemption(ctx context.Context, companyID, id string) error

	DeactivateMinimumLimits(ctx context.Context, companyID string) error
	CreateMinimumLimit(ctx context.Context, limit *MinimumTaxLimit) error
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

func (r *repository) FindActiveMinimumLimit(ctx context.Context, companyID string) (*MinimumTaxLimit, error) {
	var limit MinimumTaxLimit
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&limit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

func (r *repository) SumActiveExemptions(ctx context.Context, companyID string) (decimal.Decimal, error) {
	var exemptions []TaxExemption
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Find(&exemptions).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range exemptions {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (r *repository) FindSlabForIncome(ctx context.Context, companyID string, income decimal.Decimal) (*TaxSlab, error) {
	var slab TaxSlab
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Where("income_from <= ?", income).
		Where("(income_to IS NULL OR income_to >= ?)", income).
		Order("income_from DESC").
		First(&slab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slab, nil
}

func (r *repository) CreateSlab(ctx context.Context, slab *TaxSlab) error {
	return r.conn(ctx).Create(slab).Error
}

func (r *repository) FindSlabs(ctx context.Context, companyID string) ([]TaxSlab, error) {
	var slabs []TaxSlab
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("income_from ASC").
		Find(&slabs).Error
	return slabs, err
}

func (r *repository) FindSlabByID(ctx context.Context, companyID, id string) (*TaxSlab, error) {
	var slab TaxSlab
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&slab, "id = ?", id).Error
	return &slab, err
}

func (r *repository) UpdateSlab(ctx context.Context, slab *TaxSlab) error {
	return r.conn(ctx).Save(slab).Error
}

func (r *repository) DeleteSlab(ctx context.Context, companyID, id string) error {
	return deleteScoped(r.conn(ctx), companyID, id, &TaxSlab{})
}

func (r *repository) CreateExemption(ctx context.Context, exemption *TaxExemption) error {
	return r.conn(ctx).Create(exemption).Error
}

func (r *repository) FindExemptions(ctx context.Context, companyID string) ([]TaxExemption, error) {
	var exemptions []TaxExemption
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&exemptions).Error
	return exemptions, err
}

func (r *repository) DeleteExemption(ctx context.Context, companyID, id string) error {
	return deleteScoped(r.conn(ctx), companyID, id, &TaxExemption{})
}

func (r *repository) DeactivateMinimumLimits(ctx context.Context, companyID string) error {
	return r.conn(ctx).
		Model(&MinimumTaxLimit{}).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *repository) CreateMinimumLimit(ctx context.Context, limit *MinimumTaxLimit) error {
	return r.conn(ctx).Create(limit).Error
}

func deleteScoped(db *gorm.DB, companyID, id string, model any) error {
	res := db.Scopes(tenant.Scope(companyID)).Delete(model, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package tax

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxSlab is one bracket of the progressive schedule. A null IncomeTo marks
// the open top bracket.
type TaxSlab struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID           `gorm:"type:uuid;not null;index:idx_tax_slab_company_active"`
	IncomeFrom  decimal.Decimal     `gorm:"type:numeric(18,2);not null"`
	IncomeTo    decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	FixedAmount decimal.Decimal     `gorm:"type:numeric(18,2);not null"`
	Percentage  decimal.Decimal     `gorm:"type:numeric(9,4);not null"`
	IsActive    bool                `gorm:"not null;index:idx_tax_slab_company_active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TaxSlab) TableName() string {
	return "tax_slabs"
}

// Covers reports whether income falls inside the bracket, bounds included.
func (s TaxSlab) Covers(income decimal.Decimal) bool {
	if income.LessThan(s.IncomeFrom) {
		return false
	}
	return !s.IncomeTo.Valid || income.LessThanOrEqual(s.IncomeTo.Decimal)
}

type TaxExemption struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(150);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	IsActive  bool            `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TaxExemption) TableName() string {
	return "tax_exemptions"
}

// MinimumTaxLimit is the taxable floor. At most one row per company is active.
type MinimumTaxLimit struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Threshold decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	IsActive  bool            `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MinimumTaxLimit) TableName() string {
	return "minimum_tax_limits"
}

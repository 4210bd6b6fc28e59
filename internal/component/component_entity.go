package component

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindBenefit              Kind = "BENEFIT"
	KindIncentive            Kind = "INCENTIVE"
	KindBonus                Kind = "BONUS"
	KindOvertime             Kind = "OVERTIME"
	KindEmployerContribution Kind = "EMPLOYER_CONTRIBUTION"
	KindRecurringDeduction   Kind = "RECURRING_DEDUCTION"
)

// Kinds lists every component family in the order they appear on a slip.
var Kinds = []Kind{
	KindBenefit,
	KindIncentive,
	KindBonus,
	KindOvertime,
	KindEmployerContribution,
	KindRecurringDeduction,
}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// RequiresWindow reports whether the kind is only payable inside its period window.
func (k Kind) RequiresWindow() bool {
	return k == KindBonus || k == KindIncentive
}

const (
	CalculationFixed      = "FIXED"
	CalculationPercentage = "PERCENTAGE"
)

// Component is one compensation or deduction source attached to an employee.
// Overtime rows carry their own factors and ignore CalculationType/Amount.
type Component struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_component_employee"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_component_employee"`
	Kind            Kind            `gorm:"type:varchar(32);not null;index"`
	Title           string          `gorm:"type:varchar(150);not null"`
	Description     *string         `gorm:"type:text"`
	CalculationType string          `gorm:"type:varchar(16);not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,4);not null"`

	DaysCount   decimal.Decimal `gorm:"type:numeric(9,2);not null"`
	HoursPerDay decimal.Decimal `gorm:"type:numeric(9,2);not null"`
	HourlyRate  decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	// Periode berlaku; nil berarti tanpa batas.
	WindowStart *time.Time `gorm:"type:date"`
	WindowEnd   *time.Time `gorm:"type:date"`

	IsActive  bool      `gorm:"not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Component) TableName() string {
	return "payroll_components"
}

// Overlaps reports whether the component window intersects [start, end].
func (c Component) Overlaps(start, end time.Time) bool {
	if c.WindowStart != nil && c.WindowStart.After(end) {
		return false
	}
	if c.WindowEnd != nil && c.WindowEnd.Before(start) {
		return false
	}
	return true
}

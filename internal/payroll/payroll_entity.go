package payroll

import (
	"time"

	"go-payroll/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StatusDraft     = "DRAFT"
	StatusGenerated = "GENERATED"
	StatusSent      = "SENT"
	StatusPaid      = "PAID"
)

var payableStatuses = []string{StatusGenerated, StatusSent}

func validStatus(v string) bool {
	switch v {
	case StatusDraft, StatusGenerated, StatusSent, StatusPaid:
		return true
	}
	return false
}

// SalarySlip is the immutable pay record of one employee for one period.
// Breakdown lines are snapshots; the slip never re-reads its sources.
type SalarySlip struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_salary_slip_company_status;uniqueIndex:uq_salary_slip_reference"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_slip_employee_period"`
	SlipReference string    `gorm:"type:varchar(32);not null;uniqueIndex:uq_salary_slip_reference"`
	SalaryPeriod  string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_salary_slip_employee_period"`

	BasicSalary decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	Benefits      datatypes.JSONSlice[BreakdownLine] `gorm:"not null"`
	Incentives    datatypes.JSONSlice[BreakdownLine] `gorm:"not null"`
	Bonuses       datatypes.JSONSlice[BreakdownLine] `gorm:"not null"`
	Overtime      datatypes.JSONSlice[BreakdownLine] `gorm:"not null"`
	Contributions datatypes.JSONSlice[BreakdownLine] `gorm:"not null"`
	Deductions    datatypes.JSONSlice[BreakdownLine] `gorm:"not null"`
	Advances      datatypes.JSONSlice[BreakdownLine] `gorm:"not null"`
	TaxBreakdown  datatypes.JSONType[TaxDetail]      `gorm:"not null"`

	TaxAmount       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalEarnings   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	NetPayable      decimal.Decimal `gorm:"type:numeric(18,2);not null"`

	Status      string    `gorm:"type:varchar(16);not null;index:idx_salary_slip_company_status"`
	GeneratedAt time.Time `gorm:"not null"`
	GeneratedBy uuid.UUID `gorm:"type:uuid"`

	PaidAt           *time.Time `gorm:"index"`
	PaidBy           *uuid.UUID `gorm:"type:uuid"`
	PaymentMethod    *string    `gorm:"type:varchar(50)"`
	PaymentReference *string    `gorm:"type:varchar(100)"`
	PaymentNotes     *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalarySlip) TableName() string {
	return "salary_slips"
}

// BreakdownLine carries what is needed to recompute one amount on the slip.
type BreakdownLine struct {
	ComponentID     string           `json:"component_id"`
	Label           string           `json:"label"`
	ComputedAmount  decimal.Decimal  `json:"computed_amount"`
	CalculationType string           `json:"calculation_type,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	DaysCount       *decimal.Decimal `json:"days_count,omitempty"`
	HoursPerDay     *decimal.Decimal `json:"hours_per_day,omitempty"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate,omitempty"`
	WindowStart     *string          `json:"window_start,omitempty"`
	WindowEnd       *string          `json:"window_end,omitempty"`

	// advance lines
	MonthlyDeduction *decimal.Decimal `json:"monthly_deduction,omitempty"`
	RemainingBalance *decimal.Decimal `json:"remaining_balance,omitempty"`
}

// TaxDetail is the persisted tax audit trail. Breakdown is nil when gross
// earnings did not exceed the minimum taxable limit.
type TaxDetail struct {
	BelowMinimumLimit bool           `json:"below_minimum_limit"`
	Breakdown         *tax.Breakdown `json:"breakdown"`
}

// Earnings returns basic salary plus every earning line.
func (s SalarySlip) Earnings() decimal.Decimal {
	total := s.BasicSalary
	for _, lines := range [][]BreakdownLine{s.Benefits, s.Incentives, s.Bonuses, s.Overtime, s.Contributions} {
		total = total.Add(sumLines(lines))
	}
	return total
}

// DeductionsTotal returns recurring deductions, due advances and tax.
func (s SalarySlip) DeductionsTotal() decimal.Decimal {
	return sumLines(s.Deductions).Add(sumLines(s.Advances)).Add(s.TaxAmount)
}

func sumLines(lines []BreakdownLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.ComputedAmount)
	}
	return total
}

package advance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

type SalaryAdvance struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID              uuid.UUID       `gorm:"type:uuid;not null;index:idx_advance_employee_status"`
	EmployeeID             uuid.UUID       `gorm:"type:uuid;not null;index:idx_advance_employee_status"`
	AdvanceType            string          `gorm:"type:varchar(64);not null"`
	PrincipalAmount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	MonthlyDeduction       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	RemainingBalance       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	IssueDate              time.Time       `gorm:"type:date;not null"`
	StartDeductionDate     time.Time       `gorm:"type:date;not null"`
	ExpectedCompletionDate time.Time       `gorm:"type:date;not null"`
	Status                 string          `gorm:"type:varchar(16);not null;index:idx_advance_employee_status"`
	CompletedAt            *time.Time
	Notes                  *string   `gorm:"type:text"`
	CreatedBy              uuid.UUID `gorm:"type:uuid"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Postings []AdvancePosting `gorm:"foreignKey:AdvanceID"`
}

func (SalaryAdvance) TableName() string {
	return "salary_advances"
}

// AdvancePosting records one deduction taken from an advance by a paid slip.
// The (advance, slip) pair is unique so a slip can never deduct twice.
type AdvancePosting struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AdvanceID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_advance_posting_slip"`
	SalarySlipID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_advance_posting_slip"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PostedAt     time.Time       `gorm:"not null"`
}

func (AdvancePosting) TableName() string {
	return "salary_advance_postings"
}

// DueAmount is what the next slip deducts: the monthly installment, capped by
// the remaining balance.
func (a SalaryAdvance) DueAmount() decimal.Decimal {
	return decimal.Min(a.MonthlyDeduction, a.RemainingBalance)
}

// ReadyAt reports whether the advance should be deducted on the given day.
func (a SalaryAdvance) ReadyAt(day time.Time) bool {
	return a.Status == StatusActive &&
		!a.StartDeductionDate.After(day) &&
		a.RemainingBalance.IsPositive()
}

// apply deducts amount from the balance, never going below zero, and returns
// the amount actually taken.
func (a *SalaryAdvance) apply(amount decimal.Decimal, now time.Time) decimal.Decimal {
	before := a.RemainingBalance
	after := before.Sub(amount)
	if after.IsNegative() {
		after = decimal.Zero
	}
	a.RemainingBalance = after
	if after.IsZero() {
		a.Status = StatusCompleted
		a.CompletedAt = &now
	}
	return before.Sub(after)
}

// ExpectedCompletion returns start + ceil(principal/monthly) months.
func ExpectedCompletion(start time.Time, principal, monthly decimal.Decimal) time.Time {
	if !monthly.IsPositive() {
		return start
	}
	installments := principal.Div(monthly).Ceil().IntPart()
	return start.AddDate(0, int(installments), 0)
}

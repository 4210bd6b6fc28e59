package payroll

import (
	"go-payroll/internal/tax"

	"github.com/shopspring/decimal"
)

type GenerateSlipRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	SalaryPeriod string `json:"salary_period" binding:"required"`
}

type BulkGenerateRequest struct {
	SalaryPeriod string   `json:"salary_period" binding:"required"`
	EmployeeIDs  []string `json:"employee_ids" binding:"omitempty,dive,uuid"`
	Async        bool     `json:"async"`
}

type MarkPaidRequest struct {
	PaymentMethod    string  `json:"payment_method" binding:"required,max=50"`
	PaymentReference *string `json:"payment_reference" binding:"omitempty,max=100"`
	Notes            *string `json:"notes"`
}

type GetSlipsFilterRequest struct {
	EmployeeID   string `form:"employee_id" binding:"omitempty,uuid"`
	SalaryPeriod string `form:"salary_period"`
	Status       string `form:"status"`
}

type SalarySlipResponse struct {
	ID               string           `json:"id"`
	CompanyID        string           `json:"company_id"`
	EmployeeID       string           `json:"employee_id"`
	SlipReference    string           `json:"slip_reference"`
	SalaryPeriod     string           `json:"salary_period"`
	BasicSalary      decimal.Decimal  `json:"basic_salary"`
	Benefits         []BreakdownLine  `json:"benefits"`
	Incentives       []BreakdownLine  `json:"incentives"`
	Bonuses          []BreakdownLine  `json:"bonuses"`
	Overtime         []BreakdownLine  `json:"overtime"`
	Contributions    []BreakdownLine  `json:"contributions"`
	Deductions       []BreakdownLine  `json:"deductions"`
	Advances         []BreakdownLine  `json:"advances"`
	TaxBreakdown     *tax.Breakdown   `json:"tax_breakdown"`
	BelowTaxLimit    bool             `json:"below_minimum_tax_limit"`
	TaxAmount        decimal.Decimal  `json:"tax_amount"`
	TotalEarnings    decimal.Decimal  `json:"total_earnings"`
	TotalDeductions  decimal.Decimal  `json:"total_deductions"`
	NetPayable       decimal.Decimal  `json:"net_payable"`
	Status           string           `json:"status"`
	GeneratedAt      string           `json:"generated_at"`
	GeneratedBy      string           `json:"generated_by"`
	PaidAt           *string          `json:"paid_at,omitempty"`
	PaidBy           *string          `json:"paid_by,omitempty"`
	PaymentMethod    *string          `json:"payment_method,omitempty"`
	PaymentReference *string          `json:"payment_reference,omitempty"`
	PaymentNotes     *string          `json:"payment_notes,omitempty"`
	// Hanya diisi oleh MarkPaid: advance yang tercantum di slip tetapi tidak
	// lagi bisa dipotong (sudah COMPLETED/CANCELLED). Nilainya tetap ada di
	// total_deductions slip.
	AdvancesSkipped  []string         `json:"advances_skipped,omitempty"`
}

// BulkOutcome is the per-employee line of a bulk run.
type BulkOutcome struct {
	EmployeeID string `json:"employee_id" csv:"employee_id"`
	Outcome    string `json:"outcome" csv:"outcome"`
	SlipID     string `json:"slip_id,omitempty" csv:"slip_id"`
	Error      string `json:"error,omitempty" csv:"error"`
}

const (
	OutcomeGenerated = "GENERATED"
	OutcomeSkipped   = "SKIPPED"
	OutcomeFailed    = "FAILED"
)

type BulkError struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type BulkResult struct {
	SalaryPeriod   string        `json:"salary_period"`
	Requested      int           `json:"requested"`
	GeneratedCount int           `json:"generated_count"`
	SkippedCount   int           `json:"skipped_count"`
	Errors         []BulkError   `json:"errors"`
	SlipIDs        []string      `json:"slip_ids"`
	Outcomes       []BulkOutcome `json:"outcomes"`
	Queued         bool          `json:"queued,omitempty"`
	RequestID      string        `json:"request_id,omitempty"`
}

type VerifyResult struct {
	SlipID             string          `json:"slip_id"`
	Valid              bool            `json:"valid"`
	StoredEarnings     decimal.Decimal `json:"stored_total_earnings"`
	ExpectedEarnings   decimal.Decimal `json:"expected_total_earnings"`
	StoredDeductions   decimal.Decimal `json:"stored_total_deductions"`
	ExpectedDeductions decimal.Decimal `json:"expected_total_deductions"`
	StoredNet          decimal.Decimal `json:"stored_net_payable"`
	ExpectedNet        decimal.Decimal `json:"expected_net_payable"`
	Mismatches         []string        `json:"mismatches"`
}

type Payslip struct {
	FileName string
	Content  []byte
}

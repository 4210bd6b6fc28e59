package advance

import "github.com/shopspring/decimal"

type CreateAdvanceRequest struct {
	EmployeeID         string          `json:"employee_id" binding:"required,uuid"`
	AdvanceType        string          `json:"advance_type" binding:"required,max=64"`
	PrincipalAmount    decimal.Decimal `json:"principal_amount"`
	MonthlyDeduction   decimal.Decimal `json:"monthly_deduction"`
	IssueDate          string          `json:"issue_date" binding:"required"`
	StartDeductionDate string          `json:"start_deduction_date" binding:"required"`
	Notes              *string         `json:"notes"`
}

type GetAdvancesFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
}

type PostingResponse struct {
	ID           string          `json:"id"`
	SalarySlipID string          `json:"salary_slip_id"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	PostedAt     string          `json:"posted_at"`
}

type AdvanceResponse struct {
	ID                     string            `json:"id"`
	CompanyID              string            `json:"company_id"`
	EmployeeID             string            `json:"employee_id"`
	AdvanceType            string            `json:"advance_type"`
	PrincipalAmount        decimal.Decimal   `json:"principal_amount"`
	MonthlyDeduction       decimal.Decimal   `json:"monthly_deduction"`
	RemainingBalance       decimal.Decimal   `json:"remaining_balance"`
	IssueDate              string            `json:"issue_date"`
	StartDeductionDate     string            `json:"start_deduction_date"`
	ExpectedCompletionDate string            `json:"expected_completion_date"`
	Status                 string            `json:"status"`
	CompletedAt            *string           `json:"completed_at,omitempty"`
	Notes                  *string           `json:"notes,omitempty"`
	Postings               []PostingResponse `json:"postings,omitempty"`
}

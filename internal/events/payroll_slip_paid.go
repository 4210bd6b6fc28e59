package events

import "time"

const (
	PayrollSlipPaidTopic = "hr.payroll.slip.paid.v1"
	PayrollSlipPaidType  = "payroll.slip.paid"
)

type PayrollSlipPaidEvent struct {
	EventType        string    `json:"event_type"`
	SlipID           string    `json:"slip_id"`
	CompanyID        string    `json:"company_id"`
	EmployeeID       string    `json:"employee_id"`
	SalaryPeriod     string    `json:"salary_period"`
	NetPayable       string    `json:"net_payable"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	AdvancesPosted   []string  `json:"advances_posted,omitempty"`
	AdvancesSkipped  []string  `json:"advances_skipped,omitempty"`
	PaidBy           string    `json:"paid_by"`
	OccurredAt       time.Time `json:"occurred_at"`
}

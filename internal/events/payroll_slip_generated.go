package events

import "time"

const (
	PayrollSlipGeneratedTopic = "hr.payroll.slip.generated.v1"
	PayrollSlipGeneratedType  = "payroll.slip.generated"
)

type PayrollSlipGeneratedEvent struct {
	EventType     string    `json:"event_type"`
	SlipID        string    `json:"slip_id"`
	SlipReference string    `json:"slip_reference"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	SalaryPeriod  string    `json:"salary_period"`
	NetPayable    string    `json:"net_payable"`
	GeneratedBy   string    `json:"generated_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

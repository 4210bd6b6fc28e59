package events

import "time"

const (
	PayrollBulkRequestedTopic = "hr.payroll.bulk.requested.v1"
	PayrollBulkRequestedType  = "payroll.bulk.requested"
)

// PayrollBulkRequestedEvent asks the consumer to run a bulk generation.
// An empty EmployeeIDs means every active employee.
type PayrollBulkRequestedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	CompanyID    string    `json:"company_id"`
	SalaryPeriod string    `json:"salary_period"`
	EmployeeIDs  []string  `json:"employee_ids,omitempty"`
	RequestedBy  string    `json:"requested_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}

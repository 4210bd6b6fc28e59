package component

import "github.com/shopspring/decimal"

type CreateComponentRequest struct {
	EmployeeID      string           `json:"employee_id" binding:"required,uuid"`
	Kind            string           `json:"kind" binding:"required"`
	Title           string           `json:"title" binding:"required,max=150"`
	Description     *string          `json:"description"`
	CalculationType string           `json:"calculation_type"`
	Amount          *decimal.Decimal `json:"amount"`
	DaysCount       *decimal.Decimal `json:"days_count"`
	HoursPerDay     *decimal.Decimal `json:"hours_per_day"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
	WindowStart     *string          `json:"window_start"`
	WindowEnd       *string          `json:"window_end"`
	IsActive        *bool            `json:"is_active"`
}

type UpdateComponentRequest struct {
	Title           string           `json:"title" binding:"required,max=150"`
	Description     *string          `json:"description"`
	CalculationType string           `json:"calculation_type"`
	Amount          *decimal.Decimal `json:"amount"`
	DaysCount       *decimal.Decimal `json:"days_count"`
	HoursPerDay     *decimal.Decimal `json:"hours_per_day"`
	HourlyRate      *decimal.Decimal `json:"hourly_rate"`
	WindowStart     *string          `json:"window_start"`
	WindowEnd       *string          `json:"window_end"`
	IsActive        *bool            `json:"is_active"`
}

type GetComponentsFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Kind       string `form:"kind"`
}

type ComponentResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	EmployeeID      string          `json:"employee_id"`
	Kind            string          `json:"kind"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	CalculationType string          `json:"calculation_type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	DaysCount       *string         `json:"days_count,omitempty"`
	HoursPerDay     *string         `json:"hours_per_day,omitempty"`
	HourlyRate      *string         `json:"hourly_rate,omitempty"`
	WindowStart     *string         `json:"window_start,omitempty"`
	WindowEnd       *string         `json:"window_end,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       string          `json:"created_at"`
}

package tax

import "github.com/shopspring/decimal"

type SlabRequest struct {
	IncomeFrom  decimal.Decimal  `json:"income_from"`
	IncomeTo    *decimal.Decimal `json:"income_to"`
	FixedAmount decimal.Decimal  `json:"fixed_amount"`
	Percentage  decimal.Decimal  `json:"percentage"`
	IsActive    *bool            `json:"is_active"`
}

type SlabResponse struct {
	ID          string           `json:"id"`
	IncomeFrom  decimal.Decimal  `json:"income_from"`
	IncomeTo    *decimal.Decimal `json:"income_to"`
	FixedAmount decimal.Decimal  `json:"fixed_amount"`
	Percentage  decimal.Decimal  `json:"percentage"`
	IsActive    bool             `json:"is_active"`
}

type CreateExemptionRequest struct {
	Title    string          `json:"title" binding:"required,max=150"`
	Amount   decimal.Decimal `json:"amount"`
	IsActive *bool           `json:"is_active"`
}

type ExemptionResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	IsActive bool            `json:"is_active"`
}

type SetMinimumLimitRequest struct {
	Threshold decimal.Decimal `json:"threshold"`
}

type MinimumLimitResponse struct {
	ID        string          `json:"id"`
	Threshold decimal.Decimal `json:"threshold"`
	IsActive  bool            `json:"is_active"`
	CreatedAt string          `json:"created_at"`
}

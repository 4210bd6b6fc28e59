package tax

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=tax_resolver.go -destination=mock/tax_resolver_mock.go -package=mock

// ConfigReader exposes the active tax configuration of a company.
type ConfigReader interface {
	// FindActiveMinimumLimit returns nil when no limit is active.
	FindActiveMinimumLimit(ctx context.Context, companyID string) (*MinimumTaxLimit, error)
	SumActiveExemptions(ctx context.Context, companyID string) (decimal.Decimal, error)
	// FindSlabForIncome returns the active slab covering income, preferring the
	// highest income_from when slabs overlap, or nil when none does.
	FindSlabForIncome(ctx context.Context, companyID string, income decimal.Decimal) (*TaxSlab, error)
}

type Resolver interface {
	ComputeTax(ctx context.Context, companyID string, grossEarnings decimal.Decimal) (Result, error)
}

type Result struct {
	TaxAmount decimal.Decimal
	Breakdown *Breakdown
}

type Breakdown struct {
	GrossEarnings    decimal.Decimal  `json:"gross_earnings"`
	Exemptions       decimal.Decimal  `json:"exemptions"`
	TaxableIncome    decimal.Decimal  `json:"taxable_income"`
	SlabID           string           `json:"slab_id,omitempty"`
	IncomeFrom       *decimal.Decimal `json:"income_from,omitempty"`
	IncomeTo         *decimal.Decimal `json:"income_to,omitempty"`
	FixedAmount      *decimal.Decimal `json:"fixed_amount,omitempty"`
	Percentage       *decimal.Decimal `json:"percentage,omitempty"`
	TaxAmount        decimal.Decimal  `json:"tax_amount"`
	ConfigurationGap bool             `json:"configuration_gap,omitempty"`
}

// ConfigurationGapError describes a taxable income no active slab covers.
// It is logged, never returned: the income is taxed at zero.
type ConfigurationGapError struct {
	CompanyID     string
	TaxableIncome decimal.Decimal
}

func (e *ConfigurationGapError) Error() string {
	return fmt.Sprintf("no active tax slab covers taxable income %s for company %s",
		e.TaxableIncome.StringFixed(2), e.CompanyID)
}

type resolver struct {
	config ConfigReader
	logger *zap.Logger
}

func NewResolver(config ConfigReader, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("tax.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tax.resolver")
	}
	return &resolver{config: config, logger: l}
}

func (r *resolver) ComputeTax(ctx context.Context, companyID string, gross decimal.Decimal) (Result, error) {
	limit, err := r.config.FindActiveMinimumLimit(ctx, companyID)
	if err != nil {
		return Result{}, err
	}
	if limit != nil && gross.LessThanOrEqual(limit.Threshold) {
		return Result{TaxAmount: decimal.Zero}, nil
	}

	exemptions, err := r.config.SumActiveExemptions(ctx, companyID)
	if err != nil {
		return Result{}, err
	}
	taxable := decimal.Max(decimal.Zero, gross.Sub(exemptions))

	breakdown := &Breakdown{
		GrossEarnings: gross,
		Exemptions:    exemptions,
		TaxableIncome: taxable,
		TaxAmount:     decimal.Zero,
	}

	slab, err := r.config.FindSlabForIncome(ctx, companyID, taxable)
	if err != nil {
		return Result{}, err
	}
	if slab == nil {
		gap := &ConfigurationGapError{CompanyID: companyID, TaxableIncome: taxable}
		r.logger.Warn("tax configuration gap, applying zero tax",
			zap.String("company_id", companyID),
			zap.String("taxable_income", taxable.StringFixed(2)),
			zap.Error(gap),
		)
		breakdown.ConfigurationGap = true
		return Result{TaxAmount: decimal.Zero, Breakdown: breakdown}, nil
	}

	// tidak dibulatkan di sini; slip memotongnya ke 2 desimal saat snapshot dibuat
	amount := slab.FixedAmount.Add(taxable.Sub(slab.IncomeFrom).Mul(slab.Percentage).Shift(-2))

	from, fixed, pct := slab.IncomeFrom, slab.FixedAmount, slab.Percentage
	breakdown.SlabID = slab.ID.String()
	breakdown.IncomeFrom = &from
	breakdown.FixedAmount = &fixed
	breakdown.Percentage = &pct
	if slab.IncomeTo.Valid {
		to := slab.IncomeTo.Decimal
		breakdown.IncomeTo = &to
	}
	breakdown.TaxAmount = amount

	return Result{TaxAmount: amount, Breakdown: breakdown}, nil
}

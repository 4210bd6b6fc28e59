package component

import "github.com/shopspring/decimal"

// Resolve applies the fixed-vs-percentage rule shared by every component kind.
// The result is not rounded.
func Resolve(calculationType string, amount, baseSalary decimal.Decimal) decimal.Decimal {
	switch calculationType {
	case CalculationPercentage:
		return amount.Shift(-2).Mul(baseSalary)
	case CalculationFixed:
		return amount
	default:
		return decimal.Zero
	}
}

// Compute returns the component's amount for the given base salary.
func (c Component) Compute(baseSalary decimal.Decimal) decimal.Decimal {
	if c.Kind == KindOvertime {
		return c.DaysCount.Mul(c.HoursPerDay).Mul(c.HourlyRate)
	}
	return Resolve(c.CalculationType, c.Amount, baseSalary)
}

func ValidCalculationType(v string) bool {
	return v == CalculationFixed || v == CalculationPercentage
}

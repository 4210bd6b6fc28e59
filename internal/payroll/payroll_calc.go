package payroll

import (
	"fmt"
	"time"

	"go-payroll/internal/advance"
	"go-payroll/internal/component"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

const (
	periodLayout = "2006-01"
	dateLayout   = "2006-01-02"
	moneyPlaces  = 2
)

// Period is one calendar month.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) String() string {
	return p.Start.Format(periodLayout)
}

func ParsePeriod(v string) (Period, error) {
	start, err := time.Parse(periodLayout, v)
	if err != nil || start.Format(periodLayout) != v {
		return Period{}, payrollerrors.ErrInvalidPeriod
	}
	return Period{Start: start, End: start.AddDate(0, 1, -1)}, nil
}

// quantize adalah satu-satunya titik pembulatan (half away from zero, 2 desimal).
func quantize(v decimal.Decimal) decimal.Decimal {
	return v.Round(moneyPlaces)
}

type slipLines struct {
	benefits      []BreakdownLine
	incentives    []BreakdownLine
	bonuses       []BreakdownLine
	overtime      []BreakdownLine
	contributions []BreakdownLine
	deductions    []BreakdownLine
	advances      []BreakdownLine
}

func (l slipLines) earnings(basic decimal.Decimal) decimal.Decimal {
	return basic.
		Add(sumLines(l.benefits)).
		Add(sumLines(l.incentives)).
		Add(sumLines(l.bonuses)).
		Add(sumLines(l.overtime)).
		Add(sumLines(l.contributions))
}

func buildLines(components []component.Component, advances []advance.SalaryAdvance, basic decimal.Decimal) slipLines {
	lines := slipLines{
		benefits:      []BreakdownLine{},
		incentives:    []BreakdownLine{},
		bonuses:       []BreakdownLine{},
		overtime:      []BreakdownLine{},
		contributions: []BreakdownLine{},
		deductions:    []BreakdownLine{},
		advances:      []BreakdownLine{},
	}

	for _, c := range components {
		line := componentLine(c, basic)
		switch c.Kind {
		case component.KindBenefit:
			lines.benefits = append(lines.benefits, line)
		case component.KindIncentive:
			lines.incentives = append(lines.incentives, line)
		case component.KindBonus:
			lines.bonuses = append(lines.bonuses, line)
		case component.KindOvertime:
			lines.overtime = append(lines.overtime, line)
		case component.KindEmployerContribution:
			lines.contributions = append(lines.contributions, line)
		case component.KindRecurringDeduction:
			lines.deductions = append(lines.deductions, line)
		}
	}

	for _, a := range advances {
		lines.advances = append(lines.advances, advanceLine(a))
	}

	return lines
}

func componentLine(c component.Component, basic decimal.Decimal) BreakdownLine {
	line := BreakdownLine{
		ComponentID:    c.ID.String(),
		Label:          c.Title,
		ComputedAmount: quantize(c.Compute(basic)),
		WindowStart:    formatDay(c.WindowStart),
		WindowEnd:      formatDay(c.WindowEnd),
	}

	if c.Kind == component.KindOvertime {
		line.DaysCount = decimalRef(c.DaysCount)
		line.HoursPerDay = decimalRef(c.HoursPerDay)
		line.HourlyRate = decimalRef(c.HourlyRate)
		return line
	}

	amount := c.Amount
	line.CalculationType = c.CalculationType
	line.Amount = &amount
	return line
}

func advanceLine(a advance.SalaryAdvance) BreakdownLine {
	monthly := a.MonthlyDeduction
	remaining := a.RemainingBalance
	return BreakdownLine{
		ComponentID:      a.ID.String(),
		Label:            fmt.Sprintf("Salary advance (%s)", a.AdvanceType),
		ComputedAmount:   quantize(a.DueAmount()),
		MonthlyDeduction: &monthly,
		RemainingBalance: &remaining,
	}
}

func decimalRef(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(dateLayout)
	return &v
}

package advance

import (
	"context"
	"database/sql"
	"time"

	advanceerrors "go-payroll/internal/advance/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ledger is the only writer of advance balances. Deductions are posted from
// the payment transition of a salary slip, once per (advance, slip).
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	// ReadyForDeduction lists active advances with a balance whose deduction
	// start date has been reached. Read only.
	ReadyForDeduction(ctx context.Context, companyID, employeeID string) ([]SalaryAdvance, error)
	// PostDeduction takes amount (the monthly deduction when nil) from the
	// advance on behalf of slipID.
	PostDeduction(ctx context.Context, companyID, advanceID, slipID string, amount *decimal.Decimal) (SalaryAdvance, error)
}

type ledger struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewLedger(repo Repository, logger ...*zap.Logger) Ledger {
	return NewLedgerWithClock(repo, time.Now, logger...)
}

func NewLedgerWithClock(repo Repository, now func() time.Time, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("advance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("advance.ledger")
	}
	return &ledger{repo: repo, now: now, logger: l}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{repo: l.repo.WithTx(tx), now: l.now, logger: l.logger}
}

func (l *ledger) ReadyForDeduction(ctx context.Context, companyID, employeeID string) ([]SalaryAdvance, error) {
	return l.repo.FindReady(ctx, companyID, employeeID, l.now().UTC())
}

func (l *ledger) PostDeduction(
	ctx context.Context,
	companyID, advanceID, slipID string,
	amount *decimal.Decimal,
) (SalaryAdvance, error) {
	slipUUID, err := uuid.Parse(slipID)
	if err != nil {
		return SalaryAdvance{}, advanceerrors.ErrAdvanceNotFound
	}

	a, err := l.repo.FindByIDForUpdate(ctx, companyID, advanceID)
	if err != nil {
		return SalaryAdvance{}, mapRepositoryError(err)
	}

	posted, err := l.repo.HasPosting(ctx, advanceID, slipID)
	if err != nil {
		return SalaryAdvance{}, err
	}
	if posted {
		return SalaryAdvance{}, advanceerrors.ErrAdvanceAlreadyPosted
	}

	if a.Status != StatusActive {
		return SalaryAdvance{}, advanceerrors.ErrAdvanceNotActive
	}

	deduct := a.MonthlyDeduction
	if amount != nil {
		deduct = *amount
	}
	if deduct.IsNegative() {
		return SalaryAdvance{}, advanceerrors.ErrInvalidDeductionAmount
	}

	now := l.now().UTC()
	applied := a.apply(deduct, now)

	if err := l.repo.Update(ctx, a); err != nil {
		return SalaryAdvance{}, mapRepositoryError(err)
	}

	if err := l.repo.CreatePosting(ctx, &AdvancePosting{
		ID:           uuid.New(),
		CompanyID:    a.CompanyID,
		AdvanceID:    a.ID,
		SalarySlipID: slipUUID,
		Amount:       applied,
		BalanceAfter: a.RemainingBalance,
		PostedAt:     now,
	}); err != nil {
		return SalaryAdvance{}, mapRepositoryError(err)
	}

	l.logger.Info("advance deduction posted",
		zap.String("advance_id", advanceID),
		zap.String("salary_slip_id", slipID),
		zap.String("amount", applied.StringFixed(2)),
		zap.String("remaining_balance", a.RemainingBalance.StringFixed(2)),
		zap.String("status", a.Status),
	)

	return *a, nil
}

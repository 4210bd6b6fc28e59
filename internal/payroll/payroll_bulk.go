package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-payroll/internal/events"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bulkLockTTL = 15 * time.Minute

func BulkLockKey(companyID, period string) string {
	return fmt.Sprintf("payroll:bulk:%s:%s", companyID, period)
}

// BulkGenerate runs Generate for every target employee. A failing employee is
// recorded in the result and never stops the run.
func (s *service) BulkGenerate(
	ctx context.Context,
	companyID, actorID string,
	req BulkGenerateRequest,
) (BulkResult, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return BulkResult{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return BulkResult{}, payrollerrors.ErrInvalidActorID
	}
	period, err := ParsePeriod(req.SalaryPeriod)
	if err != nil {
		return BulkResult{}, err
	}

	ids := uniqueIDs(req.EmployeeIDs)

	if req.Async {
		return s.enqueueBulk(ctx, companyID, actorID, period, ids)
	}

	// Run identik yang bersamaan di proses ini digabung jadi satu.
	flightKey := BulkLockKey(companyID, period.String()) + "|" + strings.Join(ids, ",")
	v, err, shared := s.bulkGroup.Do(flightKey, func() (any, error) {
		return s.runBulkLocked(ctx, companyID, actorID, period, ids)
	})
	if shared {
		s.log(ctx).Info("bulk payroll run shared with concurrent caller",
			zap.String("company_id", companyID),
			zap.String("salary_period", period.String()),
		)
	}
	// run yang terputus tetap mengembalikan hasil parsial bersama error-nya
	result, _ := v.(BulkResult)
	return result, err
}

func (s *service) runBulkLocked(
	ctx context.Context,
	companyID, actorID string,
	period Period,
	ids []string,
) (BulkResult, error) {
	if s.rdb != nil {
		key := BulkLockKey(companyID, period.String())
		acquired, err := s.rdb.SetNX(ctx, key, actorID, bulkLockTTL).Result()
		switch {
		case err != nil:
			s.log(ctx).Warn("bulk lock unavailable, relying on slip uniqueness",
				zap.String("lock_key", key),
				zap.Error(err),
			)
		case !acquired:
			return BulkResult{}, payrollerrors.ErrBulkRunInProgress
		default:
			defer s.rdb.Del(context.WithoutCancel(ctx), key)
		}
	}

	return s.runBulk(ctx, companyID, actorID, period, ids)
}

func (s *service) runBulk(
	ctx context.Context,
	companyID, actorID string,
	period Period,
	ids []string,
) (BulkResult, error) {
	if len(ids) == 0 {
		active, err := s.directory.ListActiveIDs(ctx, companyID)
		if err != nil {
			return BulkResult{}, err
		}
		ids = active
	}

	result := BulkResult{
		SalaryPeriod: period.String(),
		Requested:    len(ids),
		Errors:       []BulkError{},
		SlipIDs:      []string{},
		Outcomes:     make([]BulkOutcome, 0, len(ids)),
	}

	for _, employeeID := range ids {
		if err := ctx.Err(); err != nil {
			s.log(ctx).Warn("bulk payroll run interrupted",
				zap.String("company_id", companyID),
				zap.String("salary_period", period.String()),
				zap.Int("processed", len(result.Outcomes)),
			)
			return result, err
		}

		slip, err := s.Generate(ctx, companyID, actorID, GenerateSlipRequest{
			EmployeeID:   employeeID,
			SalaryPeriod: period.String(),
		})
		switch {
		case err == nil:
			result.GeneratedCount++
			result.SlipIDs = append(result.SlipIDs, slip.ID)
			result.Outcomes = append(result.Outcomes, BulkOutcome{EmployeeID: employeeID, Outcome: OutcomeGenerated, SlipID: slip.ID})
		case errors.Is(err, payrollerrors.ErrDuplicateSlip):
			result.SkippedCount++
			result.Outcomes = append(result.Outcomes, BulkOutcome{EmployeeID: employeeID, Outcome: OutcomeSkipped})
		default:
			s.log(ctx).Warn("bulk payroll: employee failed",
				zap.String("company_id", companyID),
				zap.String("employee_id", employeeID),
				zap.String("salary_period", period.String()),
				zap.Error(err),
			)
			result.Errors = append(result.Errors, BulkError{EmployeeID: employeeID, Error: err.Error()})
			result.Outcomes = append(result.Outcomes, BulkOutcome{EmployeeID: employeeID, Outcome: OutcomeFailed, Error: err.Error()})
		}
	}

	s.log(ctx).Info("bulk payroll run finished",
		zap.String("company_id", companyID),
		zap.String("salary_period", period.String()),
		zap.Int("requested", result.Requested),
		zap.Int("generated", result.GeneratedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("failed", len(result.Errors)),
	)

	return result, nil
}

func (s *service) enqueueBulk(
	ctx context.Context,
	companyID, actorID string,
	period Period,
	ids []string,
) (BulkResult, error) {
	requestID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BulkResult{}, err
	}
	defer tx.Rollback()

	aggregateID := companyID + ":" + period.String()
	if err := s.enqueue(ctx, tx, "salary_slip_bulk", aggregateID, events.PayrollBulkRequestedType, events.PayrollBulkRequestedTopic,
		events.PayrollBulkRequestedEvent{
			EventType:    events.PayrollBulkRequestedType,
			RequestID:    requestID,
			CompanyID:    companyID,
			SalaryPeriod: period.String(),
			EmployeeIDs:  ids,
			RequestedBy:  actorID,
			OccurredAt:   s.now().UTC(),
		}); err != nil {
		return BulkResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return BulkResult{}, err
	}

	s.log(ctx).Info("bulk payroll run queued",
		zap.String("company_id", companyID),
		zap.String("salary_period", period.String()),
		zap.String("request_id", requestID),
	)

	return BulkResult{
		SalaryPeriod: period.String(),
		Requested:    len(ids),
		Errors:       []BulkError{},
		SlipIDs:      []string{},
		Outcomes:     []BulkOutcome{},
		Queued:       true,
		RequestID:    requestID,
	}, nil
}

// uniqueIDs keeps the caller's order and drops repeats.
func uniqueIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// sortedOutcomes orders report rows by employee id.
func sortedOutcomes(outcomes []BulkOutcome) []BulkOutcome {
	out := append([]BulkOutcome(nil), outcomes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out
}

package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/advance"
	advanceerrors "go-payroll/internal/advance/errors"
	"go-payroll/internal/component"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/tax"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID, actorID string, req GenerateSlipRequest) (SalarySlipResponse, error)
	BulkGenerate(ctx context.Context, companyID, actorID string, req BulkGenerateRequest) (BulkResult, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string, req MarkPaidRequest) (SalarySlipResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetSlipsFilterRequest) ([]SalarySlipResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalarySlipResponse, error)
	Verify(ctx context.Context, companyID, id string) (VerifyResult, error)
	Payslip(ctx context.Context, companyID, id string) (Payslip, error)
	Delete(ctx context.Context, companyID, id string) error
}

// Deps groups the collaborators of the payroll service. Redis is optional:
// without it bulk runs are only collapsed within the process.
type Deps struct {
	DB         *sql.DB
	Repo       Repository
	Directory  employee.Directory
	Components component.Store
	Ledger     advance.Ledger
	Tax        tax.Resolver
	Counter    counter.Repository
	Outbox     kafka.OutboxRepository
	Redis      *redis.Client
	Logger     *zap.Logger
	Now        func() time.Time
}

type service struct {
	db         *sql.DB
	repo       Repository
	directory  employee.Directory
	components component.Store
	ledger     advance.Ledger
	tax        tax.Resolver
	counter    counter.Repository
	outbox     kafka.OutboxRepository
	rdb        *redis.Client
	logger     *zap.Logger
	now        func() time.Time

	bulkGroup singleflight.Group
}

func NewService(deps Deps) Service {
	l := zap.L().Named("payroll.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("payroll.service")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:         deps.DB,
		repo:       deps.Repo,
		directory:  deps.Directory,
		components: deps.Components,
		ledger:     deps.Ledger,
		tax:        deps.Tax,
		counter:    deps.Counter,
		outbox:     deps.Outbox,
		rdb:        deps.Redis,
		logger:     l,
		now:        now,
	}
}

// log memakai logger request (request_id, user_id) bila tersedia.
func (s *service) log(ctx context.Context) *zap.Logger {
	if l := contextutil.GetLogger(ctx, s.logger); l != s.logger {
		return l.Named("payroll.service")
	}
	return s.logger
}

func (s *service) Generate(
	ctx context.Context,
	companyID, actorID string,
	req GenerateSlipRequest,
) (SalarySlipResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidActorID
	}
	period, err := ParsePeriod(req.SalaryPeriod)
	if err != nil {
		return SalarySlipResponse{}, err
	}

	profile, err := s.directory.FindProfile(ctx, companyID, req.EmployeeID, period.End)
	if err != nil {
		return SalarySlipResponse{}, employee.MapDirectoryError(err)
	}

	// Fast path saja; unique index tetap sumber kebenaran saat insert.
	exists, err := s.repo.ExistsForPeriod(ctx, companyID, req.EmployeeID, period.String())
	if err != nil {
		return SalarySlipResponse{}, err
	}
	if exists {
		return SalarySlipResponse{}, payrollerrors.ErrDuplicateSlip
	}

	components, err := s.components.ComponentsFor(ctx, companyID, req.EmployeeID, period.Start, period.End)
	if err != nil {
		return SalarySlipResponse{}, fmt.Errorf("load components: %w", err)
	}

	basic := quantize(profile.BaseSalary)

	advances, err := s.ledger.ReadyForDeduction(ctx, companyID, req.EmployeeID)
	if err != nil {
		return SalarySlipResponse{}, fmt.Errorf("load advances: %w", err)
	}

	lines := buildLines(components, advances, basic)
	gross := lines.earnings(basic)

	taxResult, err := s.tax.ComputeTax(ctx, companyID, gross)
	if err != nil {
		return SalarySlipResponse{}, fmt.Errorf("compute tax: %w", err)
	}
	taxAmount := quantize(taxResult.TaxAmount)
	if taxResult.Breakdown != nil {
		taxResult.Breakdown.TaxAmount = taxAmount
	}

	totalDeductions := sumLines(lines.deductions).Add(sumLines(lines.advances)).Add(taxAmount)
	now := s.now().UTC()

	slip := &SalarySlip{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		SalaryPeriod:  period.String(),
		BasicSalary:   basic,
		Benefits:      datatypes.NewJSONSlice(lines.benefits),
		Incentives:    datatypes.NewJSONSlice(lines.incentives),
		Bonuses:       datatypes.NewJSONSlice(lines.bonuses),
		Overtime:      datatypes.NewJSONSlice(lines.overtime),
		Contributions: datatypes.NewJSONSlice(lines.contributions),
		Deductions:    datatypes.NewJSONSlice(lines.deductions),
		Advances:      datatypes.NewJSONSlice(lines.advances),
		TaxBreakdown: datatypes.NewJSONType(TaxDetail{
			BelowMinimumLimit: taxResult.Breakdown == nil,
			Breakdown:         taxResult.Breakdown,
		}),
		TaxAmount:       taxAmount,
		TotalEarnings:   gross,
		TotalDeductions: totalDeductions,
		NetPayable:      gross.Sub(totalDeductions),
		Status:          StatusGenerated,
		GeneratedAt:     now,
		GeneratedBy:     actorUUID,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	day := now.Format("20060102")
	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeSalarySlipPrefix+day)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	slip.SlipReference = fmt.Sprintf("SLP-%s-%04d", day, seq)

	if err := s.repo.WithTx(tx).Create(ctx, slip); err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, "salary_slip", slip.ID.String(), events.PayrollSlipGeneratedType, events.PayrollSlipGeneratedTopic,
		events.PayrollSlipGeneratedEvent{
			EventType:     events.PayrollSlipGeneratedType,
			SlipID:        slip.ID.String(),
			SlipReference: slip.SlipReference,
			CompanyID:     companyID,
			EmployeeID:    req.EmployeeID,
			SalaryPeriod:  slip.SalaryPeriod,
			NetPayable:    slip.NetPayable.StringFixed(2),
			GeneratedBy:   actorID,
			OccurredAt:    now,
		}); err != nil {
		return SalarySlipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalarySlipResponse{}, err
	}

	s.log(ctx).Info("salary slip generated",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("salary_period", slip.SalaryPeriod),
		zap.String("slip_reference", slip.SlipReference),
		zap.String("net_payable", slip.NetPayable.StringFixed(2)),
	)

	return mapToResponse(*slip), nil
}

func (s *service) MarkPaid(
	ctx context.Context,
	companyID, actorID, id string,
	req MarkPaidRequest,
) (SalarySlipResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidActorID
	}
	if req.PaymentMethod == "" {
		return SalarySlipResponse{}, payrollerrors.ErrPaymentMethodRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	if slip.Status == StatusPaid {
		return SalarySlipResponse{}, payrollerrors.ErrSlipAlreadyPaid
	}
	if slip.Status != StatusGenerated && slip.Status != StatusSent {
		return SalarySlipResponse{}, payrollerrors.ErrSlipNotPayable
	}

	payment := PaymentUpdate{
		PaidAt:           s.now().UTC(),
		PaidBy:           actorUUID,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		PaymentNotes:     req.Notes,
	}
	moved, err := qtx.MarkPaid(ctx, companyID, id, payableStatuses, payment)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	if !moved {
		return SalarySlipResponse{}, payrollerrors.ErrSlipAlreadyPaid
	}

	ledger := s.ledger.WithTx(tx)
	posted := make([]string, 0, len(slip.Advances))
	var skipped []string
	for _, line := range slip.Advances {
		amount := line.ComputedAmount
		_, err := ledger.PostDeduction(ctx, companyID, line.ComponentID, id, &amount)
		switch {
		case err == nil:
			posted = append(posted, line.ComponentID)
		case errors.Is(err, advanceerrors.ErrAdvanceNotActive), errors.Is(err, advanceerrors.ErrAdvanceNotFound):
			s.log(ctx).Warn("advance no longer deductible, skipping posting",
				zap.String("salary_slip_id", id),
				zap.String("advance_id", line.ComponentID),
				zap.String("amount", line.ComputedAmount.StringFixed(2)),
				zap.Error(err),
			)
			skipped = append(skipped, line.ComponentID)
		default:
			return SalarySlipResponse{}, err
		}
	}

	if err := s.enqueue(ctx, tx, "salary_slip", id, events.PayrollSlipPaidType, events.PayrollSlipPaidTopic,
		events.PayrollSlipPaidEvent{
			EventType:        events.PayrollSlipPaidType,
			SlipID:           id,
			CompanyID:        companyID,
			EmployeeID:       slip.EmployeeID.String(),
			SalaryPeriod:     slip.SalaryPeriod,
			NetPayable:       slip.NetPayable.StringFixed(2),
			PaymentMethod:    req.PaymentMethod,
			PaymentReference: derefString(req.PaymentReference),
			AdvancesPosted:   posted,
			AdvancesSkipped:  skipped,
			PaidBy:           actorID,
			OccurredAt:       payment.PaidAt,
		}); err != nil {
		return SalarySlipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalarySlipResponse{}, err
	}

	slip.Status = StatusPaid
	slip.PaidAt = &payment.PaidAt
	slip.PaidBy = &actorUUID
	slip.PaymentMethod = &req.PaymentMethod
	slip.PaymentReference = req.PaymentReference
	slip.PaymentNotes = req.Notes

	s.log(ctx).Info("salary slip paid",
		zap.String("company_id", companyID),
		zap.String("salary_slip_id", id),
		zap.Int("advances_posted", len(posted)),
		zap.Int("advances_skipped", len(skipped)),
	)

	resp := mapToResponse(*slip)
	resp.AdvancesSkipped = skipped
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetSlipsFilterRequest) ([]SalarySlipResponse, error) {
	if filter.SalaryPeriod != "" {
		if _, err := ParsePeriod(filter.SalaryPeriod); err != nil {
			return nil, err
		}
	}
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, payrollerrors.ErrInvalidStatusFilter
	}

	slips, err := s.repo.FindAll(ctx, companyID, QueryFilter{
		EmployeeID:   filter.EmployeeID,
		SalaryPeriod: filter.SalaryPeriod,
		Status:       filter.Status,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]SalarySlipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapToResponse(slip)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalarySlipResponse, error) {
	slip, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*slip), nil
}

// Verify recomputes the totals from the stored lines and compares them with
// the stored totals.
func (s *service) Verify(ctx context.Context, companyID, id string) (VerifyResult, error) {
	slip, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return VerifyResult{}, mapRepositoryError(err)
	}
	return verifySlip(*slip), nil
}

func verifySlip(slip SalarySlip) VerifyResult {
	earnings := slip.Earnings()
	deductions := slip.DeductionsTotal()

	res := VerifyResult{
		SlipID:             slip.ID.String(),
		StoredEarnings:     slip.TotalEarnings,
		ExpectedEarnings:   earnings,
		StoredDeductions:   slip.TotalDeductions,
		ExpectedDeductions: deductions,
		StoredNet:          slip.NetPayable,
		ExpectedNet:        slip.TotalEarnings.Sub(slip.TotalDeductions),
		Mismatches:         []string{},
	}
	if !earnings.Equal(slip.TotalEarnings) {
		res.Mismatches = append(res.Mismatches, "total_earnings")
	}
	if !deductions.Equal(slip.TotalDeductions) {
		res.Mismatches = append(res.Mismatches, "total_deductions")
	}
	if !res.ExpectedNet.Equal(slip.NetPayable) {
		res.Mismatches = append(res.Mismatches, "net_payable")
	}
	res.Valid = len(res.Mismatches) == 0
	return res
}

func (s *service) Payslip(ctx context.Context, companyID, id string) (Payslip, error) {
	slip, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return Payslip{}, mapRepositoryError(err)
	}

	name := slip.EmployeeID.String()
	period, _ := ParsePeriod(slip.SalaryPeriod)
	if profile, err := s.directory.FindProfile(ctx, companyID, slip.EmployeeID.String(), period.End); err == nil {
		name = profile.FullName
	} else {
		s.log(ctx).Warn("employee profile unavailable for payslip",
			zap.String("salary_slip_id", id),
			zap.Error(err),
		)
	}

	content, err := buildSimplePayslipPDF(payslipLines(*slip, name))
	if err != nil {
		return Payslip{}, err
	}
	return Payslip{FileName: slip.SlipReference + ".pdf", Content: content}, nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if slip.Status == StatusPaid {
		return payrollerrors.ErrDeletePaidSlip
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.log(ctx).Info("salary slip deleted",
		zap.String("company_id", companyID),
		zap.String("salary_slip_id", id),
		zap.String("slip_reference", slip.SlipReference),
	)
	return nil
}

func (s *service) enqueue(
	ctx context.Context,
	tx *sql.Tx,
	aggregateType, aggregateID, eventType, topic string,
	event any,
) error {
	if s.outbox == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	requestID := contextutil.GetRequestID(ctx)
	return s.outbox.WithTx(tx).Create(ctx,
		kafka.NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic, payload))
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func mapToResponse(slip SalarySlip) SalarySlipResponse {
	detail := slip.TaxBreakdown.Data()
	resp := SalarySlipResponse{
		ID:               slip.ID.String(),
		CompanyID:        slip.CompanyID.String(),
		EmployeeID:       slip.EmployeeID.String(),
		SlipReference:    slip.SlipReference,
		SalaryPeriod:     slip.SalaryPeriod,
		BasicSalary:      slip.BasicSalary,
		Benefits:         nonNil(slip.Benefits),
		Incentives:       nonNil(slip.Incentives),
		Bonuses:          nonNil(slip.Bonuses),
		Overtime:         nonNil(slip.Overtime),
		Contributions:    nonNil(slip.Contributions),
		Deductions:       nonNil(slip.Deductions),
		Advances:         nonNil(slip.Advances),
		TaxBreakdown:     detail.Breakdown,
		BelowTaxLimit:    detail.BelowMinimumLimit,
		TaxAmount:        slip.TaxAmount,
		TotalEarnings:    slip.TotalEarnings,
		TotalDeductions:  slip.TotalDeductions,
		NetPayable:       slip.NetPayable,
		Status:           slip.Status,
		GeneratedAt:      slip.GeneratedAt.Format(time.RFC3339),
		GeneratedBy:      slip.GeneratedBy.String(),
		PaymentMethod:    slip.PaymentMethod,
		PaymentReference: slip.PaymentReference,
		PaymentNotes:     slip.PaymentNotes,
	}

	if slip.PaidAt != nil {
		v := slip.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if slip.PaidBy != nil {
		v := slip.PaidBy.String()
		resp.PaidBy = &v
	}

	return resp
}

func nonNil(lines []BreakdownLine) []BreakdownLine {
	if lines == nil {
		return []BreakdownLine{}
	}
	return lines
}

package advance

import (
	"context"
	"database/sql"
	"time"

	advanceerrors "go-payroll/internal/advance/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=advance_service.go -destination=mock/advance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetAdvancesFilterRequest) ([]AdvanceResponse, error)
	GetByID(ctx context.Context, companyID, id string) (AdvanceResponse, error)
	Cancel(ctx context.Context, companyID, id string) (AdvanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("advance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("advance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateAdvanceRequest,
) (AdvanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AdvanceResponse{}, advanceerrors.ErrInvalidEmployeeID
	}
	if !req.PrincipalAmount.IsPositive() || !req.MonthlyDeduction.IsPositive() {
		return AdvanceResponse{}, advanceerrors.ErrInvalidAmount
	}
	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		return AdvanceResponse{}, err
	}
	startDate, err := parseDate(req.StartDeductionDate)
	if err != nil {
		return AdvanceResponse{}, err
	}
	if startDate.Before(issueDate) {
		return AdvanceResponse{}, advanceerrors.ErrStartBeforeIssue
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdvanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return AdvanceResponse{}, err
	}
	if !belongs {
		return AdvanceResponse{}, advanceerrors.ErrEmployeeNotInCompany
	}

	a := &SalaryAdvance{
		ID:                     uuid.New(),
		CompanyID:              companyUUID,
		EmployeeID:             employeeUUID,
		AdvanceType:            req.AdvanceType,
		PrincipalAmount:        req.PrincipalAmount,
		MonthlyDeduction:       req.MonthlyDeduction,
		RemainingBalance:       req.PrincipalAmount,
		IssueDate:              issueDate,
		StartDeductionDate:     startDate,
		ExpectedCompletionDate: ExpectedCompletion(startDate, req.PrincipalAmount, req.MonthlyDeduction),
		Status:                 StatusActive,
		Notes:                  req.Notes,
	}
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		a.CreatedBy = actorUUID
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create salary advance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return AdvanceResponse{}, err
	}

	s.logger.Info("salary advance created",
		zap.String("request_id", rid),
		zap.String("advance_id", a.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*a), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetAdvancesFilterRequest,
) ([]AdvanceResponse, error) {
	switch filter.Status {
	case "", StatusActive, StatusCompleted, StatusCancelled:
	default:
		return nil, advanceerrors.ErrInvalidStatusFilter
	}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, advanceerrors.ErrInvalidEmployeeID
		}
	}

	advances, err := s.repo.FindAll(ctx, companyID, QueryFilter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]AdvanceResponse, len(advances))
	for i, a := range advances {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (AdvanceResponse, error) {
	a, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) Cancel(ctx context.Context, companyID, id string) (AdvanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdvanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}
	if a.Status != StatusActive {
		return AdvanceResponse{}, advanceerrors.ErrCancelOnlyActive
	}

	a.Status = StatusCancelled
	if err := qtx.Update(ctx, a); err != nil {
		return AdvanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return AdvanceResponse{}, err
	}

	s.logger.Info("salary advance cancelled", zap.String("advance_id", id))
	return mapToResponse(*a), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, advanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(a SalaryAdvance) AdvanceResponse {
	resp := AdvanceResponse{
		ID:                     a.ID.String(),
		CompanyID:              a.CompanyID.String(),
		EmployeeID:             a.EmployeeID.String(),
		AdvanceType:            a.AdvanceType,
		PrincipalAmount:        a.PrincipalAmount,
		MonthlyDeduction:       a.MonthlyDeduction,
		RemainingBalance:       a.RemainingBalance,
		IssueDate:              a.IssueDate.Format("2006-01-02"),
		StartDeductionDate:     a.StartDeductionDate.Format("2006-01-02"),
		ExpectedCompletionDate: a.ExpectedCompletionDate.Format("2006-01-02"),
		Status:                 a.Status,
		Notes:                  a.Notes,
	}
	if a.CompletedAt != nil {
		v := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	for _, p := range a.Postings {
		resp.Postings = append(resp.Postings, PostingResponse{
			ID:           p.ID.String(),
			SalarySlipID: p.SalarySlipID.String(),
			Amount:       p.Amount,
			BalanceAfter: p.BalanceAfter,
			PostedAt:     p.PostedAt.Format(time.RFC3339),
		})
	}
	return resp
}

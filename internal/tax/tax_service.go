package tax

import (
	"context"
	"database/sql"
	"errors"
	"time"

	taxerrors "go-payroll/internal/tax/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tax_service.go -destination=mock/tax_service_mock.go -package=mock
type Service interface {
	CreateSlab(ctx context.Context, companyID string, req SlabRequest) (SlabResponse, error)
	GetSlabs(ctx context.Context, companyID string) ([]SlabResponse, error)
	UpdateSlab(ctx context.Context, companyID, id string, req SlabRequest) (SlabResponse, error)
	DeleteSlab(ctx context.Context, companyID, id string) error

	CreateExemption(ctx context.Context, companyID string, req CreateExemptionRequest) (ExemptionResponse, error)
	GetExemptions(ctx context.Context, companyID string) ([]ExemptionResponse, error)
	DeleteExemption(ctx context.Context, companyID, id string) error

	SetMinimumLimit(ctx context.Context, companyID string, req SetMinimumLimitRequest) (MinimumLimitResponse, error)
	GetMinimumLimit(ctx context.Context, companyID string) (MinimumLimitResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("tax.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tax.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateSlab(ctx context.Context, companyID string, req SlabRequest) (SlabResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SlabResponse{}, taxerrors.ErrInvalidCompanyID
	}
	if err := validateSlab(req); err != nil {
		return SlabResponse{}, err
	}

	slab := &TaxSlab{ID: uuid.New(), CompanyID: companyUUID, IsActive: true}
	applySlab(slab, req)

	if err := s.repo.CreateSlab(ctx, slab); err != nil {
		return SlabResponse{}, err
	}

	s.logger.Info("tax slab created",
		zap.String("company_id", companyID),
		zap.String("slab_id", slab.ID.String()),
	)
	return mapSlab(*slab), nil
}

func (s *service) GetSlabs(ctx context.Context, companyID string) ([]SlabResponse, error) {
	slabs, err := s.repo.FindSlabs(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]SlabResponse, len(slabs))
	for i, slab := range slabs {
		resp[i] = mapSlab(slab)
	}
	return resp, nil
}

func (s *service) UpdateSlab(ctx context.Context, companyID, id string, req SlabRequest) (SlabResponse, error) {
	if err := validateSlab(req); err != nil {
		return SlabResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SlabResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slab, err := qtx.FindSlabByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlabResponse{}, taxerrors.ErrSlabNotFound
		}
		return SlabResponse{}, err
	}

	applySlab(slab, req)
	if err := qtx.UpdateSlab(ctx, slab); err != nil {
		return SlabResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SlabResponse{}, err
	}
	return mapSlab(*slab), nil
}

func (s *service) DeleteSlab(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteSlab(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taxerrors.ErrSlabNotFound
		}
		return err
	}
	return nil
}

func (s *service) CreateExemption(ctx context.Context, companyID string, req CreateExemptionRequest) (ExemptionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ExemptionResponse{}, taxerrors.ErrInvalidCompanyID
	}
	if req.Amount.IsNegative() {
		return ExemptionResponse{}, taxerrors.ErrNegativeAmount
	}

	exemption := &TaxExemption{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Title:     req.Title,
		Amount:    req.Amount,
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.CreateExemption(ctx, exemption); err != nil {
		return ExemptionResponse{}, err
	}

	return mapExemption(*exemption), nil
}

func (s *service) GetExemptions(ctx context.Context, companyID string) ([]ExemptionResponse, error) {
	exemptions, err := s.repo.FindExemptions(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]ExemptionResponse, len(exemptions))
	for i, e := range exemptions {
		resp[i] = mapExemption(e)
	}
	return resp, nil
}

func (s *service) DeleteExemption(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteExemption(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taxerrors.ErrExemptionNotFound
		}
		return err
	}
	return nil
}

// SetMinimumLimit replaces the active limit; the previous one is deactivated
// in the same transaction.
func (s *service) SetMinimumLimit(ctx context.Context, companyID string, req SetMinimumLimitRequest) (MinimumLimitResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return MinimumLimitResponse{}, taxerrors.ErrInvalidCompanyID
	}
	if req.Threshold.IsNegative() {
		return MinimumLimitResponse{}, taxerrors.ErrNegativeAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MinimumLimitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeactivateMinimumLimits(ctx, companyID); err != nil {
		return MinimumLimitResponse{}, err
	}

	limit := &MinimumTaxLimit{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Threshold: req.Threshold,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := qtx.CreateMinimumLimit(ctx, limit); err != nil {
		return MinimumLimitResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return MinimumLimitResponse{}, err
	}

	s.logger.Info("minimum tax limit set",
		zap.String("company_id", companyID),
		zap.String("threshold", req.Threshold.StringFixed(2)),
	)
	return mapMinimumLimit(*limit), nil
}

func (s *service) GetMinimumLimit(ctx context.Context, companyID string) (MinimumLimitResponse, error) {
	limit, err := s.repo.FindActiveMinimumLimit(ctx, companyID)
	if err != nil {
		return MinimumLimitResponse{}, err
	}
	if limit == nil {
		return MinimumLimitResponse{}, taxerrors.ErrMinimumLimitNotFound
	}
	return mapMinimumLimit(*limit), nil
}

var hundred = decimal.NewFromInt(100)

func validateSlab(req SlabRequest) error {
	if req.IncomeFrom.IsNegative() || req.FixedAmount.IsNegative() {
		return taxerrors.ErrNegativeAmount
	}
	if req.Percentage.IsNegative() || req.Percentage.GreaterThan(hundred) {
		return taxerrors.ErrInvalidPercentage
	}
	if req.IncomeTo != nil && req.IncomeTo.LessThan(req.IncomeFrom) {
		return taxerrors.ErrInvalidSlabRange
	}
	return nil
}

func applySlab(slab *TaxSlab, req SlabRequest) {
	slab.IncomeFrom = req.IncomeFrom
	slab.IncomeTo = decimal.NullDecimal{}
	if req.IncomeTo != nil {
		slab.IncomeTo = decimal.NewNullDecimal(*req.IncomeTo)
	}
	slab.FixedAmount = req.FixedAmount
	slab.Percentage = req.Percentage
	if req.IsActive != nil {
		slab.IsActive = *req.IsActive
	}
}

func mapSlab(slab TaxSlab) SlabResponse {
	resp := SlabResponse{
		ID:          slab.ID.String(),
		IncomeFrom:  slab.IncomeFrom,
		FixedAmount: slab.FixedAmount,
		Percentage:  slab.Percentage,
		IsActive:    slab.IsActive,
	}
	if slab.IncomeTo.Valid {
		v := slab.IncomeTo.Decimal
		resp.IncomeTo = &v
	}
	return resp
}

func mapExemption(e TaxExemption) ExemptionResponse {
	return ExemptionResponse{
		ID:       e.ID.String(),
		Title:    e.Title,
		Amount:   e.Amount,
		IsActive: e.IsActive,
	}
}

func mapMinimumLimit(l MinimumTaxLimit) MinimumLimitResponse {
	return MinimumLimitResponse{
		ID:        l.ID.String(),
		Threshold: l.Threshold,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

package component

import (
	"context"
	"database/sql"
	"time"

	componenterrors "go-payroll/internal/component/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=component_service.go -destination=mock/component_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateComponentRequest) (ComponentResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetComponentsFilterRequest) ([]ComponentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ComponentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateComponentRequest) (ComponentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	store  Store
	logger *zap.Logger
}

func NewService(db *sql.DB, store Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("component.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("component.service")
	}
	return &service{db: db, store: store, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateComponentRequest,
) (ComponentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ComponentResponse{}, componenterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ComponentResponse{}, componenterrors.ErrInvalidEmployeeID
	}

	kind := Kind(req.Kind)
	if !kind.Valid() {
		return ComponentResponse{}, componenterrors.ErrInvalidKind
	}

	c := &Component{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Kind:       kind,
		IsActive:   true,
	}
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		c.CreatedBy = actorUUID
	}
	if err := applyPayload(c, componentPayload{
		Title:           req.Title,
		Description:     req.Description,
		CalculationType: req.CalculationType,
		Amount:          req.Amount,
		DaysCount:       req.DaysCount,
		HoursPerDay:     req.HoursPerDay,
		HourlyRate:      req.HourlyRate,
		WindowStart:     req.WindowStart,
		WindowEnd:       req.WindowEnd,
		IsActive:        req.IsActive,
	}); err != nil {
		return ComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.store.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return ComponentResponse{}, err
	}
	if !belongs {
		return ComponentResponse{}, componenterrors.ErrEmployeeNotInCompany
	}

	if err := qtx.Create(ctx, c); err != nil {
		s.logger.Error("create component persist failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return ComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}

	s.logger.Info("component created",
		zap.String("component_id", c.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("kind", string(c.Kind)),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetComponentsFilterRequest,
) ([]ComponentResponse, error) {
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, componenterrors.ErrInvalidEmployeeID
		}
	}
	if filter.Kind != "" && !Kind(filter.Kind).Valid() {
		return nil, componenterrors.ErrInvalidKind
	}

	components, err := s.store.FindAll(ctx, companyID, QueryFilter{
		EmployeeID: filter.EmployeeID,
		Kind:       filter.Kind,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]ComponentResponse, len(components))
	for i, c := range components {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ComponentResponse, error) {
	c, err := s.store.FindByID(ctx, companyID, id)
	if err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateComponentRequest,
) (ComponentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.store.WithTx(tx)

	c, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}

	if err := applyPayload(c, componentPayload(req)); err != nil {
		return ComponentResponse{}, err
	}

	if err := qtx.Update(ctx, c); err != nil {
		return ComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ComponentResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

// componentPayload is the mutable part shared by create and update requests.
type componentPayload struct {
	Title           string
	Description     *string
	CalculationType string
	Amount          *decimal.Decimal
	DaysCount       *decimal.Decimal
	HoursPerDay     *decimal.Decimal
	HourlyRate      *decimal.Decimal
	WindowStart     *string
	WindowEnd       *string
	IsActive        *bool
}

func applyPayload(c *Component, p componentPayload) error {
	windowStart, err := parseOptionalDate(p.WindowStart)
	if err != nil {
		return err
	}
	windowEnd, err := parseOptionalDate(p.WindowEnd)
	if err != nil {
		return err
	}
	if windowStart != nil && windowEnd != nil && windowEnd.Before(*windowStart) {
		return componenterrors.ErrInvalidWindow
	}
	if c.Kind.RequiresWindow() && (windowStart == nil || windowEnd == nil) {
		return componenterrors.ErrWindowRequired
	}

	if c.Kind == KindOvertime {
		if p.DaysCount == nil || p.HoursPerDay == nil || p.HourlyRate == nil {
			return componenterrors.ErrInvalidOvertime
		}
		if p.DaysCount.IsNegative() || p.HoursPerDay.IsNegative() || p.HourlyRate.IsNegative() {
			return componenterrors.ErrNegativeAmount
		}
		c.CalculationType = CalculationFixed
		c.Amount = decimal.Zero
		c.DaysCount = *p.DaysCount
		c.HoursPerDay = *p.HoursPerDay
		c.HourlyRate = *p.HourlyRate
	} else {
		if !ValidCalculationType(p.CalculationType) {
			return componenterrors.ErrInvalidCalculationType
		}
		if p.Amount == nil {
			return componenterrors.ErrAmountRequired
		}
		if p.Amount.IsNegative() {
			return componenterrors.ErrNegativeAmount
		}
		c.CalculationType = p.CalculationType
		c.Amount = *p.Amount
		c.DaysCount = decimal.Zero
		c.HoursPerDay = decimal.Zero
		c.HourlyRate = decimal.Zero
	}

	c.Title = p.Title
	c.Description = p.Description
	c.WindowStart = windowStart
	c.WindowEnd = windowEnd
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	return nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, componenterrors.ErrInvalidDateFormat
	}
	return &t, nil
}

func mapToResponse(c Component) ComponentResponse {
	resp := ComponentResponse{
		ID:              c.ID.String(),
		CompanyID:       c.CompanyID.String(),
		EmployeeID:      c.EmployeeID.String(),
		Kind:            string(c.Kind),
		Title:           c.Title,
		Description:     c.Description,
		CalculationType: c.CalculationType,
		Amount:          c.Amount,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}

	if c.Kind == KindOvertime {
		days, hours, rate := c.DaysCount.String(), c.HoursPerDay.String(), c.HourlyRate.String()
		resp.DaysCount = &days
		resp.HoursPerDay = &hours
		resp.HourlyRate = &rate
		resp.CalculationType = ""
	}
	if c.WindowStart != nil {
		v := c.WindowStart.Format("2006-01-02")
		resp.WindowStart = &v
	}
	if c.WindowEnd != nil {
		v := c.WindowEnd.Format("2006-01-02")
		resp.WindowEnd = &v
	}

	return resp
}

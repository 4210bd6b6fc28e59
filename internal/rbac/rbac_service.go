package rbac

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"go-payroll/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnknownPermission = apperror.New(
	apperror.CodeInvalidInput,
	"unknown permission, expected resource:action from the payroll catalog",
	http.StatusBadRequest,
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req EnforceRequest) (bool, error)
	GrantRole(ctx context.Context, companyID string, req GrantRoleRequest) (GrantRoleResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles(companyID)
	if err != nil {
		return err
	}

	for _, er := range employeeRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			er.EmployeeID,
			er.RoleID,
			companyID,
		)
		if err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleID,
			companyID,
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)

	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.EmployeeID,
		req.CompanyID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}

// GrantRole membuat role (jika belum ada) dengan permission dari katalog payroll
// lalu mengikatnya ke subject. Aman dipanggil ulang.
func (s *service) GrantRole(ctx context.Context, companyID string, req GrantRoleRequest) (GrantRoleResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return GrantRoleResponse{}, apperror.ErrInvalidInput
	}

	defs, err := resolvePermissions(req.Permissions)
	if err != nil {
		return GrantRoleResponse{}, err
	}

	role, err := s.repo.EnsureRole(ctx, companyID, strings.TrimSpace(req.RoleName), "")
	if err != nil {
		return GrantRoleResponse{}, err
	}

	perms, err := s.repo.EnsurePermissions(ctx, defs)
	if err != nil {
		return GrantRoleResponse{}, err
	}

	ids := make([]string, 0, len(perms))
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		ids = append(ids, p.ID)
		names = append(names, p.Resource+":"+p.Action)
	}

	if err := s.repo.AssignPermissions(ctx, role.ID, ids); err != nil {
		return GrantRoleResponse{}, err
	}
	if err := s.repo.AssignRole(ctx, req.SubjectID, role.ID); err != nil {
		return GrantRoleResponse{}, err
	}

	s.logger.Info("rbac role granted",
		zap.String("company_id", companyID),
		zap.String("role", role.Name),
		zap.String("subject_id", req.SubjectID),
		zap.Int("permissions", len(ids)),
	)

	return GrantRoleResponse{
		RoleID:      role.ID,
		RoleName:    role.Name,
		SubjectID:   req.SubjectID,
		Permissions: names,
	}, nil
}

// resolvePermissions menerima "resource:action" atau "*" untuk seluruh katalog.
func resolvePermissions(keys []string) ([]PermissionDef, error) {
	catalog := make(map[string]PermissionDef, len(PayrollPermissions))
	for _, def := range PayrollPermissions {
		catalog[def.Resource+":"+def.Action] = def
	}

	var out []PermissionDef
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "*" {
			return PayrollPermissions, nil
		}
		def, ok := catalog[key]
		if !ok {
			return nil, ErrUnknownPermission
		}
		out = append(out, def)
	}
	return out, nil
}

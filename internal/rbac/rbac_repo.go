package rbac

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error)
	GetRolePermissions(companyID string) ([]RolePermissionRow, error)

	// Management
	EnsureRole(ctx context.Context, companyID, name, description string) (Role, error)
	EnsurePermissions(ctx context.Context, defs []PermissionDef) ([]Permission, error)
	AssignPermissions(ctx context.Context, roleID string, permissionIDs []string) error
	AssignRole(ctx context.Context, subjectID, roleID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type EmployeeRoleRow struct {
	EmployeeID string
	RoleID     string
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

func (r *repository) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	var result []EmployeeRoleRow

	err := r.db.
		Table("employee_roles").
		Select("employee_roles.employee_id, employee_roles.role_id").
		Joins("JOIN roles ON roles.id = employee_roles.role_id").
		Where("roles.company_id = ?", companyID).
		Scan(&result).Error

	return result, err
}

func (r *repository) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.
		Table("role_permissions").
		Select("role_permissions.role_id, permissions.resource, permissions.action").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("roles.company_id = ?", companyID).
		Scan(&result).Error

	return result, err
}

func (r *repository) EnsureRole(ctx context.Context, companyID, name, description string) (Role, error) {
	var role Role
	err := r.db.WithContext(ctx).Where("company_id = ? AND name = ?", companyID, name).First(&role).Error
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Role{}, err
	}

	role = Role{ID: uuid.NewString(), CompanyID: companyID, Name: name, Description: description}
	if err := r.db.WithContext(ctx).Create(&role).Error; err != nil {
		return Role{}, err
	}
	return role, nil
}

func (r *repository) EnsurePermissions(ctx context.Context, defs []PermissionDef) ([]Permission, error) {
	out := make([]Permission, 0, len(defs))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range defs {
			perm := Permission{
				ID:       uuid.NewString(),
				Resource: def.Resource,
				Action:   def.Action,
				Label:    def.Label,
				Category: def.Category,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&perm).Error; err != nil {
				return err
			}
			var stored Permission
			if err := tx.Where("resource = ? AND action = ?", def.Resource, def.Action).First(&stored).Error; err != nil {
				return err
			}
			out = append(out, stored)
		}
		return nil
	})
	return out, err
}

func (r *repository) AssignPermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, pID := range permissionIDs {
			row := RolePermission{RoleID: roleID, PermissionID: pID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) AssignRole(ctx context.Context, subjectID, roleID string) error {
	row := EmployeeRole{EmployeeID: subjectID, RoleID: roleID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

package rbac

import "go-payroll/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type GrantRoleRequest struct {
	SubjectID   string   `json:"subject_id" binding:"required,uuid"`
	RoleName    string   `json:"role_name" binding:"required,max=100"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

type GrantRoleResponse struct {
	RoleID      string   `json:"role_id"`
	RoleName    string   `json:"role_name"`
	SubjectID   string   `json:"subject_id"`
	Permissions []string `json:"permissions"`
}

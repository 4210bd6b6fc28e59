package rbac

import "time"

type Role struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	CompanyID   string `gorm:"type:uuid;not null;uniqueIndex:uq_role_company_name"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:uq_role_company_name"`
	Description string `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Role) TableName() string { return "roles" }

type Permission struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	Resource string `gorm:"type:varchar(100);not null;uniqueIndex:uq_permission_resource_action"`
	Action   string `gorm:"type:varchar(50);not null;uniqueIndex:uq_permission_resource_action"`
	Label    string `gorm:"type:varchar(150)"`
	Category string `gorm:"type:varchar(100)"`
}

func (Permission) TableName() string { return "permissions" }

// EmployeeRole mengikat subject (employee_id atau user_id) ke role.
type EmployeeRole struct {
	EmployeeID string `gorm:"type:uuid;primaryKey"`
	RoleID     string `gorm:"type:uuid;primaryKey"`
}

func (EmployeeRole) TableName() string { return "employee_roles" }

type RolePermission struct {
	RoleID       string `gorm:"type:uuid;primaryKey"`
	PermissionID string `gorm:"type:uuid;primaryKey"`
}

func (RolePermission) TableName() string { return "role_permissions" }

type PermissionDef struct {
	Resource string
	Action   string
	Label    string
	Category string
}

// PayrollPermissions adalah katalog permission yang dipakai route payroll.
var PayrollPermissions = []PermissionDef{
	{Resource: "salary_slip", Action: "read", Label: "View salary slips", Category: "Payroll"},
	{Resource: "salary_slip", Action: "create", Label: "Generate salary slips", Category: "Payroll"},
	{Resource: "salary_slip", Action: "pay", Label: "Mark salary slips as paid", Category: "Payroll"},
	{Resource: "salary_slip", Action: "delete", Label: "Delete salary slips", Category: "Payroll"},
	{Resource: "payroll_component", Action: "read", Label: "View payroll components", Category: "Payroll"},
	{Resource: "payroll_component", Action: "create", Label: "Create payroll components", Category: "Payroll"},
	{Resource: "payroll_component", Action: "update", Label: "Update payroll components", Category: "Payroll"},
	{Resource: "payroll_component", Action: "delete", Label: "Delete payroll components", Category: "Payroll"},
	{Resource: "salary_advance", Action: "read", Label: "View salary advances", Category: "Payroll"},
	{Resource: "salary_advance", Action: "create", Label: "Create salary advances", Category: "Payroll"},
	{Resource: "salary_advance", Action: "update", Label: "Cancel salary advances", Category: "Payroll"},
	{Resource: "tax_config", Action: "read", Label: "View tax configuration", Category: "Tax"},
	{Resource: "tax_config", Action: "create", Label: "Create tax configuration", Category: "Tax"},
	{Resource: "tax_config", Action: "update", Label: "Update tax configuration", Category: "Tax"},
	{Resource: "tax_config", Action: "delete", Label: "Delete tax configuration", Category: "Tax"},
	{Resource: "role", Action: "manage", Label: "Grant payroll roles", Category: "Access"},
}

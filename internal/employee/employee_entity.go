package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPermanent  = "PERMANENT"
	StatusContract   = "CONTRACT"
	StatusProbation  = "PROBATION"
	StatusTerminated = "TERMINATED"
	StatusResigned   = "RESIGNED"
	StatusInactive   = "INACTIVE"
)

// inactiveStatuses keluar dari populasi payroll bulk.
var inactiveStatuses = []string{StatusTerminated, StatusResigned, StatusInactive}

// Employee mirrors the staff record owned by the HR core. Payroll only reads it.
type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber   string    `gorm:"type:varchar(50)"`
	FullName         string
	Email            string `gorm:"uniqueIndex:uq_employee_email"`
	EmploymentStatus string `gorm:"type:varchar(30);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// Salary is one row of an employee's base salary history.
type Salary struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;index:idx_employee_salary_effective"`
	BaseSalary    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	EffectiveDate time.Time       `gorm:"type:date;index:idx_employee_salary_effective"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Salary) TableName() string {
	return "employee_salaries"
}

// Profile is the payroll view of an employee as of a given day.
type Profile struct {
	ID         uuid.UUID
	FullName   string
	BaseSalary decimal.Decimal
	IsActive   bool
}

func IsActiveStatus(status string) bool {
	for _, s := range inactiveStatuses {
		if s == status {
			return false
		}
	}
	return true
}

package app

import (
	"go-payroll/internal/advance"
	"go-payroll/internal/component"
	"go-payroll/internal/config"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/tax"

	"gorm.io/gorm"
)

// OpenDatabase membuka postgres (dengan retry) atau sqlite sesuai DB_DRIVER.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return connection.OpenSQLite(cfg.SQLitePath)
	}
	return connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&employee.Salary{},
		&component.Component{},
		&advance.SalaryAdvance{},
		&advance.AdvancePosting{},
		&tax.TaxSlab{},
		&tax.TaxExemption{},
		&tax.MinimumTaxLimit{},
		&payroll.SalarySlip{},
		&counter.CompanyCounter{},
		&kafka.OutboxEvent{},
		&rbac.Role{},
		&rbac.Permission{},
		&rbac.EmployeeRole{},
		&rbac.RolePermission{},
	)
}

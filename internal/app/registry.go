package app

import (
	"database/sql"

	"go-payroll/internal/advance"
	"go-payroll/internal/component"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/tax"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Modules berisi service yang dipakai bersama oleh API, consumer, dan payrollctl.
type Modules struct {
	RBAC       rbac.Service
	Components component.Service
	Advances   advance.Service
	Tax        tax.Service
	Payroll    payroll.Service
}

func BuildModules(db *sql.DB, gormDB *gorm.DB, rdb *redis.Client) (*Modules, error) {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	componentStore := component.NewStore(gormDB)
	advanceRepo := advance.NewRepository(gormDB)
	taxRepo := tax.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}

	// --- Services ---
	payrollService := payroll.NewService(payroll.Deps{
		DB:         db,
		Repo:       payrollRepo,
		Directory:  employee.NewDirectory(gormDB),
		Components: componentStore,
		Ledger:     advance.NewLedger(advanceRepo),
		Tax:        tax.NewResolver(taxRepo),
		Counter:    counter.NewRepository(gormDB),
		Outbox:     outboxRepo,
		Redis:      rdb,
		Logger:     zap.L(),
	})

	return &Modules{
		RBAC:       rbac.NewService(rbacRepo, enforcer),
		Components: component.NewService(db, componentStore),
		Advances:   advance.NewService(db, advanceRepo),
		Tax:        tax.NewService(db, taxRepo),
		Payroll:    payrollService,
	}, nil
}

func registerModules(router *gin.Engine, m *Modules, rdb *redis.Client) {
	// --- Handlers ---
	componentHandler := component.NewHandler(m.Components)
	advanceHandler := advance.NewHandler(m.Advances)
	taxHandler := tax.NewHandler(m.Tax)
	payrollHandler := payroll.NewHandlerWithRedis(m.Payroll, rdb)
	rbacHandler := rbac.NewHandler(m.RBAC)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		component.RegisterRoutes(api, componentHandler, m.RBAC)
		advance.RegisterRoutes(api, advanceHandler, m.RBAC)
		tax.RegisterRoutes(api, taxHandler, m.RBAC)
		payroll.RegisterRoutes(api, payrollHandler, m.RBAC, rdb)
		rbac.RegisterRoutes(api, rbacHandler, m.RBAC)
	}
}

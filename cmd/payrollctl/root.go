package main

import (
	"context"
	"database/sql"

	"go-payroll/internal/app"
	"go-payroll/internal/config"
	"go-payroll/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var version = "1.0.0"

type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "payrollctl",
		Short: "Operator CLI for the payroll engine",
		Long: `payrollctl runs payroll operations directly against the database:
schema migration, single slip generation, bulk runs with a CSV report,
and role grants for the HTTP API.

Configuration is read from the environment (and .env), see DB_DRIVER,
DB_HOST, SQLITE_PATH and REDIS_ADDR.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			rt.cfg = cfg
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	root.AddCommand(
		newMigrateCmd(rt),
		newGenerateCmd(rt),
		newBulkCmd(rt),
		newGrantCmd(rt),
	)
	return root
}

// open membuka database dan, bila dikonfigurasi, redis untuk lock bulk.
func (rt *runtime) open() (*gorm.DB, *sql.DB, *redis.Client, func(), error) {
	gormDB, err := app.OpenDatabase(rt.cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var rdb *redis.Client
	if rt.cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(rt.cfg.RedisAddr, 3)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, nil, nil, err
		}
	}

	closeFn := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}
	return gormDB, sqlDB, rdb, closeFn, nil
}

func (rt *runtime) modules() (*app.Modules, func(), error) {
	gormDB, sqlDB, rdb, closeFn, err := rt.open()
	if err != nil {
		return nil, nil, err
	}
	m, err := app.BuildModules(sqlDB, gormDB, rdb)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return m, closeFn, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

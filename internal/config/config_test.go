package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "test.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "test.db", cfg.SQLitePath)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_PostgresRequiresHost(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "payroll")
	t.Setenv("DB_NAME", "payroll")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("OUTBOX_POLL_INTERVAL", "soon")

	_, err := Load()

	assert.Error(t, err)
}

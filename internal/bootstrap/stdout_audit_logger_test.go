package bootstrap_test

import (
	"context"
	"testing"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	var logger bootstrap.AuditLogger = bootstrap.NewStdoutAuditLogger()
	logger.Log(context.Background(), bootstrap.AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})

	entries := logs.FilterMessage("audit event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
		assert.Equal(t, "audit", entries[0].LoggerName)
	}
}

func TestStdoutAuditLogger_RequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "req-42")
	logger.Log(ctx, bootstrap.AuditLog{Action: "SLIP_PAID", Message: "slip paid"})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.NotContains(t, fields, "meta")
	}
}

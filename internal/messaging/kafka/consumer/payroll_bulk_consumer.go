package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BulkRunner dijalankan untuk setiap event bulk yang diterima.
type BulkRunner interface {
	BulkGenerate(ctx context.Context, companyID, actorID string, req payroll.BulkGenerateRequest) (payroll.BulkResult, error)
}

func ConsumePayrollBulkRequested(
	ctx context.Context,
	reader MessageReader,
	runner BulkRunner,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_bulk")
	log.Info("payroll bulk consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll bulk consumer stopped")
				return
			}
			log.Error("fetch payroll bulk message failed", zap.Error(err))
			continue
		}

		handlePayrollBulkMessage(ctx, reader, runner, log, msg)
	}
}

func handlePayrollBulkMessage(
	ctx context.Context,
	reader MessageReader,
	runner BulkRunner,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.PayrollBulkRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll bulk event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	// request_id asal ikut ke log service dan event outbox hasil run ini
	runLog := log.With(zap.String("request_id", event.RequestID))
	runCtx := contextutil.WithLogger(contextutil.WithRequestID(ctx, event.RequestID), runLog)

	result, err := runner.BulkGenerate(runCtx, event.CompanyID, event.RequestedBy, payroll.BulkGenerateRequest{
		SalaryPeriod: event.SalaryPeriod,
		EmployeeIDs:  event.EmployeeIDs,
	})
	if err != nil {
		// Request rusak tidak akan pernah berhasil, jadi tetap di-commit.
		if isPermanent(err) {
			runLog.Warn("payroll bulk event rejected",
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			return
		}

		runLog.Error("payroll bulk run failed",
			zap.String("company_id", event.CompanyID),
			zap.String("salary_period", event.SalaryPeriod),
			zap.Error(err),
		)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit payroll bulk message failed", zap.Error(err))
		return
	}

	runLog.Info("payroll bulk run completed",
		zap.String("company_id", event.CompanyID),
		zap.String("salary_period", result.SalaryPeriod),
		zap.Int("generated", result.GeneratedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("failed", len(result.Errors)),
	)
}

func isPermanent(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.HTTPStatus == http.StatusBadRequest
}

package producer

import (
	"context"
	"time"

	"go-payroll/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultBatchSize    = 50
)

// Worker memindahkan event outbox yang pending ke kafka.
type Worker struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int
}

// DrainStats adalah hasil satu putaran Drain.
type DrainStats struct {
	Sent   int
	Failed int
}

func NewWorker(repo kafka.OutboxRepository, writer MessageWriter, logger *zap.Logger, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Worker{
		repo:         repo,
		writer:       writer,
		logger:       logger.Named("kafka.producer.worker"),
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
	}
}

// Run memanggil Drain setiap poll interval sampai ctx selesai.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.pollInterval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := w.Drain(ctx); err != nil {
				w.logger.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

// Drain mengirim satu batch event. Kegagalan per event dicatat di outbox
// (retry dengan backoff) dan tidak menghentikan batch.
func (w *Worker) Drain(ctx context.Context) (DrainStats, error) {
	var stats DrainStats

	events, err := w.repo.ListPending(ctx, w.batchSize)
	if err != nil {
		return stats, err
	}
	if len(events) == 0 {
		return stats, nil
	}

	for _, event := range events {
		log := w.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
		if event.RequestID != "" {
			log = log.With(zap.String("request_id", event.RequestID))
		}

		if err := publishEvent(ctx, w.writer, event); err != nil {
			stats.Failed++
			log.Warn("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			if markErr := w.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox failed failed", zap.Error(markErr))
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			// event sudah terkirim; consumer harus idempotent terhadap kiriman ulang
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		stats.Sent++
	}

	w.logger.Info("outbox batch drained", zap.Int("sent", stats.Sent), zap.Int("failed", stats.Failed))
	return stats, nil
}

package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// NotificationRetrier re-attempts delivery of previously failed
// notifications. Implemented by the notify.Dispatcher.
type NotificationRetrier interface {
	RetryFailed(ctx context.Context)
}

// NotificationRetryJob periodically drains the dispatcher's retry queue.
// Runs every thirty seconds; delivery remains best-effort, the job only
// gives failed notifications another chance.
type NotificationRetryJob struct {
	retrier NotificationRetrier
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationRetryJob creates a job that retries failed notification
// deliveries through the given retrier.
func NewNotificationRetryJob(retrier NotificationRetrier, logger *slog.Logger) *NotificationRetryJob {
	return &NotificationRetryJob{
		retrier: retrier,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "notification_retry_job"),
	}
}

// Start begins the retry job, running every thirty seconds.
func (j *NotificationRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.retrier.RetryFailed(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the retry job.
func (j *NotificationRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}

package ports

import (
	"context"

	"careshift/internal/core/domain/model/kernel"
)

// Notification template keys.
const (
	NotificationJobApplied           = "job_applied"
	NotificationApplicationAccepted  = "application_accepted"
	NotificationApplicationRejected  = "application_rejected"
	NotificationApplicationCancelled = "application_cancelled"
	NotificationJobNotAvailable      = "job_not_available"
	NotificationWorkerCheckedIn      = "worker_checked_in"
	NotificationWorkerCheckedOut     = "worker_checked_out"
	NotificationJobCompleted         = "job_completed"
	NotificationApplicationReported  = "application_reported"
)

// Notification is a message to be delivered to a user outside the core
// transaction.
type Notification struct {
	TemplateKey  string
	TargetUserID kernel.UUID
	Variables    map[string]string
}

// NotificationDispatcher delivers notifications on a best-effort basis.
// Dispatch must never fail the calling operation; failed deliveries are
// queued and retried by the dispatcher itself.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification Notification)
}

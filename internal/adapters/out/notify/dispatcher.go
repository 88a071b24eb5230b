// Package notify delivers user notifications outside the core transaction.
// Command handlers hand notifications to the dispatcher after commit;
// delivery failure never propagates back into the operation. Failed
// deliveries are parked in a bounded in-memory queue and re-attempted by a
// background job.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"careshift/internal/core/ports"
)

// maxQueued bounds the retry queue. When full, the oldest entry is dropped;
// notifications are best-effort and must not grow memory without bound.
const maxQueued = 1000

// Sender performs a single delivery attempt for one notification.
type Sender interface {
	Send(ctx context.Context, notification ports.Notification) error
}

// Dispatcher implements ports.NotificationDispatcher on top of a Sender.
// It never returns delivery errors to callers; failures are logged and
// queued for retry.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger

	mu     sync.Mutex
	queued []ports.Notification
}

// NewDispatcher creates a dispatcher delivering through the given sender.
func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// Dispatch attempts delivery once and queues the notification on failure.
func (d *Dispatcher) Dispatch(ctx context.Context, notification ports.Notification) {
	if err := d.sender.Send(ctx, notification); err != nil {
		d.logger.WarnContext(ctx, "Notification delivery failed, queued for retry",
			"template", notification.TemplateKey,
			"target", notification.TargetUserID.String(),
			"error", err)
		d.enqueue(notification)
	}
}

// RetryFailed re-attempts every queued notification once.
// Notifications that fail again go back to the queue.
func (d *Dispatcher) RetryFailed(ctx context.Context) {
	d.mu.Lock()
	pending := d.queued
	d.queued = nil
	d.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	delivered := 0
	for _, notification := range pending {
		if err := d.sender.Send(ctx, notification); err != nil {
			d.enqueue(notification)
			continue
		}
		delivered++
	}

	d.logger.InfoContext(ctx, "Notification retry pass finished",
		"attempted", len(pending), "delivered", delivered)
}

// QueuedCount returns the number of notifications awaiting retry.
func (d *Dispatcher) QueuedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queued)
}

func (d *Dispatcher) enqueue(notification ports.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.queued) >= maxQueued {
		d.queued = d.queued[1:]
	}
	d.queued = append(d.queued, notification)
}

// LogSender is a Sender that writes notifications to the log. It stands in
// for a real push/email gateway in environments that have none configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender writing through the given logger.
func NewLogSender(logger *slog.Logger) LogSender {
	return LogSender{logger: logger.With("component", "notification_log_sender")}
}

// Send logs the notification. It never fails.
func (s LogSender) Send(ctx context.Context, notification ports.Notification) error {
	s.logger.InfoContext(ctx, "Notification",
		"template", notification.TemplateKey,
		"target", notification.TargetUserID.String(),
		"variables", notification.Variables)
	return nil
}

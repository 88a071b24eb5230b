package commands

import (
	"context"

	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// CheckinToJobCommandHandler handles the worker arriving on site. Check-in
// is the point where the seat becomes irreversibly taken: every other live
// application on the job is rejected with a system message. Deferring the
// rejection from acceptance to check-in lets a no-show worker be superseded.
type CheckinToJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCheckinToJobCommandHandler creates a handler for check-ins.
func NewCheckinToJobCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) CheckinToJobCommandHandler {
	return CheckinToJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the check-in command. Only the accepted worker may check
// in, only once, and only on the job's scheduled date.
func (h *CheckinToJobCommandHandler) Handle(ctx context.Context, cmd CheckinToJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobPostRepository()
	appRepo := uow.ApplicationRepository()

	app, err := appRepo.Get(ctx, cmd.ApplicationID())
	if err != nil {
		return err
	}

	if !app.IsByWorker(cmd.WorkerID()) {
		return errs.NewAccessDeniedError("check in to job", cmd.WorkerID().String())
	}

	post, err := jobRepo.Get(ctx, app.JobPostID())
	if err != nil {
		return err
	}

	if !post.Schedule().IsOnDate(cmd.Now()) {
		return errs.NewInvalidStateError("check in to job", "outside the job's scheduled date")
	}

	if err = app.RecordCheckIn(cmd.Location(), cmd.Now()); err != nil {
		return err
	}
	if err = appRepo.Update(ctx, app); err != nil {
		return err
	}

	// The seat is now taken for good: reject every other live application.
	siblings, err := appRepo.GetLiveForJob(ctx, post.ID())
	if err != nil {
		return err
	}

	var notifications []ports.Notification
	for _, other := range siblings {
		if other.ID().IsEqual(app.ID()) {
			continue
		}
		if err = other.Reject(cmd.Now(), "another worker checked in to this job"); err != nil {
			return err
		}
		if err = appRepo.Update(ctx, other); err != nil {
			return err
		}
		notifications = append(notifications, ports.Notification{
			TemplateKey:  ports.NotificationApplicationRejected,
			TargetUserID: other.WorkerID(),
			Variables:    map[string]string{"jobPostId": post.ID().String()},
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifications = append(notifications, ports.Notification{
		TemplateKey:  ports.NotificationWorkerCheckedIn,
		TargetUserID: post.OwnerID(),
		Variables: map[string]string{
			"jobPostId": post.ID().String(),
			"location":  cmd.Location(),
		},
	})
	for _, n := range notifications {
		h.dispatcher.Dispatch(ctx, n)
	}

	return nil
}

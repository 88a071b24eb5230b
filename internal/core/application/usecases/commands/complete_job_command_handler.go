package commands

import (
	"context"

	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// CompleteJobCommandHandler handles the owner marking the job as done.
// The accepted application and its job post both complete, and every
// sibling application still pending is closed.
type CompleteJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCompleteJobCommandHandler creates a handler for job completion.
func NewCompleteJobCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) CompleteJobCommandHandler {
	return CompleteJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the completion command. Only the job owner may complete,
// only an accepted application qualifies, and a second completion fails.
func (h *CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) error {
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

	post, err := jobRepo.Get(ctx, app.JobPostID())
	if err != nil {
		return err
	}

	if !post.IsOwnedBy(cmd.ActorID()) {
		return errs.NewAccessDeniedError("complete job", cmd.ActorID().String())
	}

	if err = app.Complete(cmd.Now(), cmd.Notes()); err != nil {
		return err
	}
	if err = post.Complete(); err != nil {
		return err
	}

	if err = appRepo.Update(ctx, app); err != nil {
		return err
	}
	if err = jobRepo.Update(ctx, post); err != nil {
		return err
	}

	pending, err := appRepo.GetPendingForJob(ctx, post.ID())
	if err != nil {
		return err
	}

	var notifications []ports.Notification
	for _, sibling := range pending {
		if err = sibling.CloseBySystem(); err != nil {
			return err
		}
		if err = appRepo.Update(ctx, sibling); err != nil {
			return err
		}
		notifications = append(notifications, ports.Notification{
			TemplateKey:  ports.NotificationJobNotAvailable,
			TargetUserID: sibling.WorkerID(),
			Variables:    map[string]string{"jobPostId": post.ID().String()},
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifications = append(notifications, ports.Notification{
		TemplateKey:  ports.NotificationJobCompleted,
		TargetUserID: app.WorkerID(),
		Variables:    map[string]string{"jobPostId": post.ID().String()},
	})
	for _, n := range notifications {
		h.dispatcher.Dispatch(ctx, n)
	}

	return nil
}

package commands

import (
	"context"

	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// CloseJobPostCommandHandler handles the business logic for closing a post.
// Closing only succeeds while the post is still open; an approved post must
// have its accepted application cancelled first.
type CloseJobPostCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCloseJobPostCommandHandler creates a handler for closing job posts.
func NewCloseJobPostCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) CloseJobPostCommandHandler {
	return CloseJobPostCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the close command: the post transitions to closed, every
// pending application becomes not available, and affected workers are
// notified after the transaction commits.
func (h *CloseJobPostCommandHandler) Handle(ctx context.Context, cmd CloseJobPostCommand) error {
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

	post, err := jobRepo.Get(ctx, cmd.JobPostID())
	if err != nil {
		return err
	}

	if !post.IsOwnedBy(cmd.ActorID()) {
		return errs.NewAccessDeniedError("close job post", cmd.ActorID().String())
	}

	if err = post.Close(); err != nil {
		return err
	}

	pending, err := appRepo.GetPendingForJob(ctx, post.ID())
	if err != nil {
		return err
	}

	var notifications []ports.Notification
	for _, app := range pending {
		if err = app.MarkNotAvailable(cmd.Now(), "job post closed"); err != nil {
			return err
		}
		if err = appRepo.Update(ctx, app); err != nil {
			return err
		}
		notifications = append(notifications, ports.Notification{
			TemplateKey:  ports.NotificationJobNotAvailable,
			TargetUserID: app.WorkerID(),
			Variables:    map[string]string{"jobPostId": post.ID().String()},
		})
	}

	if err = jobRepo.Update(ctx, post); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, n := range notifications {
		h.dispatcher.Dispatch(ctx, n)
	}

	return nil
}

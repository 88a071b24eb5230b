package commands

import (
	"context"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// UpdateApplicationStatusCommandHandler handles the owner's accept/reject
// decision. Accepting approves the job and demotes the worker's other
// pending applications whose job windows overlap the accepted one to
// not-available; rejecting has no cascade.
type UpdateApplicationStatusCommandHandler struct {
	uowFactory UoWFactory
	resolver   services.ConflictResolver
	dispatcher ports.NotificationDispatcher
}

// NewUpdateApplicationStatusCommandHandler creates a handler for
// accept/reject decisions.
func NewUpdateApplicationStatusCommandHandler(
	uowFactory UoWFactory, resolver services.ConflictResolver, dispatcher ports.NotificationDispatcher,
) UpdateApplicationStatusCommandHandler {
	return UpdateApplicationStatusCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		dispatcher: dispatcher,
	}
}

// Handle processes the decision command. All status changes, including the
// not-available cascade, happen in one transaction; the worker is notified
// after commit.
func (h *UpdateApplicationStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateApplicationStatusCommand,
) error {
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
		return errs.NewAccessDeniedError("update application status", cmd.ActorID().String())
	}

	if app.Status() != application.Pending {
		return errs.NewInvalidStateError("update application status", app.Status().String())
	}
	if post.Status() != jobpost.Open {
		return errs.NewInvalidStateError("update application status", post.Status().String())
	}

	var notifications []ports.Notification
	switch cmd.Decision() {
	case DecisionAccepted:
		notifications, err = h.accept(ctx, uow, post, app, cmd)
	case DecisionRejected:
		notifications, err = h.reject(ctx, uow, app, cmd)
	}
	if err != nil {
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

func (h *UpdateApplicationStatusCommandHandler) accept(
	ctx context.Context, uow UoW,
	post *jobpost.JobPost, app *application.Application, cmd UpdateApplicationStatusCommand,
) ([]ports.Notification, error) {
	jobRepo := uow.JobPostRepository()
	appRepo := uow.ApplicationRepository()

	if err := app.Accept(cmd.Now(), cmd.ResponseMessage()); err != nil {
		return nil, err
	}
	if err := post.Approve(); err != nil {
		return nil, err
	}

	if err := appRepo.Update(ctx, app); err != nil {
		return nil, err
	}
	if err := jobRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	notifications := []ports.Notification{{
		TemplateKey:  ports.NotificationApplicationAccepted,
		TargetUserID: app.WorkerID(),
		Variables:    map[string]string{"jobPostId": post.ID().String()},
	}}

	// Demote the worker's other pending applications whose job windows
	// overlap the just-accepted one. Non-overlapping ones stay pending.
	pending, err := appRepo.GetPendingForWorker(ctx, app.WorkerID())
	if err != nil {
		return nil, err
	}

	for _, other := range pending {
		if other.ID().IsEqual(app.ID()) {
			continue
		}

		otherPost, getErr := jobRepo.Get(ctx, other.JobPostID())
		if getErr != nil {
			return nil, getErr
		}

		overlaps, overlapErr := h.resolver.HasConflict(
			post.Schedule(), []kernel.Schedule{otherPost.Schedule()},
		)
		if overlapErr != nil {
			return nil, overlapErr
		}
		if !overlaps {
			continue
		}

		if err = other.MarkNotAvailable(cmd.Now(), "an overlapping job was accepted"); err != nil {
			return nil, err
		}
		if err = appRepo.Update(ctx, other); err != nil {
			return nil, err
		}

		notifications = append(notifications, ports.Notification{
			TemplateKey:  ports.NotificationJobNotAvailable,
			TargetUserID: other.WorkerID(),
			Variables:    map[string]string{"jobPostId": otherPost.ID().String()},
		})
	}

	return notifications, nil
}

func (h *UpdateApplicationStatusCommandHandler) reject(
	ctx context.Context, uow UoW, app *application.Application, cmd UpdateApplicationStatusCommand,
) ([]ports.Notification, error) {
	if err := app.Reject(cmd.Now(), cmd.ResponseMessage()); err != nil {
		return nil, err
	}
	if err := uow.ApplicationRepository().Update(ctx, app); err != nil {
		return nil, err
	}

	return []ports.Notification{{
		TemplateKey:  ports.NotificationApplicationRejected,
		TargetUserID: app.WorkerID(),
		Variables:    map[string]string{"jobPostId": app.JobPostID().String()},
	}}, nil
}

package commands

import (
	"context"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// ReportApplicationCommandHandler attaches a report annotation to an
// application on behalf of either party. The application's status is left
// untouched; the other party is notified.
type ReportApplicationCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewReportApplicationCommandHandler creates a handler for reports.
func NewReportApplicationCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) ReportApplicationCommandHandler {
	return ReportApplicationCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the report command.
func (h *ReportApplicationCommandHandler) Handle(ctx context.Context, cmd ReportApplicationCommand) error {
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

	var actor application.Actor
	switch {
	case app.IsByWorker(cmd.ActorID()):
		actor = application.ActorWorker
	case post.IsOwnedBy(cmd.ActorID()):
		actor = application.ActorOwner
	default:
		return errs.NewAccessDeniedError("report application", cmd.ActorID().String())
	}

	if err = app.AttachReport(actor, cmd.Reason(), cmd.Message(), cmd.Now()); err != nil {
		return err
	}
	if err = appRepo.Update(ctx, app); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	target := post.OwnerID()
	if actor == application.ActorOwner {
		target = app.WorkerID()
	}
	h.dispatcher.Dispatch(ctx, ports.Notification{
		TemplateKey:  ports.NotificationApplicationReported,
		TargetUserID: target,
		Variables: map[string]string{
			"jobPostId": post.ID().String(),
			"reason":    cmd.Reason(),
		},
	})

	return nil
}

package commands

import (
	"context"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// CancelApplicationCommandHandler handles either party withdrawing a live
// application. Cancelling an accepted application reopens the job post
// regardless of whether other pending applications exist; the party that did
// not initiate the cancellation is notified.
type CancelApplicationCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCancelApplicationCommandHandler creates a handler for cancellations.
func NewCancelApplicationCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) CancelApplicationCommandHandler {
	return CancelApplicationCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the cancellation command.
func (h *CancelApplicationCommandHandler) Handle(ctx context.Context, cmd CancelApplicationCommand) error {
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
	var counterparty ports.Notification
	switch {
	case app.IsByWorker(cmd.ActorID()):
		actor = application.ActorWorker
		counterparty.TargetUserID = post.OwnerID()
	case post.IsOwnedBy(cmd.ActorID()):
		actor = application.ActorOwner
		counterparty.TargetUserID = app.WorkerID()
	default:
		return errs.NewAccessDeniedError("cancel application", cmd.ActorID().String())
	}

	wasAccepted := app.Status() == application.Accepted

	if err = app.Cancel(actor, cmd.Reason(), cmd.Message(), cmd.Now()); err != nil {
		return err
	}
	if err = appRepo.Update(ctx, app); err != nil {
		return err
	}

	// A cancelled acceptance puts the seat back on the board.
	if wasAccepted {
		if err = post.Reopen(); err != nil {
			return err
		}
		if err = jobRepo.Update(ctx, post); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	counterparty.TemplateKey = ports.NotificationApplicationCancelled
	counterparty.Variables = map[string]string{
		"jobPostId": post.ID().String(),
		"reason":    cmd.Reason(),
		"actor":     string(actor),
	}
	h.dispatcher.Dispatch(ctx, counterparty)

	return nil
}

package commands

import (
	"context"

	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// CheckoutFromJobCommandHandler handles the worker leaving the site.
// Checkout requires a prior check-in and happens at most once.
type CheckoutFromJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCheckoutFromJobCommandHandler creates a handler for check-outs.
func NewCheckoutFromJobCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) CheckoutFromJobCommandHandler {
	return CheckoutFromJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the check-out command.
func (h *CheckoutFromJobCommandHandler) Handle(ctx context.Context, cmd CheckoutFromJobCommand) error {
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
		return errs.NewAccessDeniedError("check out from job", cmd.WorkerID().String())
	}

	post, err := jobRepo.Get(ctx, app.JobPostID())
	if err != nil {
		return err
	}

	if err = app.RecordCheckOut(cmd.Location(), cmd.Now()); err != nil {
		return err
	}
	if err = appRepo.Update(ctx, app); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, ports.Notification{
		TemplateKey:  ports.NotificationWorkerCheckedOut,
		TargetUserID: post.OwnerID(),
		Variables: map[string]string{
			"jobPostId": post.ID().String(),
			"location":  cmd.Location(),
		},
	})

	return nil
}

package commands

import (
	"context"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// RepostExpiredJobCommandHandler reposts a job that stayed open past its
// date: the clone takes the new slot, the original closes and any pending
// applications on it are closed with it.
type RepostExpiredJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewRepostExpiredJobCommandHandler creates a handler for expired reposts.
func NewRepostExpiredJobCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) RepostExpiredJobCommandHandler {
	return RepostExpiredJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the expired repost command. A job is expired when it is
// still open but its date has passed.
func (h *RepostExpiredJobCommandHandler) Handle(ctx context.Context, cmd RepostExpiredJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	eligible := func(post *jobpost.JobPost) error {
		if post.Status() != jobpost.Open || !post.Schedule().DateHasPassed(cmd.Now()) {
			return errs.NewInvalidStateError("repost expired job", post.Status().String())
		}
		return nil
	}

	return repostJob(ctx, h.uowFactory, h.dispatcher, cmd.repostRequest, eligible)
}

// RepostPastJobCommandHandler reposts a finished job (completed, cancelled
// or closed) onto a new slot as a fresh open post.
type RepostPastJobCommandHandler struct {
	uowFactory UoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewRepostPastJobCommandHandler creates a handler for past reposts.
func NewRepostPastJobCommandHandler(
	uowFactory UoWFactory, dispatcher ports.NotificationDispatcher,
) RepostPastJobCommandHandler {
	return RepostPastJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the past repost command. A job is past when it is neither
// open nor approved anymore.
func (h *RepostPastJobCommandHandler) Handle(ctx context.Context, cmd RepostPastJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	eligible := func(post *jobpost.JobPost) error {
		if post.Status() == jobpost.Open || post.Status() == jobpost.Approved {
			return errs.NewInvalidStateError("repost past job", post.Status().String())
		}
		return nil
	}

	return repostJob(ctx, h.uowFactory, h.dispatcher, cmd.repostRequest, eligible)
}

// repostJob runs the shared repost flow: ownership and eligibility checks,
// slot uniqueness for the new schedule, clone creation, closing the original
// when it is still closable, and closing its pending applications.
func repostJob(
	ctx context.Context,
	uowFactory UoWFactory,
	dispatcher ports.NotificationDispatcher,
	request repostRequest,
	eligible func(*jobpost.JobPost) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobPostRepository()
	appRepo := uow.ApplicationRepository()

	post, err := jobRepo.Get(ctx, request.JobPostID())
	if err != nil {
		return err
	}

	if !post.IsOwnedBy(request.ActorID()) {
		return errs.NewAccessDeniedError("repost job", request.ActorID().String())
	}

	if err = eligible(post); err != nil {
		return err
	}

	taken, err := jobRepo.ExistsForOwnerAt(ctx, post.OwnerID(), request.NewSchedule())
	if err != nil {
		return err
	}
	if taken {
		return errs.NewConflictError("job schedule", request.NewSchedule().DateString())
	}

	clone, err := post.CloneForSchedule(request.NewJobPostID(), request.NewSchedule())
	if err != nil {
		return err
	}

	if post.Status() == jobpost.Open {
		if err = post.Close(); err != nil {
			return err
		}
		if err = jobRepo.Update(ctx, post); err != nil {
			return err
		}
	}

	pending, err := appRepo.GetPendingForJob(ctx, post.ID())
	if err != nil {
		return err
	}

	var notifications []ports.Notification
	for _, app := range pending {
		if err = app.CloseBySystem(); err != nil {
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

	if err = jobRepo.Add(ctx, clone); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, n := range notifications {
		dispatcher.Dispatch(ctx, n)
	}

	return nil
}

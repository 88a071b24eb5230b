package commands

import (
	"context"
	"errors"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// ApplyForJobCommandHandler handles the business logic of applying to a job.
// It enforces all three cross-application invariants up front: one
// application per worker per job, at most one accepted application per job,
// and no overlap with the worker's already accepted windows.
type ApplyForJobCommandHandler struct {
	uowFactory UoWFactory
	resolver   services.ConflictResolver
	dispatcher ports.NotificationDispatcher
}

// NewApplyForJobCommandHandler creates a handler for job applications.
func NewApplyForJobCommandHandler(
	uowFactory UoWFactory, resolver services.ConflictResolver, dispatcher ports.NotificationDispatcher,
) ApplyForJobCommandHandler {
	return ApplyForJobCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		dispatcher: dispatcher,
	}
}

// Handle processes the apply command. The pending application and its
// preference selections are written in one transaction; the owner is
// notified after commit on a best-effort basis.
//
//nolint:cyclop //the invariant checks are a flat sequence
func (h *ApplyForJobCommandHandler) Handle(ctx context.Context, cmd ApplyForJobCommand) error {
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

	if post.Status() != jobpost.Open {
		return errs.NewInvalidStateError("apply for job", post.Status().String())
	}
	if post.Schedule().DateHasPassed(cmd.Now()) {
		return errs.NewInvalidStateError("apply for job", "job date has passed")
	}

	for _, preferenceID := range cmd.PreferenceIDs() {
		if !post.DeclaresPreference(preferenceID) {
			return errs.NewValueIsInvalidError("preferenceIds")
		}
	}

	// Invariant: a worker applies to a given job at most once.
	if _, err = appRepo.GetByJobAndWorker(ctx, cmd.JobPostID(), cmd.WorkerID()); err == nil {
		return errs.NewConflictError("application", cmd.WorkerID().String())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	// Invariant: at most one accepted application per job.
	if _, err = appRepo.GetAcceptedForJob(ctx, cmd.JobPostID()); err == nil {
		return errs.NewConflictError("accepted application", cmd.JobPostID().String())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	// Invariant: no overlap with the worker's accepted windows.
	accepted, err := acceptedSchedulesForWorker(ctx, jobRepo, appRepo, cmd.WorkerID())
	if err != nil {
		return err
	}
	conflict, err := h.resolver.HasConflict(post.Schedule(), accepted)
	if err != nil {
		return err
	}
	if conflict {
		return errs.NewConflictError("job schedule", post.Schedule().String())
	}

	pending, err := application.NewApplication(
		cmd.ApplicationID(), cmd.JobPostID(), cmd.WorkerID(), cmd.Message(), cmd.PreferenceIDs(),
	)
	if err != nil {
		return err
	}

	if err = appRepo.Add(ctx, pending); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, ports.Notification{
		TemplateKey:  ports.NotificationJobApplied,
		TargetUserID: post.OwnerID(),
		Variables: map[string]string{
			"jobPostId":     post.ID().String(),
			"applicationId": pending.ID().String(),
		},
	})

	return nil
}

// acceptedSchedulesForWorker resolves the schedules of every job the worker
// currently holds an accepted application on. Jobs deleted underneath an
// application are skipped.
func acceptedSchedulesForWorker(
	ctx context.Context,
	jobRepo ports.JobPostRepository,
	appRepo ports.ApplicationRepository,
	workerID kernel.UUID,
) ([]kernel.Schedule, error) {
	acceptedApps, err := appRepo.GetAcceptedForWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if len(acceptedApps) == 0 {
		return nil, nil
	}

	jobIDs := make([]kernel.UUID, 0, len(acceptedApps))
	for _, app := range acceptedApps {
		jobIDs = append(jobIDs, app.JobPostID())
	}

	posts, err := jobRepo.GetByIDs(ctx, jobIDs)
	if err != nil {
		return nil, err
	}

	schedules := make([]kernel.Schedule, 0, len(posts))
	for _, post := range posts {
		schedules = append(schedules, post.Schedule())
	}
	return schedules, nil
}

package commands

import (
	"context"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
)

// UpdateJobPostCommandHandler handles the business logic for editing a post.
// Only the owner may edit; a schedule change re-checks the owner's slot
// uniqueness for the new date and start time.
type UpdateJobPostCommandHandler struct {
	uowFactory JobPostUoWFactory
}

// NewUpdateJobPostCommandHandler creates a handler for job post updates.
func NewUpdateJobPostCommandHandler(uowFactory JobPostUoWFactory) UpdateJobPostCommandHandler {
	return UpdateJobPostCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job post update command.
func (h *UpdateJobPostCommandHandler) Handle(ctx context.Context, cmd UpdateJobPostCommand) error {
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

	post, err := jobRepo.Get(ctx, cmd.JobPostID())
	if err != nil {
		return err
	}

	if !post.IsOwnedBy(cmd.ActorID()) {
		return errs.NewAccessDeniedError("update job post", cmd.ActorID().String())
	}

	patch := cmd.Patch()
	if patch.Schedule != nil && movesSlot(post.Schedule(), *patch.Schedule) {
		taken, existsErr := jobRepo.ExistsForOwnerAt(ctx, post.OwnerID(), *patch.Schedule)
		if existsErr != nil {
			return existsErr
		}
		if taken {
			return errs.NewConflictError("job schedule", patch.Schedule.DateString())
		}
	}

	if err = post.ApplyPatch(patch); err != nil {
		return err
	}

	if err = jobRepo.Update(ctx, post); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// movesSlot reports whether the patched schedule lands on a different
// (date, startTime) slot than the stored one. Re-saving the same slot must
// not trip the owner's uniqueness check against the post itself.
func movesSlot(current kernel.Schedule, patched kernel.Schedule) bool {
	return current.DateString() != patched.DateString() ||
		current.StartTimeString() != patched.StartTimeString()
}

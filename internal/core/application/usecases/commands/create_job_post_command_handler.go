package commands

import (
	"context"
	"strings"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
)

// CreateJobPostCommandHandler handles the business logic for posting jobs.
// A recurring series is expanded up front and the whole batch is collision
// checked against the owner's existing posts before anything is written: one
// colliding date fails the entire request, listing every collision.
type CreateJobPostCommandHandler struct {
	uowFactory JobPostUoWFactory
}

// NewCreateJobPostCommandHandler creates a handler for posting jobs.
// Requires a JobPostUoWFactory for transactional persistence operations.
func NewCreateJobPostCommandHandler(uowFactory JobPostUoWFactory) CreateJobPostCommandHandler {
	return CreateJobPostCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job post creation command.
// Creates the post (and all recurrence children) within one transaction.
// Automatically rolls back on any error to prevent partial series.
func (h *CreateJobPostCommandHandler) Handle(ctx context.Context, cmd CreateJobPostCommand) error {
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

	posts, err := buildPosts(cmd)
	if err != nil {
		return err
	}

	var collisions []string
	for _, post := range posts {
		taken, existsErr := jobRepo.ExistsForOwnerAt(ctx, cmd.OwnerID(), post.Schedule())
		if existsErr != nil {
			return existsErr
		}
		if taken {
			collisions = append(collisions, post.Schedule().DateString())
		}
	}
	if len(collisions) > 0 {
		return errs.NewConflictError("job schedule", strings.Join(collisions, ", "))
	}

	for _, post := range posts {
		if err = jobRepo.Add(ctx, post); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// buildPosts materializes the command into aggregates: the (possibly
// recurring) parent first, then one child per expanded date.
func buildPosts(cmd CreateJobPostCommand) ([]*jobpost.JobPost, error) {
	if !cmd.IsRecurring() {
		post, err := jobpost.NewJobPost(cmd.JobPostID(), cmd.OwnerID(), cmd.Details())
		if err != nil {
			return nil, err
		}
		return []*jobpost.JobPost{post}, nil
	}

	parent, err := jobpost.NewRecurringJobPost(cmd.JobPostID(), cmd.OwnerID(), cmd.Details(), *cmd.Recurrence())
	if err != nil {
		return nil, err
	}

	posts := []*jobpost.JobPost{parent}
	seed := cmd.Details().Schedule
	for _, date := range cmd.Recurrence().ExpandDates(seed.Date()) {
		schedule, scheduleErr := kernel.NewSchedule(
			date.Format(kernel.DateLayout), seed.StartTimeString(), seed.EndTimeString(),
		)
		if scheduleErr != nil {
			return nil, scheduleErr
		}

		child, childErr := parent.SpawnChild(kernel.NewUUID(), schedule)
		if childErr != nil {
			return nil, childErr
		}
		posts = append(posts, child)
	}

	return posts, nil
}

package commands

import (
	"errors"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrUpdateJobPostCommandIsNotConstructed = errors.New(
	"UpdateJobPostCommand must be created via NewUpdateJobPostCommand constructor",
)

// UpdateJobPostCommand represents an ownership-checked partial update to a
// job post. Nil patch fields are untouched; relation sets present in the
// patch replace the stored sets wholesale.
type UpdateJobPostCommand struct { //nolint:recvcheck //using for validation
	jobPostID kernel.UUID
	actorID   kernel.UUID
	patch     jobpost.Patch

	guard guard.ConstructorGuard
}

// NewUpdateJobPostCommand creates a command to update the job post on behalf
// of the acting user.
func NewUpdateJobPostCommand(
	jobPostID kernel.UUID, actorID kernel.UUID, patch jobpost.Patch,
) (UpdateJobPostCommand, error) {
	command := UpdateJobPostCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobPostID(jobPostID),
		command.setActorID(actorID),
	); err != nil {
		return UpdateJobPostCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateJobPostCommandIsNotConstructed if validation fails.
func (c UpdateJobPostCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobPostCommandIsNotConstructed)
}

// JobPostID returns the ID of the post to update.
func (c UpdateJobPostCommand) JobPostID() kernel.UUID {
	return c.jobPostID
}

// ActorID returns the acting user's ID.
func (c UpdateJobPostCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Patch returns the partial update to apply.
func (c UpdateJobPostCommand) Patch() jobpost.Patch {
	return c.patch
}

func (c *UpdateJobPostCommand) setJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobPostID = id
	return nil
}

func (c *UpdateJobPostCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

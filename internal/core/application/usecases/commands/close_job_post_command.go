package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrCloseJobPostCommandIsNotConstructed = errors.New(
	"CloseJobPostCommand must be created via NewCloseJobPostCommand constructor",
)

// CloseJobPostCommand represents the owner taking a still-open post off the
// board. Pending applications are marked not available and their workers
// notified.
type CloseJobPostCommand struct { //nolint:recvcheck //using for validation
	jobPostID kernel.UUID
	actorID   kernel.UUID
	now       time.Time

	guard guard.ConstructorGuard
}

// NewCloseJobPostCommand creates a command to close the job post on behalf
// of the acting user.
func NewCloseJobPostCommand(
	jobPostID kernel.UUID, actorID kernel.UUID, now time.Time,
) (CloseJobPostCommand, error) {
	command := CloseJobPostCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobPostID(jobPostID),
		command.setActorID(actorID),
	); err != nil {
		return CloseJobPostCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseJobPostCommand) Validate() error {
	return c.guard.Validate(ErrCloseJobPostCommandIsNotConstructed)
}

// JobPostID returns the ID of the post to close.
func (c CloseJobPostCommand) JobPostID() kernel.UUID {
	return c.jobPostID
}

// ActorID returns the acting user's ID.
func (c CloseJobPostCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Now returns the instant the action happens at.
func (c CloseJobPostCommand) Now() time.Time {
	return c.now
}

func (c *CloseJobPostCommand) setJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobPostID = id
	return nil
}

func (c *CloseJobPostCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

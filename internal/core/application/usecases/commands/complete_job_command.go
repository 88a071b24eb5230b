package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand represents the job owner marking the accepted
// application's work as done.
type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	actorID       kernel.UUID
	notes         string
	now           time.Time

	guard guard.ConstructorGuard
}

// NewCompleteJobCommand creates a command to complete the job behind the
// accepted application on behalf of the acting owner.
func NewCompleteJobCommand(
	applicationID kernel.UUID, actorID kernel.UUID, notes string, now time.Time,
) (CompleteJobCommand, error) {
	command := CompleteJobCommand{
		notes: notes,
		now:   now,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setApplicationID(applicationID),
		command.setActorID(actorID),
	); err != nil {
		return CompleteJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

// ApplicationID returns the accepted application being completed.
func (c CompleteJobCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// ActorID returns the acting user's ID.
func (c CompleteJobCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Notes returns the owner's completion notes.
func (c CompleteJobCommand) Notes() string {
	return c.notes
}

// Now returns the instant the completion happens at.
func (c CompleteJobCommand) Now() time.Time {
	return c.now
}

func (c *CompleteJobCommand) setApplicationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.applicationID = id
	return nil
}

func (c *CompleteJobCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrCancelApplicationCommandIsNotConstructed = errors.New(
	"CancelApplicationCommand must be created via NewCancelApplicationCommand constructor",
)

// CancelApplicationCommand represents either party withdrawing a live
// application. The handler works out which side the actor is on.
type CancelApplicationCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	actorID       kernel.UUID
	reason        string
	message       string
	now           time.Time

	guard guard.ConstructorGuard
}

// NewCancelApplicationCommand creates a command to cancel the application on
// behalf of the acting user with a structured reason.
func NewCancelApplicationCommand(
	applicationID kernel.UUID, actorID kernel.UUID, reason string, message string, now time.Time,
) (CancelApplicationCommand, error) {
	command := CancelApplicationCommand{
		reason:  reason,
		message: message,
		now:     now,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setApplicationID(applicationID),
		command.setActorID(actorID),
	); err != nil {
		return CancelApplicationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelApplicationCommand) Validate() error {
	return c.guard.Validate(ErrCancelApplicationCommandIsNotConstructed)
}

// ApplicationID returns the application to cancel.
func (c CancelApplicationCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// ActorID returns the acting user's ID.
func (c CancelApplicationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Reason returns the structured cancellation reason.
func (c CancelApplicationCommand) Reason() string {
	return c.reason
}

// Message returns the free-text cancellation message.
func (c CancelApplicationCommand) Message() string {
	return c.message
}

// Now returns the instant the cancellation happens at.
func (c CancelApplicationCommand) Now() time.Time {
	return c.now
}

func (c *CancelApplicationCommand) setApplicationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.applicationID = id
	return nil
}

func (c *CancelApplicationCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
	"careshift/internal/pkg/guard"
)

var ErrUpdateApplicationStatusCommandIsNotConstructed = errors.New(
	"UpdateApplicationStatusCommand must be created via NewUpdateApplicationStatusCommand constructor",
)

// StatusDecision is the owner's verdict on a pending application.
type StatusDecision string

const (
	DecisionAccepted StatusDecision = "accepted"
	DecisionRejected StatusDecision = "rejected"
)

// UpdateApplicationStatusCommand represents the job owner accepting or
// rejecting a pending application.
type UpdateApplicationStatusCommand struct { //nolint:recvcheck //using for validation
	applicationID   kernel.UUID
	actorID         kernel.UUID
	decision        StatusDecision
	responseMessage string
	now             time.Time

	guard guard.ConstructorGuard
}

// NewUpdateApplicationStatusCommand creates a command to decide on an
// application on behalf of the acting user.
func NewUpdateApplicationStatusCommand(
	applicationID kernel.UUID, actorID kernel.UUID,
	decision StatusDecision, responseMessage string, now time.Time,
) (UpdateApplicationStatusCommand, error) {
	command := UpdateApplicationStatusCommand{
		responseMessage: responseMessage,
		now:             now,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setApplicationID(applicationID),
		command.setActorID(actorID),
		command.setDecision(decision),
	); err != nil {
		return UpdateApplicationStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateApplicationStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateApplicationStatusCommandIsNotConstructed)
}

// ApplicationID returns the application being decided on.
func (c UpdateApplicationStatusCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// ActorID returns the acting user's ID.
func (c UpdateApplicationStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Decision returns the owner's verdict.
func (c UpdateApplicationStatusCommand) Decision() StatusDecision {
	return c.decision
}

// ResponseMessage returns the owner's message to the applicant.
func (c UpdateApplicationStatusCommand) ResponseMessage() string {
	return c.responseMessage
}

// Now returns the instant the decision happens at.
func (c UpdateApplicationStatusCommand) Now() time.Time {
	return c.now
}

func (c *UpdateApplicationStatusCommand) setApplicationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.applicationID = id
	return nil
}

func (c *UpdateApplicationStatusCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

func (c *UpdateApplicationStatusCommand) setDecision(decision StatusDecision) error {
	if decision != DecisionAccepted && decision != DecisionRejected {
		return errs.NewValueIsInvalidError("status")
	}

	c.decision = decision
	return nil
}

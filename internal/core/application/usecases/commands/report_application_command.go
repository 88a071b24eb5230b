package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrReportApplicationCommandIsNotConstructed = errors.New(
	"ReportApplicationCommand must be created via NewReportApplicationCommand constructor",
)

// ReportApplicationCommand represents either party attaching a report to an
// application. A report never changes the application's status.
type ReportApplicationCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	actorID       kernel.UUID
	reason        string
	message       string
	now           time.Time

	guard guard.ConstructorGuard
}

// NewReportApplicationCommand creates a command to report the application on
// behalf of the acting user.
func NewReportApplicationCommand(
	applicationID kernel.UUID, actorID kernel.UUID, reason string, message string, now time.Time,
) (ReportApplicationCommand, error) {
	command := ReportApplicationCommand{
		reason:  reason,
		message: message,
		now:     now,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setApplicationID(applicationID),
		command.setActorID(actorID),
	); err != nil {
		return ReportApplicationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportApplicationCommand) Validate() error {
	return c.guard.Validate(ErrReportApplicationCommandIsNotConstructed)
}

// ApplicationID returns the application being reported.
func (c ReportApplicationCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// ActorID returns the acting user's ID.
func (c ReportApplicationCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Reason returns the structured report reason.
func (c ReportApplicationCommand) Reason() string {
	return c.reason
}

// Message returns the free-text report message.
func (c ReportApplicationCommand) Message() string {
	return c.message
}

// Now returns the instant the report happens at.
func (c ReportApplicationCommand) Now() time.Time {
	return c.now
}

func (c *ReportApplicationCommand) setApplicationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.applicationID = id
	return nil
}

func (c *ReportApplicationCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrCheckinToJobCommandIsNotConstructed = errors.New(
	"CheckinToJobCommand must be created via NewCheckinToJobCommand constructor",
)

// CheckinToJobCommand represents the accepted worker arriving on site on the
// job's scheduled date.
type CheckinToJobCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	workerID      kernel.UUID
	location      string
	now           time.Time

	guard guard.ConstructorGuard
}

// NewCheckinToJobCommand creates a command for the worker to check in on
// their accepted application.
func NewCheckinToJobCommand(
	applicationID kernel.UUID, workerID kernel.UUID, location string, now time.Time,
) (CheckinToJobCommand, error) {
	command := CheckinToJobCommand{
		location: location,
		now:      now,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setApplicationID(applicationID),
		command.setWorkerID(workerID),
	); err != nil {
		return CheckinToJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckinToJobCommand) Validate() error {
	return c.guard.Validate(ErrCheckinToJobCommandIsNotConstructed)
}

// ApplicationID returns the application being checked in on.
func (c CheckinToJobCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// WorkerID returns the acting worker's ID.
func (c CheckinToJobCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Location returns the reported check-in location.
func (c CheckinToJobCommand) Location() string {
	return c.location
}

// Now returns the instant the check-in happens at.
func (c CheckinToJobCommand) Now() time.Time {
	return c.now
}

func (c *CheckinToJobCommand) setApplicationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.applicationID = id
	return nil
}

func (c *CheckinToJobCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

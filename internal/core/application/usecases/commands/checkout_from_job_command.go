package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrCheckoutFromJobCommandIsNotConstructed = errors.New(
	"CheckoutFromJobCommand must be created via NewCheckoutFromJobCommand constructor",
)

// CheckoutFromJobCommand represents the checked-in worker leaving the site.
type CheckoutFromJobCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	workerID      kernel.UUID
	location      string
	now           time.Time

	guard guard.ConstructorGuard
}

// NewCheckoutFromJobCommand creates a command for the worker to check out of
// their accepted application.
func NewCheckoutFromJobCommand(
	applicationID kernel.UUID, workerID kernel.UUID, location string, now time.Time,
) (CheckoutFromJobCommand, error) {
	command := CheckoutFromJobCommand{
		location: location,
		now:      now,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setApplicationID(applicationID),
		command.setWorkerID(workerID),
	); err != nil {
		return CheckoutFromJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutFromJobCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutFromJobCommandIsNotConstructed)
}

// ApplicationID returns the application being checked out of.
func (c CheckoutFromJobCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// WorkerID returns the acting worker's ID.
func (c CheckoutFromJobCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Location returns the reported check-out location.
func (c CheckoutFromJobCommand) Location() string {
	return c.location
}

// Now returns the instant the check-out happens at.
func (c CheckoutFromJobCommand) Now() time.Time {
	return c.now
}

func (c *CheckoutFromJobCommand) setApplicationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.applicationID = id
	return nil
}

func (c *CheckoutFromJobCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

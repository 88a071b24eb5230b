package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrApplyForJobCommandIsNotConstructed = errors.New(
	"ApplyForJobCommand must be created via NewApplyForJobCommand constructor",
)

// ApplyForJobCommand represents a worker's request to perform a job post.
// preferenceIDs are the job preferences the applicant asserts to satisfy;
// they must be a subset of the job's declared set.
//
// Example:
//
//	cmd, err := commands.NewApplyForJobCommand(jobPostID, workerID,
//	    "Available all week", preferenceIDs, time.Now())
//	if err != nil {
//	    return err
//	}
//
//	handler := commands.NewApplyForJobCommandHandler(uowFactory, resolver, dispatcher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Printf("Applied with application %s", cmd.ApplicationID())
type ApplyForJobCommand struct { //nolint:recvcheck //using for validation
	applicationID kernel.UUID
	jobPostID     kernel.UUID
	workerID      kernel.UUID
	message       string
	preferenceIDs []kernel.UUID
	now           time.Time

	guard guard.ConstructorGuard
}

// NewApplyForJobCommand creates a command for a worker to apply to a job.
// Automatically generates a unique ID for the application.
func NewApplyForJobCommand(
	jobPostID kernel.UUID, workerID kernel.UUID, message string,
	preferenceIDs []kernel.UUID, now time.Time,
) (ApplyForJobCommand, error) {
	command := ApplyForJobCommand{
		message:       message,
		preferenceIDs: preferenceIDs,
		now:           now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setApplicationID(kernel.NewUUID()),
		command.setJobPostID(jobPostID),
		command.setWorkerID(workerID),
	); err != nil {
		return ApplyForJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyForJobCommand) Validate() error {
	return c.guard.Validate(ErrApplyForJobCommandIsNotConstructed)
}

// ApplicationID returns the generated ID of the application.
func (c ApplyForJobCommand) ApplicationID() kernel.UUID {
	return c.applicationID
}

// JobPostID returns the job post being applied to.
func (c ApplyForJobCommand) JobPostID() kernel.UUID {
	return c.jobPostID
}

// WorkerID returns the applying worker's ID.
func (c ApplyForJobCommand) WorkerID() kernel.UUID {
	return c.workerID
}

// Message returns the applicant's free-text message.
func (c ApplyForJobCommand) Message() string {
	return c.message
}

// PreferenceIDs returns the preference selections the applicant asserts.
func (c ApplyForJobCommand) PreferenceIDs() []kernel.UUID {
	return c.preferenceIDs
}

// Now returns the instant the application happens at.
func (c ApplyForJobCommand) Now() time.Time {
	return c.now
}

func (c *ApplyForJobCommand) setApplicationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.applicationID = id
	return nil
}

func (c *ApplyForJobCommand) setJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobPostID = id
	return nil
}

func (c *ApplyForJobCommand) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.workerID = id
	return nil
}

package commands

import (
	"errors"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrCreateJobPostCommandIsNotConstructed = errors.New(
	"CreateJobPostCommand must be created via NewCreateJobPostCommand constructor",
)

// CreateJobPostCommand represents a request to post a new care job, either a
// single shift or a recurring weekly series. A recurring request carries the
// recurrence descriptor; the seed shift becomes the series parent and one
// child post is created per expanded date.
//
// Example:
//
//	schedule, _ := kernel.NewSchedule("2025-06-02", "09:00", "17:00")
//	details := jobpost.Details{Postcode: pc, Schedule: schedule, ...}
//	cmd, err := commands.NewCreateJobPostCommand(ownerID, details)
//	if err != nil {
//	    return err
//	}
//
//	handler := commands.NewCreateJobPostCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Printf("Created job post %s", cmd.JobPostID())
type CreateJobPostCommand struct { //nolint:recvcheck //using for validation
	jobPostID  kernel.UUID
	ownerID    kernel.UUID
	details    jobpost.Details
	recurrence *jobpost.Recurrence

	guard guard.ConstructorGuard
}

// NewCreateJobPostCommand creates a command to post a single (non-recurring)
// job. Automatically generates a unique ID for the post.
func NewCreateJobPostCommand(ownerID kernel.UUID, details jobpost.Details) (CreateJobPostCommand, error) {
	command := CreateJobPostCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobPostID(kernel.NewUUID()),
		command.setOwnerID(ownerID),
		command.setDetails(details),
	); err != nil {
		return CreateJobPostCommand{}, err
	}

	return command, nil
}

// NewCreateRecurringJobPostCommand creates a command to post a recurring
// weekly job series seeded by the given details.
func NewCreateRecurringJobPostCommand(
	ownerID kernel.UUID, details jobpost.Details, recurrence jobpost.Recurrence,
) (CreateJobPostCommand, error) {
	command, err := NewCreateJobPostCommand(ownerID, details)
	if err != nil {
		return CreateJobPostCommand{}, err
	}

	command.recurrence = &recurrence
	return command, nil
}

// Validate ensures the command was created through a constructor.
// Returns ErrCreateJobPostCommandIsNotConstructed if validation fails.
func (c CreateJobPostCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobPostCommandIsNotConstructed)
}

// JobPostID returns the generated ID of the post (the series parent when
// the command is recurring).
func (c CreateJobPostCommand) JobPostID() kernel.UUID {
	return c.jobPostID
}

// OwnerID returns the posting user's ID.
func (c CreateJobPostCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Details returns the shift attributes to post.
func (c CreateJobPostCommand) Details() jobpost.Details {
	return c.details
}

// Recurrence returns the recurrence descriptor, nil for a single shift.
func (c CreateJobPostCommand) Recurrence() *jobpost.Recurrence {
	return c.recurrence
}

// IsRecurring reports whether the command posts a recurring series.
func (c CreateJobPostCommand) IsRecurring() bool {
	return c.recurrence != nil
}

func (c *CreateJobPostCommand) setJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.jobPostID = id
	return nil
}

func (c *CreateJobPostCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateJobPostCommand) setDetails(details jobpost.Details) error {
	if err := errors.Join(
		details.Postcode.Validate(),
		details.Schedule.Validate(),
	); err != nil {
		return err
	}

	c.details = details
	return nil
}

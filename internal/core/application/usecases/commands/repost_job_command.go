package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var (
	ErrRepostExpiredJobCommandIsNotConstructed = errors.New(
		"RepostExpiredJobCommand must be created via NewRepostExpiredJobCommand constructor",
	)
	ErrRepostPastJobCommandIsNotConstructed = errors.New(
		"RepostPastJobCommand must be created via NewRepostPastJobCommand constructor",
	)
)

// repostRequest carries the shared shape of both repost commands: the
// original post, the acting owner and the new slot the clone should occupy.
type repostRequest struct { //nolint:recvcheck //using for validation
	jobPostID    kernel.UUID
	newJobPostID kernel.UUID
	actorID      kernel.UUID
	newSchedule  kernel.Schedule
	now          time.Time

	guard guard.ConstructorGuard
}

func newRepostRequest(
	jobPostID kernel.UUID, actorID kernel.UUID, newSchedule kernel.Schedule, now time.Time,
) (repostRequest, error) {
	request := repostRequest{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		request.setJobPostID(jobPostID),
		request.setNewJobPostID(kernel.NewUUID()),
		request.setActorID(actorID),
		request.setNewSchedule(newSchedule),
	); err != nil {
		return repostRequest{}, err
	}

	return request, nil
}

// JobPostID returns the ID of the original post being reposted.
func (r repostRequest) JobPostID() kernel.UUID {
	return r.jobPostID
}

// NewJobPostID returns the generated ID for the clone.
func (r repostRequest) NewJobPostID() kernel.UUID {
	return r.newJobPostID
}

// ActorID returns the acting user's ID.
func (r repostRequest) ActorID() kernel.UUID {
	return r.actorID
}

// NewSchedule returns the slot the clone should be posted on.
func (r repostRequest) NewSchedule() kernel.Schedule {
	return r.newSchedule
}

// Now returns the instant the action happens at.
func (r repostRequest) Now() time.Time {
	return r.now
}

func (r *repostRequest) setJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.jobPostID = id
	return nil
}

func (r *repostRequest) setNewJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.newJobPostID = id
	return nil
}

func (r *repostRequest) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.actorID = id
	return nil
}

func (r *repostRequest) setNewSchedule(schedule kernel.Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	r.newSchedule = schedule
	return nil
}

// RepostExpiredJobCommand reposts a job that stayed open past its date onto
// a new slot. The original is closed and its pending applications with it.
type RepostExpiredJobCommand struct {
	repostRequest
}

// NewRepostExpiredJobCommand creates a command to repost an expired job.
// Automatically generates a unique ID for the clone.
func NewRepostExpiredJobCommand(
	jobPostID kernel.UUID, actorID kernel.UUID, newSchedule kernel.Schedule, now time.Time,
) (RepostExpiredJobCommand, error) {
	request, err := newRepostRequest(jobPostID, actorID, newSchedule, now)
	if err != nil {
		return RepostExpiredJobCommand{}, err
	}

	return RepostExpiredJobCommand{repostRequest: request}, nil
}

// Validate ensures the command was created through the constructor.
func (c RepostExpiredJobCommand) Validate() error {
	return c.guard.Validate(ErrRepostExpiredJobCommandIsNotConstructed)
}

// RepostPastJobCommand reposts a finished job (completed, cancelled or
// closed) onto a new slot as a fresh open post.
type RepostPastJobCommand struct {
	repostRequest
}

// NewRepostPastJobCommand creates a command to repost a past job.
// Automatically generates a unique ID for the clone.
func NewRepostPastJobCommand(
	jobPostID kernel.UUID, actorID kernel.UUID, newSchedule kernel.Schedule, now time.Time,
) (RepostPastJobCommand, error) {
	request, err := newRepostRequest(jobPostID, actorID, newSchedule, now)
	if err != nil {
		return RepostPastJobCommand{}, err
	}

	return RepostPastJobCommand{repostRequest: request}, nil
}

// Validate ensures the command was created through the constructor.
func (c RepostPastJobCommand) Validate() error {
	return c.guard.Validate(ErrRepostPastJobCommandIsNotConstructed)
}

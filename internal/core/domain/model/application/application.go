package application

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
)

// ErrApplicationIsNotConstructed is returned when an Application instance was
// not created through one of the package constructors.
var ErrApplicationIsNotConstructed = errors.New(
	"Application must be created via NewApplication constructor")

// Actor identifies which party performed a lifecycle action.
type Actor string

const (
	ActorWorker Actor = "worker"
	ActorOwner  Actor = "owner"
	ActorSystem Actor = "system"
)

// Response is the owner's answer to an application (acceptance or rejection).
type Response struct {
	At      time.Time
	Message string
}

// Cancellation records who withdrew the application and why.
type Cancellation struct {
	Actor   Actor
	Reason  string
	Message string
	At      time.Time
}

// CheckEvent records an on-site check-in or check-out.
type CheckEvent struct {
	At       time.Time
	Location string
}

// Completion records the owner marking the job done.
type Completion struct {
	Actor Actor
	At    time.Time
	Notes string
}

// Report is an orthogonal annotation attachable by either party at any stage.
// It never transitions the application's status.
type Report struct {
	Actor   Actor
	Reason  string
	Message string
	At      time.Time
}

// Application is the aggregate root for a healthcare worker's request to
// perform a specific job post.
//
// Invariants enforced here:
//   - identity, job post and worker references are always valid
//   - status transitions follow the Status state machine
//   - check-in happens at most once, and only on an accepted application
//   - check-out requires a prior check-in and happens at most once
//
// The cross-application invariants (one application per worker per job, one
// accepted application per job, no overlapping accepted windows per worker)
// are enforced by the lifecycle command handlers and backed by store-level
// unique constraints.
type Application struct {
	id        kernel.UUID
	jobPostID kernel.UUID
	workerID  kernel.UUID

	status        Status
	message       string
	preferenceIDs []kernel.UUID

	response     *Response
	cancellation *Cancellation
	checkIn      *CheckEvent
	checkOut     *CheckEvent
	completion   *Completion
	report       *Report

	deleted bool

	isConstructed bool
}

// NewApplication creates a pending application for a job post.
// preferenceIDs are the job preferences the applicant asserts to satisfy;
// subset validation against the job's declared set happens in the apply
// handler, which has the job post loaded.
func NewApplication(
	id kernel.UUID, jobPostID kernel.UUID, workerID kernel.UUID,
	message string, preferenceIDs []kernel.UUID,
) (*Application, error) {
	app := &Application{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		app.setID(id),
		app.setJobPostID(jobPostID),
		app.setWorkerID(workerID),
		validatePreferenceIDs(preferenceIDs),
	); err != nil {
		return nil, err
	}

	app.message = message
	app.preferenceIDs = preferenceIDs
	return app, nil
}

// Restored carries every persisted field of an application for
// reconstruction from storage.
type Restored struct {
	ID            kernel.UUID
	JobPostID     kernel.UUID
	WorkerID      kernel.UUID
	Status        Status
	Message       string
	PreferenceIDs []kernel.UUID
	Response      *Response
	Cancellation  *Cancellation
	CheckIn       *CheckEvent
	CheckOut      *CheckEvent
	Completion    *Completion
	Report        *Report
	Deleted       bool
}

// RestoreApplication reconstructs an application from persistence without
// applying creation-time rules. Field validity is still enforced.
func RestoreApplication(r Restored) (*Application, error) {
	app := &Application{
		isConstructed: true,
	}

	if err := errors.Join(
		app.setID(r.ID),
		app.setJobPostID(r.JobPostID),
		app.setWorkerID(r.WorkerID),
		r.Status.Validate(),
		validatePreferenceIDs(r.PreferenceIDs),
	); err != nil {
		return nil, err
	}

	app.status = r.Status
	app.message = r.Message
	app.preferenceIDs = r.PreferenceIDs
	app.response = r.Response
	app.cancellation = r.Cancellation
	app.checkIn = r.CheckIn
	app.checkOut = r.CheckOut
	app.completion = r.Completion
	app.report = r.Report
	app.deleted = r.Deleted
	return app, nil
}

// Validate ensures the Application was created through a package constructor.
func (a *Application) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrApplicationIsNotConstructed
	}
	return nil
}

// IsEqual compares two applications by identity.
func (a *Application) IsEqual(other *Application) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Application) ID() kernel.UUID         { return a.id }
func (a *Application) JobPostID() kernel.UUID  { return a.jobPostID }
func (a *Application) WorkerID() kernel.UUID   { return a.workerID }
func (a *Application) Status() Status          { return a.status }
func (a *Application) Message() string         { return a.message }
func (a *Application) Response() *Response     { return a.response }
func (a *Application) Cancellation() *Cancellation { return a.cancellation }
func (a *Application) CheckIn() *CheckEvent    { return a.checkIn }
func (a *Application) CheckOut() *CheckEvent   { return a.checkOut }
func (a *Application) Completion() *Completion { return a.completion }
func (a *Application) Report() *Report         { return a.report }
func (a *Application) IsDeleted() bool         { return a.deleted }

// PreferenceIDs returns the preference selections asserted by the applicant.
func (a *Application) PreferenceIDs() []kernel.UUID { return a.preferenceIDs }

// IsByWorker reports whether workerID submitted this application.
func (a *Application) IsByWorker(workerID kernel.UUID) bool {
	return a.workerID.IsEqual(workerID)
}

// IsCheckedIn reports whether an on-site check-in was recorded.
func (a *Application) IsCheckedIn() bool {
	return a.checkIn != nil
}

// IsCheckedOut reports whether an on-site check-out was recorded.
func (a *Application) IsCheckedOut() bool {
	return a.checkOut != nil
}

// Accept marks the application accepted with the owner's response.
func (a *Application) Accept(at time.Time, responseMessage string) error {
	newStatus, err := a.status.Accept()
	if err != nil {
		return err
	}
	a.status = newStatus
	a.response = &Response{At: at, Message: responseMessage}
	return nil
}

// Reject marks the application rejected with the owner's (or the system's)
// response message.
func (a *Application) Reject(at time.Time, responseMessage string) error {
	newStatus, err := a.status.Reject()
	if err != nil {
		return err
	}
	a.status = newStatus
	a.response = &Response{At: at, Message: responseMessage}
	return nil
}

// MarkNotAvailable is the system-assigned demotion of a pending application
// whose window conflicts with one the worker just had accepted.
func (a *Application) MarkNotAvailable(at time.Time, message string) error {
	newStatus, err := a.status.MarkNotAvailable()
	if err != nil {
		return err
	}
	a.status = newStatus
	a.response = &Response{At: at, Message: message}
	return nil
}

// Cancel withdraws a pending or accepted application, recording who did it
// and why.
func (a *Application) Cancel(actor Actor, reason string, message string, at time.Time) error {
	newStatus, err := a.status.Cancel()
	if err != nil {
		return err
	}
	a.status = newStatus
	a.cancellation = &Cancellation{Actor: actor, Reason: reason, Message: message, At: at}
	return nil
}

// RecordCheckIn records the worker's on-site arrival. Permitted only on an
// accepted application, and only once: a second check-in is a conflict.
func (a *Application) RecordCheckIn(location string, at time.Time) error {
	if a.status != Accepted {
		return errs.NewInvalidStateError("check in", a.status.String())
	}
	if a.checkIn != nil {
		return errs.NewConflictError("check-in", a.checkIn.At.Format(time.RFC3339))
	}
	a.checkIn = &CheckEvent{At: at, Location: location}
	return nil
}

// RecordCheckOut records the worker leaving the site. Requires a prior
// check-in; a second check-out is a conflict.
func (a *Application) RecordCheckOut(location string, at time.Time) error {
	if a.checkIn == nil {
		return errs.NewInvalidStateError("check out", "not checked in")
	}
	if a.checkOut != nil {
		return errs.NewConflictError("check-out", a.checkOut.At.Format(time.RFC3339))
	}
	a.checkOut = &CheckEvent{At: at, Location: location}
	return nil
}

// Complete marks the accepted application completed with the owner's notes.
func (a *Application) Complete(at time.Time, notes string) error {
	newStatus, err := a.status.Complete()
	if err != nil {
		return err
	}
	a.status = newStatus
	a.completion = &Completion{Actor: ActorOwner, At: at, Notes: notes}
	return nil
}

// CloseBySystem closes a live application as a side effect of its job post
// being completed or reposted.
func (a *Application) CloseBySystem() error {
	newStatus, err := a.status.Close()
	if err != nil {
		return err
	}
	a.status = newStatus
	return nil
}

// AttachReport attaches (or replaces) the report annotation. Valid at any
// stage; never transitions status.
func (a *Application) AttachReport(actor Actor, reason string, message string, at time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	a.report = &Report{Actor: actor, Reason: reason, Message: message, At: at}
	return nil
}

func (a *Application) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Application) setJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.jobPostID = id
	return nil
}

func (a *Application) setWorkerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.workerID = id
	return nil
}

func validatePreferenceIDs(ids []kernel.UUID) error {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	return nil
}

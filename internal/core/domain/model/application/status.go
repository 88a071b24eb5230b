package application

import (
	"fmt"

	"careshift/internal/pkg/errs"
)

// Status represents the lifecycle state of a job application.
//
// State transitions (terminal states in brackets):
//
//	Pending ──┬──> Accepted ──┬──> [Completed]
//	          │               ├──> [Cancelled]
//	          │               ├──> [Rejected]   (superseded at check-in)
//	          │               └──> [Closed]
//	          ├──> [Rejected]
//	          ├──> [Cancelled]
//	          ├──> [NotAvailable]  (system-assigned on time conflict)
//	          └──> [Closed]        (job completed or reposted)
//
// Check-in and check-out are in-place flags on an Accepted application,
// not statuses.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a freshly submitted application.
	Pending

	// Accepted means the owner selected this application for the job.
	Accepted

	// Rejected means the owner declined the application, or another worker
	// checked in and took the seat.
	Rejected

	// Cancelled means the worker or the owner withdrew the application.
	Cancelled

	// NotAvailable is system-assigned to a worker's pending application when
	// one of their other applications with an overlapping window is accepted.
	NotAvailable

	// Closed means the owning job post was completed or reposted while this
	// application was still live.
	Closed

	// Completed means the accepted worker finished the job.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:      "Unknown",
		Pending:      "Pending",
		Accepted:     "Accepted",
		Rejected:     "Rejected",
		Cancelled:    "Cancelled",
		NotAvailable: "NotAvailable",
		Closed:       "Closed",
		Completed:    "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:      "Pending",
		Accepted:     "Accepted",
		Rejected:     "Rejected",
		Cancelled:    "Cancelled",
		NotAvailable: "NotAvailable",
		Closed:       "Closed",
		Completed:    "Completed",
	}
}

// Validate checks the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions leave this status.
func (s Status) IsTerminal() bool {
	switch s {
	case Rejected, Cancelled, NotAvailable, Closed, Completed:
		return true
	default:
		return false
	}
}

// IsLive reports whether the application still occupies a seat in the
// job's selection process (pending or accepted).
func (s Status) IsLive() bool {
	return s == Pending || s == Accepted
}

// Accept transitions Pending -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateError("accept application", s.String())
	}
	return Accepted, nil
}

// Reject transitions Pending or Accepted -> Rejected. Accepted applications
// are rejected when a different worker checks in and takes the seat.
func (s Status) Reject() (Status, error) {
	if !s.IsLive() {
		return Unknown, errs.NewInvalidStateError("reject application", s.String())
	}
	return Rejected, nil
}

// Cancel transitions Pending or Accepted -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if !s.IsLive() {
		return Unknown, errs.NewInvalidStateError("cancel application", s.String())
	}
	return Cancelled, nil
}

// MarkNotAvailable transitions Pending -> NotAvailable.
func (s Status) MarkNotAvailable() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateError("mark application not available", s.String())
	}
	return NotAvailable, nil
}

// Close transitions any live status -> Closed.
func (s Status) Close() (Status, error) {
	if !s.IsLive() {
		return Unknown, errs.NewInvalidStateError("close application", s.String())
	}
	return Closed, nil
}

// Complete transitions Accepted -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Accepted {
		return Unknown, errs.NewInvalidStateError("complete application", s.String())
	}
	return Completed, nil
}

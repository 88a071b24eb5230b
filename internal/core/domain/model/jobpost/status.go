package jobpost

import (
	"fmt"
	"strings"

	"careshift/internal/pkg/errs"
)

// Status represents the lifecycle state of a job post.
//
// State transitions:
//
//	Open ──┬──> Approved ──> Completed
//	       │        │
//	       │        └──> Open (accepted application cancelled)
//	       ├──> Closed (owner closure or repost supersession)
//	       └──> Cancelled
//
// Completed, Cancelled and Closed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Open is the initial status; the post accepts applications.
	Open

	// Approved means an application has been accepted for the post.
	Approved

	// Completed means the accepted worker finished the job.
	Completed

	// Cancelled means the owner withdrew the post.
	Cancelled

	// Closed means the post was closed by its owner or superseded by a repost.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Open:      "Open",
		Approved:  "Approved",
		Completed: "Completed",
		Cancelled: "Cancelled",
		Closed:    "Closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:      "Open",
		Approved:  "Approved",
		Completed: "Completed",
		Cancelled: "Cancelled",
		Closed:    "Closed",
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

// ParseStatus parses a status from its display name, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for status, name := range getValidStatusStrings() {
		if strings.ToLower(name) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", raw))
}

// String implements fmt.Stringer. Safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Approve transitions Open -> Approved when an application is accepted.
func (s Status) Approve() (Status, error) {
	if s != Open {
		return Unknown, errs.NewInvalidStateError("approve job post", s.String())
	}
	return Approved, nil
}

// Complete transitions Approved -> Completed when the accepted worker finishes.
func (s Status) Complete() (Status, error) {
	if s != Approved {
		return Unknown, errs.NewInvalidStateError("complete job post", s.String())
	}
	return Completed, nil
}

// Close transitions Open -> Closed on owner closure or repost supersession.
func (s Status) Close() (Status, error) {
	if s != Open {
		return Unknown, errs.NewInvalidStateError("close job post", s.String())
	}
	return Closed, nil
}

// Cancel transitions Open -> Cancelled when the owner withdraws the post.
func (s Status) Cancel() (Status, error) {
	if s != Open {
		return Unknown, errs.NewInvalidStateError("cancel job post", s.String())
	}
	return Cancelled, nil
}

// Reopen transitions Approved -> Open when the accepted application is cancelled.
func (s Status) Reopen() (Status, error) {
	if s != Approved {
		return Unknown, errs.NewInvalidStateError("reopen job post", s.String())
	}
	return Open, nil
}

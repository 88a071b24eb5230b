package services

import (
	"careshift/internal/core/domain/model/kernel"
)

// ScheduleEntry pairs an application with the shift window of its job post.
type ScheduleEntry struct {
	ApplicationID kernel.UUID
	Schedule      kernel.Schedule
}

// ConflictResolver detects time-window overlaps between a candidate shift
// and a worker's existing applications.
//
// It is used at application time (reject an apply that would
// double-book the worker if accepted) and cascading at acceptance time
// (find the pending applications to demote to not-available).
//
// Windows are half-open [start, end): shifts that merely touch do not
// conflict. Schedules are validated before comparison, so a malformed
// window fails the operation instead of being silently skipped; a skip
// here would let a double-booking through.
type ConflictResolver struct{}

// NewConflictResolver creates a new ConflictResolver instance.
func NewConflictResolver() ConflictResolver {
	return ConflictResolver{}
}

// HasConflict reports whether the candidate window overlaps any of the
// other windows.
func (r ConflictResolver) HasConflict(candidate kernel.Schedule, others []kernel.Schedule) (bool, error) {
	for _, other := range others {
		overlaps, err := candidate.Overlaps(other)
		if err != nil {
			return false, err
		}
		if overlaps {
			return true, nil
		}
	}
	return false, nil
}

// Conflicts returns the IDs of every entry whose window overlaps the
// candidate window, preserving input order.
func (r ConflictResolver) Conflicts(
	candidate kernel.Schedule, entries []ScheduleEntry,
) ([]kernel.UUID, error) {
	var conflicting []kernel.UUID
	for _, entry := range entries {
		overlaps, err := candidate.Overlaps(entry.Schedule)
		if err != nil {
			return nil, err
		}
		if overlaps {
			conflicting = append(conflicting, entry.ApplicationID)
		}
	}
	return conflicting, nil
}

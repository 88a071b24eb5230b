package ports

import (
	"context"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
)

// JobPostRepository defines the persistence contract for job post aggregates.
// All methods ignore soft-deleted posts.
type JobPostRepository interface {
	// Add persists a new job post aggregate.
	// The store enforces the (owner, date, startTime) uniqueness as the last
	// line of defense against concurrent creators.
	Add(ctx context.Context, aggregate *jobpost.JobPost) error

	// Update persists changes to an existing job post. Relation sets (care
	// needs, languages, preferences) are replaced wholesale, not diffed.
	Update(ctx context.Context, aggregate *jobpost.JobPost) error

	// Get retrieves a job post by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*jobpost.JobPost, error)

	// GetByIDs retrieves the job posts for the given identifiers.
	// Missing IDs are skipped, not errors; callers resolving schedules for
	// conflict checks must tolerate posts deleted underneath them.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*jobpost.JobPost, error)

	// ExistsForOwnerAt reports whether the owner already has a non-deleted
	// post occupying the schedule's (date, startTime) slot.
	ExistsForOwnerAt(ctx context.Context, ownerID kernel.UUID, schedule kernel.Schedule) (bool, error)
}

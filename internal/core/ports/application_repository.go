package ports

import (
	"context"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/kernel"
)

// ApplicationRepository defines the persistence contract for job application
// aggregates.
type ApplicationRepository interface {
	// Add persists a new application. The store enforces the unique
	// (jobPostID, workerID) pair as the last line of defense against
	// concurrent duplicate applies.
	Add(ctx context.Context, aggregate *application.Application) error

	// Update persists changes to an existing application.
	Update(ctx context.Context, aggregate *application.Application) error

	// Get retrieves an application by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*application.Application, error)

	// GetByJobAndWorker retrieves the worker's application for the job post.
	// Returns errs.ObjectNotFoundError when the worker has not applied.
	GetByJobAndWorker(ctx context.Context, jobPostID kernel.UUID, workerID kernel.UUID) (*application.Application, error)

	// GetAcceptedForJob retrieves the accepted application for the job post,
	// if any. At most one can exist.
	GetAcceptedForJob(ctx context.Context, jobPostID kernel.UUID) (*application.Application, error)

	// GetAcceptedForWorker retrieves all applications the worker currently
	// holds in the accepted status.
	GetAcceptedForWorker(ctx context.Context, workerID kernel.UUID) ([]*application.Application, error)

	// GetPendingForWorker retrieves all pending applications of the worker.
	GetPendingForWorker(ctx context.Context, workerID kernel.UUID) ([]*application.Application, error)

	// GetLiveForJob retrieves the job post's applications that are still
	// pending or accepted.
	GetLiveForJob(ctx context.Context, jobPostID kernel.UUID) ([]*application.Application, error)

	// GetPendingForJob retrieves the job post's pending applications.
	GetPendingForJob(ctx context.Context, jobPostID kernel.UUID) ([]*application.Application, error)
}

package ports

import (
	"context"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
)

// WorkerReader provides read access to worker profiles for match scoring
// and distance annotation.
type WorkerReader interface {
	// GetProfile retrieves the worker's profile.
	// Returns errs.ObjectNotFoundError for unknown workers.
	GetProfile(ctx context.Context, workerID kernel.UUID) (services.WorkerProfile, error)

	// GetPostcode retrieves the worker's home postcode.
	GetPostcode(ctx context.Context, workerID kernel.UUID) (kernel.Postcode, error)
}

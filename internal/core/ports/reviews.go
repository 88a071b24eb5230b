package ports

import (
	"context"

	"careshift/internal/core/domain/model/kernel"
)

// ReviewStats is an aggregate of a worker's received reviews.
type ReviewStats struct {
	AverageRating float64
	ReviewCount   int
}

// ReviewReader provides read access to worker review aggregates.
// Lookups are best effort; callers treat failures as "no reviews".
type ReviewReader interface {
	GetStats(ctx context.Context, workerIDs []kernel.UUID) (map[kernel.UUID]ReviewStats, error)
}

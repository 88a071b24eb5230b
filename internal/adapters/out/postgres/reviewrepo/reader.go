// Package reviewrepo provides best-effort read access to worker review
// aggregates for query enrichment.
package reviewrepo

import (
	"context"
	"math"
	"time"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewDTO represents one review a worker received from a job owner.
type ReviewDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"type:int;not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming convention.
func (ReviewDTO) TableName() string {
	return "worker_reviews"
}

// GormReviewReader implements ReviewReader using GORM.
type GormReviewReader struct {
	db *gorm.DB
}

// NewGormReviewReader creates a new GORM review reader.
func NewGormReviewReader(db *gorm.DB) *GormReviewReader {
	return &GormReviewReader{db: db}
}

// GetStats aggregates the review ratings of the given workers in one query.
// Workers without reviews are absent from the result map. The average is
// rounded to one decimal place.
func (r *GormReviewReader) GetStats(
	ctx context.Context, workerIDs []kernel.UUID,
) (map[kernel.UUID]ports.ReviewStats, error) {
	stats := make(map[kernel.UUID]ports.ReviewStats, len(workerIDs))
	if len(workerIDs) == 0 {
		return stats, nil
	}

	raw := make([]uuid.UUID, 0, len(workerIDs))
	for _, id := range workerIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT worker_id, AVG(rating), COUNT(*)
		FROM worker_reviews
		WHERE worker_id IN (?)
		GROUP BY worker_id
	`, raw).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var workerID uuid.UUID
		var average float64
		var count int

		if err = rows.Scan(&workerID, &average, &count); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(workerID[:])
		if idErr != nil {
			return nil, idErr
		}

		stats[id] = ports.ReviewStats{
			AverageRating: math.Round(average*10) / 10,
			ReviewCount:   count,
		}
	}

	return stats, rows.Err()
}

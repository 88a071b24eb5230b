package jobpostrepo

import (
	"context"
	"errors"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJobPostRepository implements JobPostRepository using GORM.
type GormJobPostRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobPostRepository creates a new GORM job post repository.
func NewGormJobPostRepository(db *gorm.DB, tracker aggregateTracker) *GormJobPostRepository {
	return &GormJobPostRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job post to the database, junction rows included.
func (r *GormJobPostRepository) Add(ctx context.Context, aggregate *jobpost.JobPost) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing job post. Relation sets use replace semantics:
// the junction rows are deleted and reinserted wholesale rather than diffed.
func (r *GormJobPostRepository) Update(ctx context.Context, aggregate *jobpost.JobPost) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&JobPostDTO{}).Where("id = ?", dto.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, junction := range []any{
		&JobPostCareNeedDTO{}, &JobPostLanguageDTO{}, &JobPostPreferenceDTO{},
	} {
		if err := db.Where("job_post_id = ?", dto.ID).Delete(junction).Error; err != nil {
			return err
		}
	}

	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a non-deleted job post by ID.
func (r *GormJobPostRepository) Get(ctx context.Context, id kernel.UUID) (*jobpost.JobPost, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobPostDTO
	err := r.db.WithContext(ctx).
		Preload("CareNeeds").
		Preload("Languages").
		Preload("Preferences").
		First(&dto, "id = ? AND deleted = FALSE", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("jobPost", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the non-deleted job posts for the given identifiers.
// Missing IDs are skipped rather than reported; callers resolving schedules
// must tolerate posts deleted underneath them.
func (r *GormJobPostRepository) GetByIDs(
	ctx context.Context, ids []kernel.UUID,
) ([]*jobpost.JobPost, error) {
	if len(ids) == 0 {
		return []*jobpost.JobPost{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []JobPostDTO
	err := r.db.WithContext(ctx).
		Preload("CareNeeds").
		Preload("Languages").
		Preload("Preferences").
		Find(&dtos, "id IN (?) AND deleted = FALSE", raw).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*jobpost.JobPost, 0, len(dtos))
	for _, dto := range dtos {
		post, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// ExistsForOwnerAt reports whether the owner already has a non-deleted post
// occupying the schedule's (date, startTime) slot.
func (r *GormJobPostRepository) ExistsForOwnerAt(
	ctx context.Context, ownerID kernel.UUID, schedule kernel.Schedule,
) (bool, error) {
	if err := ownerID.Validate(); err != nil {
		return false, err
	}
	if err := schedule.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&JobPostDTO{}).
		Where("owner_id = ? AND schedule_date = ? AND start_time = ? AND deleted = FALSE",
			ownerID.Bytes(), schedule.DateString(), schedule.StartTimeString()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

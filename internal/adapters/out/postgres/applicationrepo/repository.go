package applicationrepo

import (
	"context"
	"errors"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormApplicationRepository implements ApplicationRepository using GORM.
type GormApplicationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormApplicationRepository creates a new GORM application repository.
func NewGormApplicationRepository(db *gorm.DB, tracker aggregateTracker) *GormApplicationRepository {
	return &GormApplicationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new application to the database, preference rows included.
func (r *GormApplicationRepository) Add(ctx context.Context, aggregate *application.Application) error {
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

// Update saves an existing application. The asserted preference set is
// immutable after apply, so only the main row is rewritten.
func (r *GormApplicationRepository) Update(ctx context.Context, aggregate *application.Application) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Preferences = nil

	result := r.db.WithContext(ctx).
		Model(&ApplicationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a non-deleted application by ID.
func (r *GormApplicationRepository) Get(ctx context.Context, id kernel.UUID) (*application.Application, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ApplicationDTO
	err := r.db.WithContext(ctx).
		Preload("Preferences").
		First(&dto, "id = ? AND deleted = FALSE", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("application", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByJobAndWorker retrieves the worker's application for the job post.
func (r *GormApplicationRepository) GetByJobAndWorker(
	ctx context.Context, jobPostID kernel.UUID, workerID kernel.UUID,
) (*application.Application, error) {
	if err := jobPostID.Validate(); err != nil {
		return nil, err
	}
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dto ApplicationDTO
	err := r.db.WithContext(ctx).
		Preload("Preferences").
		First(&dto, "job_post_id = ? AND worker_id = ? AND deleted = FALSE",
			jobPostID.Bytes(), workerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("application", jobPostID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAcceptedForJob retrieves the accepted application for the job post.
// At most one can exist.
func (r *GormApplicationRepository) GetAcceptedForJob(
	ctx context.Context, jobPostID kernel.UUID,
) (*application.Application, error) {
	if err := jobPostID.Validate(); err != nil {
		return nil, err
	}

	var dto ApplicationDTO
	err := r.db.WithContext(ctx).
		Preload("Preferences").
		First(&dto, "job_post_id = ? AND status = ? AND deleted = FALSE",
			jobPostID.Bytes(), int(application.Accepted)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("application", jobPostID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAcceptedForWorker retrieves all applications the worker holds in the
// accepted status.
func (r *GormApplicationRepository) GetAcceptedForWorker(
	ctx context.Context, workerID kernel.UUID,
) ([]*application.Application, error) {
	return r.findForWorker(ctx, workerID, application.Accepted)
}

// GetPendingForWorker retrieves all pending applications of the worker.
func (r *GormApplicationRepository) GetPendingForWorker(
	ctx context.Context, workerID kernel.UUID,
) ([]*application.Application, error) {
	return r.findForWorker(ctx, workerID, application.Pending)
}

// GetLiveForJob retrieves the job post's applications that are still pending
// or accepted.
func (r *GormApplicationRepository) GetLiveForJob(
	ctx context.Context, jobPostID kernel.UUID,
) ([]*application.Application, error) {
	return r.findForJob(ctx, jobPostID, application.Pending, application.Accepted)
}

// GetPendingForJob retrieves the job post's pending applications.
func (r *GormApplicationRepository) GetPendingForJob(
	ctx context.Context, jobPostID kernel.UUID,
) ([]*application.Application, error) {
	return r.findForJob(ctx, jobPostID, application.Pending)
}

func (r *GormApplicationRepository) findForWorker(
	ctx context.Context, workerID kernel.UUID, status application.Status,
) ([]*application.Application, error) {
	if err := workerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ApplicationDTO
	err := r.db.WithContext(ctx).
		Preload("Preferences").
		Find(&dtos, "worker_id = ? AND status = ? AND deleted = FALSE",
			workerID.Bytes(), int(status)).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormApplicationRepository) findForJob(
	ctx context.Context, jobPostID kernel.UUID, statuses ...application.Status,
) ([]*application.Application, error) {
	if err := jobPostID.Validate(); err != nil {
		return nil, err
	}

	values := make([]int, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, int(status))
	}

	var dtos []ApplicationDTO
	err := r.db.WithContext(ctx).
		Preload("Preferences").
		Find(&dtos, "job_post_id = ? AND status IN (?) AND deleted = FALSE",
			jobPostID.Bytes(), values).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormApplicationRepository) toDomainAll(dtos []ApplicationDTO) ([]*application.Application, error) {
	apps := make([]*application.Application, 0, len(dtos))
	for _, dto := range dtos {
		app, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

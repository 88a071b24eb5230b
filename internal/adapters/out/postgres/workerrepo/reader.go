// Package workerrepo provides read access to worker profiles for match
// scoring and distance annotation. Worker accounts are owned by the identity
// subsystem; this adapter only reads the fields the core needs.
package workerrepo

import (
	"context"
	"errors"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// WorkerDTO represents the worker profile row.
type WorkerDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Gender    string         `gorm:"type:varchar(16);not null"`
	Postcode  string         `gorm:"type:varchar(16);not null"`
	Languages pq.StringArray `gorm:"type:text[]"`
}

// TableName overrides GORM's default naming convention.
func (WorkerDTO) TableName() string {
	return "workers"
}

// GormWorkerReader implements WorkerReader using GORM.
type GormWorkerReader struct {
	db *gorm.DB
}

// NewGormWorkerReader creates a new GORM worker reader.
func NewGormWorkerReader(db *gorm.DB) *GormWorkerReader {
	return &GormWorkerReader{db: db}
}

// GetProfile retrieves the worker's profile slice used for match scoring.
func (r *GormWorkerReader) GetProfile(
	ctx context.Context, workerID kernel.UUID,
) (services.WorkerProfile, error) {
	dto, err := r.fetch(ctx, workerID)
	if err != nil {
		return services.WorkerProfile{}, err
	}

	gender, err := jobpost.ParseGender(dto.Gender)
	if err != nil {
		return services.WorkerProfile{}, err
	}

	return services.WorkerProfile{
		Gender:    gender,
		Languages: dto.Languages,
	}, nil
}

// GetPostcode retrieves the worker's home postcode.
func (r *GormWorkerReader) GetPostcode(
	ctx context.Context, workerID kernel.UUID,
) (kernel.Postcode, error) {
	dto, err := r.fetch(ctx, workerID)
	if err != nil {
		return kernel.Postcode{}, err
	}

	return kernel.NewPostcode(dto.Postcode)
}

func (r *GormWorkerReader) fetch(ctx context.Context, workerID kernel.UUID) (WorkerDTO, error) {
	if err := workerID.Validate(); err != nil {
		return WorkerDTO{}, err
	}

	var dto WorkerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", workerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerDTO{}, errs.NewObjectNotFoundError("worker", workerID.String())
		}
		return WorkerDTO{}, err
	}

	return dto, nil
}

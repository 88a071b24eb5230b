package postgres

import (
	"careshift/internal/adapters/out/postgres/applicationrepo"
	"careshift/internal/adapters/out/postgres/jobpostrepo"
	"careshift/internal/adapters/out/postgres/reviewrepo"
	"careshift/internal/adapters/out/postgres/workerrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted aggregate and
// installs the partial unique indexes that back the cross-record invariants:
// one non-deleted post per (owner, date, startTime) slot, and one non-deleted
// application per (jobPost, worker) pair. GORM's AutoMigrate cannot express
// partial indexes, so they are created with raw DDL.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&jobpostrepo.JobPostDTO{},
		&jobpostrepo.JobPostCareNeedDTO{},
		&jobpostrepo.JobPostLanguageDTO{},
		&jobpostrepo.JobPostPreferenceDTO{},
		&applicationrepo.ApplicationDTO{},
		&applicationrepo.ApplicationPreferenceDTO{},
		&workerrepo.WorkerDTO{},
		&reviewrepo.ReviewDTO{},
	); err != nil {
		return err
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_job_posts_owner_slot
			ON job_posts (owner_id, schedule_date, start_time)
			WHERE deleted = FALSE`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_job_applications_job_worker
			ON job_applications (job_post_id, worker_id)
			WHERE deleted = FALSE`,
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return err
		}
	}

	return nil
}

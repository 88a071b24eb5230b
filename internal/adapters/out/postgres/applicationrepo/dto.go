// Package applicationrepo provides data transfer objects and mapping
// functions for job application persistence. It implements the repository
// pattern for the application aggregate, converting between domain entities
// and database rows.
package applicationrepo

import (
	"time"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ApplicationDTO represents the database structure for persisting job
// application aggregates. Lifecycle metadata groups (response, cancellation,
// check-in/out, completion, report) map to nullable column sets that are
// populated together or not at all. The partial unique index on
// (job_post_id, worker_id) among non-deleted rows is the store-level
// backstop for the one-application-per-worker-per-job invariant.
type ApplicationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobPostID uuid.UUID `gorm:"type:uuid;not null;index"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    int       `gorm:"type:int;not null;index"`
	Message   string    `gorm:"type:text;not null"`
	Deleted   bool      `gorm:"not null"`

	RespondedAt     *time.Time
	ResponseMessage *string `gorm:"type:text"`

	CancelledBy         *string `gorm:"type:varchar(16)"`
	CancellationReason  *string `gorm:"type:varchar(255)"`
	CancellationMessage *string `gorm:"type:text"`
	CancelledAt         *time.Time

	CheckInAt       *time.Time
	CheckInLocation *string `gorm:"type:varchar(255)"`

	CheckOutAt       *time.Time
	CheckOutLocation *string `gorm:"type:varchar(255)"`

	CompletedBy     *string `gorm:"type:varchar(16)"`
	CompletedAt     *time.Time
	CompletionNotes *string `gorm:"type:text"`

	ReportedBy    *string `gorm:"type:varchar(16)"`
	ReportReason  *string `gorm:"type:varchar(255)"`
	ReportMessage *string `gorm:"type:text"`
	ReportedAt    *time.Time

	Preferences []ApplicationPreferenceDTO `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (ApplicationDTO) TableName() string {
	return "job_applications"
}

// ApplicationPreferenceDTO is a junction row recording one job preference the
// applicant asserts to satisfy.
type ApplicationPreferenceDTO struct {
	ApplicationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PreferenceID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ApplicationPreferenceDTO) TableName() string {
	return "application_preferences"
}

// fromDomain converts an application aggregate to its database representation.
func fromDomain(app *application.Application) ApplicationDTO {
	id := app.ID().Bytes()

	dto := ApplicationDTO{
		ID:        id,
		JobPostID: app.JobPostID().Bytes(),
		WorkerID:  app.WorkerID().Bytes(),
		Status:    int(app.Status()),
		Message:   app.Message(),
		Deleted:   app.IsDeleted(),
	}

	if response := app.Response(); response != nil {
		at := response.At
		message := response.Message
		dto.RespondedAt = &at
		dto.ResponseMessage = &message
	}

	if cancellation := app.Cancellation(); cancellation != nil {
		actor := string(cancellation.Actor)
		reason := cancellation.Reason
		message := cancellation.Message
		at := cancellation.At
		dto.CancelledBy = &actor
		dto.CancellationReason = &reason
		dto.CancellationMessage = &message
		dto.CancelledAt = &at
	}

	if checkIn := app.CheckIn(); checkIn != nil {
		at := checkIn.At
		location := checkIn.Location
		dto.CheckInAt = &at
		dto.CheckInLocation = &location
	}

	if checkOut := app.CheckOut(); checkOut != nil {
		at := checkOut.At
		location := checkOut.Location
		dto.CheckOutAt = &at
		dto.CheckOutLocation = &location
	}

	if completion := app.Completion(); completion != nil {
		actor := string(completion.Actor)
		at := completion.At
		notes := completion.Notes
		dto.CompletedBy = &actor
		dto.CompletedAt = &at
		dto.CompletionNotes = &notes
	}

	if report := app.Report(); report != nil {
		actor := string(report.Actor)
		reason := report.Reason
		message := report.Message
		at := report.At
		dto.ReportedBy = &actor
		dto.ReportReason = &reason
		dto.ReportMessage = &message
		dto.ReportedAt = &at
	}

	for _, preferenceID := range app.PreferenceIDs() {
		dto.Preferences = append(dto.Preferences, ApplicationPreferenceDTO{
			ApplicationID: id,
			PreferenceID:  preferenceID.Bytes(),
		})
	}

	return dto
}

// toDomain converts a database DTO back to an application aggregate using
// RestoreApplication.
func toDomain(dto ApplicationDTO) (*application.Application, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	jobPostID, err := kernel.UUIDFromBytes(dto.JobPostID[:])
	if err != nil {
		return nil, err
	}

	workerID, err := kernel.UUIDFromBytes(dto.WorkerID[:])
	if err != nil {
		return nil, err
	}

	preferenceIDs := make([]kernel.UUID, 0, len(dto.Preferences))
	for _, row := range dto.Preferences {
		preferenceID, prefErr := kernel.UUIDFromBytes(row.PreferenceID[:])
		if prefErr != nil {
			return nil, prefErr
		}
		preferenceIDs = append(preferenceIDs, preferenceID)
	}

	restored := application.Restored{
		ID:            id,
		JobPostID:     jobPostID,
		WorkerID:      workerID,
		Status:        application.Status(dto.Status),
		Message:       dto.Message,
		PreferenceIDs: preferenceIDs,
		Deleted:       dto.Deleted,
	}

	if dto.RespondedAt != nil {
		restored.Response = &application.Response{
			At:      *dto.RespondedAt,
			Message: stringValue(dto.ResponseMessage),
		}
	}

	if dto.CancelledAt != nil {
		restored.Cancellation = &application.Cancellation{
			Actor:   application.Actor(stringValue(dto.CancelledBy)),
			Reason:  stringValue(dto.CancellationReason),
			Message: stringValue(dto.CancellationMessage),
			At:      *dto.CancelledAt,
		}
	}

	if dto.CheckInAt != nil {
		restored.CheckIn = &application.CheckEvent{
			At:       *dto.CheckInAt,
			Location: stringValue(dto.CheckInLocation),
		}
	}

	if dto.CheckOutAt != nil {
		restored.CheckOut = &application.CheckEvent{
			At:       *dto.CheckOutAt,
			Location: stringValue(dto.CheckOutLocation),
		}
	}

	if dto.CompletedAt != nil {
		restored.Completion = &application.Completion{
			Actor: application.Actor(stringValue(dto.CompletedBy)),
			At:    *dto.CompletedAt,
			Notes: stringValue(dto.CompletionNotes),
		}
	}

	if dto.ReportedAt != nil {
		restored.Report = &application.Report{
			Actor:   application.Actor(stringValue(dto.ReportedBy)),
			Reason:  stringValue(dto.ReportReason),
			Message: stringValue(dto.ReportMessage),
			At:      *dto.ReportedAt,
		}
	}

	return application.RestoreApplication(restored)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

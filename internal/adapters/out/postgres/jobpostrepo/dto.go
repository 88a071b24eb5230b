// Package jobpostrepo provides data transfer objects and mapping functions
// for job post persistence. It implements the repository pattern for the job
// post aggregate, converting between domain entities and database rows.
package jobpostrepo

import (
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JobPostDTO represents the database structure for persisting job post
// aggregates. Schedule fields are stored in their canonical string layouts;
// the recurrence descriptor is present only on template rows. The partial
// unique index on (owner_id, schedule_date, start_time) among non-deleted
// rows is the store-level backstop for the owner slot invariant.
type JobPostDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Postcode         string    `gorm:"type:varchar(16);not null"`
	Address          string    `gorm:"type:varchar(255);not null"`
	ScheduleDate     string    `gorm:"type:varchar(10);not null;index"`
	StartTime        string    `gorm:"type:varchar(5);not null"`
	EndTime          string    `gorm:"type:varchar(5);not null"`
	ShiftLengthHours int       `gorm:"type:int;not null"`
	RecipientGender  string    `gorm:"type:varchar(16);not null"`
	RecipientAge     int       `gorm:"type:int;not null"`
	CaregiverGender  string    `gorm:"type:varchar(16);not null"`
	PaymentType      string    `gorm:"type:varchar(16);not null"`
	PaymentCost      float64   `gorm:"not null"`
	Status           int       `gorm:"type:int;not null;index"`
	Deleted          bool      `gorm:"not null"`

	ParentJobID         *uuid.UUID     `gorm:"type:uuid;index"`
	RecurrenceFrequency *string        `gorm:"type:varchar(16)"`
	RecurrenceWeekdays  pq.StringArray `gorm:"type:text[]"`
	RecurrenceEndDate   *string        `gorm:"type:varchar(10)"`

	CareNeeds   []JobPostCareNeedDTO   `gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE"`
	Languages   []JobPostLanguageDTO   `gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE"`
	Preferences []JobPostPreferenceDTO `gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (JobPostDTO) TableName() string {
	return "job_posts"
}

// JobPostCareNeedDTO is a junction row linking a job post to one care need.
type JobPostCareNeedDTO struct {
	JobPostID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CareNeed  string    `gorm:"type:varchar(64);primaryKey"`
}

func (JobPostCareNeedDTO) TableName() string {
	return "job_post_care_needs"
}

// JobPostLanguageDTO is a junction row linking a job post to one required language.
type JobPostLanguageDTO struct {
	JobPostID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Language  string    `gorm:"type:varchar(64);primaryKey"`
}

func (JobPostLanguageDTO) TableName() string {
	return "job_post_languages"
}

// JobPostPreferenceDTO is a junction row linking a job post to one declared preference.
type JobPostPreferenceDTO struct {
	JobPostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PreferenceID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (JobPostPreferenceDTO) TableName() string {
	return "job_post_preferences"
}

// fromDomain converts a job post aggregate to its database representation,
// including the junction rows for its relation sets.
func fromDomain(post *jobpost.JobPost) JobPostDTO {
	id := post.ID().Bytes()
	details := post.Details()

	dto := JobPostDTO{
		ID:               id,
		OwnerID:          post.OwnerID().Bytes(),
		Postcode:         details.Postcode.String(),
		Address:          details.Address,
		ScheduleDate:     details.Schedule.DateString(),
		StartTime:        details.Schedule.StartTimeString(),
		EndTime:          details.Schedule.EndTimeString(),
		ShiftLengthHours: details.ShiftLengthHours,
		RecipientGender:  details.RecipientGender.String(),
		RecipientAge:     details.RecipientAge,
		CaregiverGender:  details.CaregiverGender.String(),
		PaymentType:      string(details.Payment.Type),
		PaymentCost:      details.Payment.Cost,
		Status:           int(post.Status()),
		Deleted:          post.IsDeleted(),
	}

	if parentID := post.ParentJobID(); parentID != nil {
		raw := parentID.Bytes()
		dto.ParentJobID = &raw
	}

	if recurrence := post.Recurrence(); recurrence != nil {
		frequency := string(recurrence.Frequency())
		endDate := recurrence.EndDate().Format(kernel.DateLayout)

		weekdays := make(pq.StringArray, 0, len(recurrence.Weekdays()))
		for _, weekday := range recurrence.Weekdays() {
			weekdays = append(weekdays, weekday.String())
		}

		dto.RecurrenceFrequency = &frequency
		dto.RecurrenceWeekdays = weekdays
		dto.RecurrenceEndDate = &endDate
	}

	for _, careNeed := range details.CareNeeds {
		dto.CareNeeds = append(dto.CareNeeds, JobPostCareNeedDTO{JobPostID: id, CareNeed: careNeed})
	}
	for _, language := range details.Languages {
		dto.Languages = append(dto.Languages, JobPostLanguageDTO{JobPostID: id, Language: language})
	}
	for _, preferenceID := range details.PreferenceIDs {
		dto.Preferences = append(dto.Preferences, JobPostPreferenceDTO{
			JobPostID:    id,
			PreferenceID: preferenceID.Bytes(),
		})
	}

	return dto
}

// toDomain converts a database DTO back to a job post aggregate using
// RestoreJobPost, including the recurrence descriptor for template rows.
func toDomain(dto JobPostDTO) (*jobpost.JobPost, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var parentJobID *kernel.UUID
	if dto.ParentJobID != nil {
		parent, parentErr := kernel.UUIDFromBytes((*dto.ParentJobID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentJobID = &parent
	}

	details, err := detailsFromDTO(dto)
	if err != nil {
		return nil, err
	}

	var recurrence *jobpost.Recurrence
	if dto.RecurrenceFrequency != nil {
		endDate := ""
		if dto.RecurrenceEndDate != nil {
			endDate = *dto.RecurrenceEndDate
		}

		restored, recErr := jobpost.NewRecurrence(
			*dto.RecurrenceFrequency, dto.RecurrenceWeekdays, endDate,
		)
		if recErr != nil {
			return nil, recErr
		}
		recurrence = &restored
	}

	return jobpost.RestoreJobPost(
		id, ownerID, details, jobpost.Status(dto.Status), parentJobID, recurrence, dto.Deleted,
	)
}

func detailsFromDTO(dto JobPostDTO) (jobpost.Details, error) {
	schedule, err := kernel.NewSchedule(dto.ScheduleDate, dto.StartTime, dto.EndTime)
	if err != nil {
		return jobpost.Details{}, err
	}

	postcode, err := kernel.NewPostcode(dto.Postcode)
	if err != nil {
		return jobpost.Details{}, err
	}

	recipientGender, err := jobpost.ParseGender(dto.RecipientGender)
	if err != nil {
		return jobpost.Details{}, err
	}

	caregiverGender, err := jobpost.ParseGender(dto.CaregiverGender)
	if err != nil {
		return jobpost.Details{}, err
	}

	paymentType, err := jobpost.ParsePaymentType(dto.PaymentType)
	if err != nil {
		return jobpost.Details{}, err
	}

	payment, err := jobpost.NewPayment(paymentType, dto.PaymentCost)
	if err != nil {
		return jobpost.Details{}, err
	}

	careNeeds := make([]string, 0, len(dto.CareNeeds))
	for _, row := range dto.CareNeeds {
		careNeeds = append(careNeeds, row.CareNeed)
	}

	languages := make([]string, 0, len(dto.Languages))
	for _, row := range dto.Languages {
		languages = append(languages, row.Language)
	}

	preferenceIDs := make([]kernel.UUID, 0, len(dto.Preferences))
	for _, row := range dto.Preferences {
		preferenceID, prefErr := kernel.UUIDFromBytes(row.PreferenceID[:])
		if prefErr != nil {
			return jobpost.Details{}, prefErr
		}
		preferenceIDs = append(preferenceIDs, preferenceID)
	}

	return jobpost.Details{
		Postcode:         postcode,
		Address:          dto.Address,
		Schedule:         schedule,
		ShiftLengthHours: dto.ShiftLengthHours,
		RecipientGender:  recipientGender,
		RecipientAge:     dto.RecipientAge,
		CaregiverGender:  caregiverGender,
		Payment:          payment,
		CareNeeds:        careNeeds,
		Languages:        languages,
		PreferenceIDs:    preferenceIDs,
	}, nil
}

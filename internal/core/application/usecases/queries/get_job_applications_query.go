package queries

import (
	"errors"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
	"careshift/internal/pkg/guard"
)

var (
	ErrGetJobApplicationsQueryIsNotConstructed = errors.New(
		"GetJobApplicationsQuery must be created via NewGetJobApplicationsQuery constructor",
	)
)

// GetJobApplicationsQuery retrieves the applications on one job post for its
// owner, ranked by match score. Only the post's owner may run it.
type GetJobApplicationsQuery struct {
	jobPostID kernel.UUID
	ownerID   kernel.UUID
	page      int
	pageSize  int

	guard guard.ConstructorGuard
}

// NewGetJobApplicationsQuery creates an application listing query for one job
// post. pageSize zero falls back to DefaultPageSize.
func NewGetJobApplicationsQuery(
	jobPostID kernel.UUID, ownerID kernel.UUID, page int, pageSize int,
) (GetJobApplicationsQuery, error) {
	query := GetJobApplicationsQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setJobPostID(jobPostID),
		query.setOwnerID(ownerID),
		query.setPage(page),
		query.setPageSize(pageSize),
	); err != nil {
		return GetJobApplicationsQuery{}, err
	}

	return query, nil
}

func (q GetJobApplicationsQuery) JobPostID() kernel.UUID { return q.jobPostID }
func (q GetJobApplicationsQuery) OwnerID() kernel.UUID   { return q.ownerID }
func (q GetJobApplicationsQuery) Page() int              { return q.page }
func (q GetJobApplicationsQuery) PageSize() int          { return q.pageSize }

// Validate ensures the query was created through the constructor.
func (q GetJobApplicationsQuery) Validate() error {
	return q.guard.Validate(ErrGetJobApplicationsQueryIsNotConstructed)
}

func (q *GetJobApplicationsQuery) setJobPostID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("jobPostId", err)
	}

	q.jobPostID = id
	return nil
}

func (q *GetJobApplicationsQuery) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("ownerId", err)
	}

	q.ownerID = id
	return nil
}

func (q *GetJobApplicationsQuery) setPage(page int) error {
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}

	q.page = page
	return nil
}

func (q *GetJobApplicationsQuery) setPageSize(pageSize int) error {
	if pageSize == 0 {
		q.pageSize = DefaultPageSize
		return nil
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, MaxPageSize)
	}

	q.pageSize = pageSize
	return nil
}

// ApplicationSummary is the read model for one application in the owner's
// listing. MatchScore ranks the candidate against the post's requirements;
// distance is worker-to-post; review stats are best-effort and absent when
// the review source is unavailable.
type ApplicationSummary struct {
	ID            kernel.UUID
	JobPostID     kernel.UUID
	WorkerID      kernel.UUID
	Status        string
	Message       string
	PreferenceIDs []kernel.UUID

	MatchScore    int
	DistanceKm    float64
	DistanceMiles float64
	AverageRating *float64
	ReviewCount   int
}

// GetJobApplicationsQueryResponse is one page of a job post's applications,
// sorted by match score descending.
type GetJobApplicationsQueryResponse struct {
	Applications []ApplicationSummary
	Total        int
	Page         int
	PageSize     int
}

// jobPostRow carries the persisted fields needed to rebuild the aggregate
// for scoring and ownership checks.
type jobPostRow struct {
	ID               kernel.UUID
	OwnerID          kernel.UUID
	Postcode         string
	Address          string
	Date             string
	StartTime        string
	EndTime          string
	ShiftLengthHours int
	RecipientGender  string
	RecipientAge     int
	CaregiverGender  string
	PaymentType      string
	PaymentCost      float64
	Status           jobpost.Status
	CareNeeds        []string
	Languages        []string
	PreferenceIDs    []kernel.UUID
}

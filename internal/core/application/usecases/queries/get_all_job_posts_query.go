// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
	"careshift/internal/pkg/guard"
)

// Pagination bounds shared by all list queries.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrGetAllJobPostsQueryIsNotConstructed = errors.New(
		"GetAllJobPostsQuery must be created via NewGetAllJobPostsQuery constructor",
	)
)

// JobPostFilter narrows the job post listing. Zero values mean "no filter".
// Dates use the kernel date layout and bound the schedule date inclusively.
type JobPostFilter struct {
	OwnerID  *kernel.UUID
	Statuses []jobpost.Status
	DateFrom string
	DateTo   string
}

// GetAllJobPostsQuery retrieves a filtered, paginated page of job posts.
// When a requesting worker is supplied the results carry that worker's
// distance to each post and the status of any application they hold on it,
// and are sorted nearest first; without a worker context results are sorted
// by schedule date and start time.
//
// Example:
//
//	query, err := NewGetAllJobPostsQuery(
//	    JobPostFilter{Statuses: []jobpost.Status{jobpost.Open}},
//	    &workerID, 1, 20,
//	)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
type GetAllJobPostsQuery struct {
	filter   JobPostFilter
	workerID *kernel.UUID
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewGetAllJobPostsQuery creates a job post listing query.
// workerID is optional; pageSize zero falls back to DefaultPageSize.
func NewGetAllJobPostsQuery(
	filter JobPostFilter, workerID *kernel.UUID, page int, pageSize int,
) (GetAllJobPostsQuery, error) {
	query := GetAllJobPostsQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setFilter(filter),
		query.setWorkerID(workerID),
		query.setPage(page),
		query.setPageSize(pageSize),
	); err != nil {
		return GetAllJobPostsQuery{}, err
	}

	return query, nil
}

func (q GetAllJobPostsQuery) Filter() JobPostFilter    { return q.filter }
func (q GetAllJobPostsQuery) WorkerID() *kernel.UUID   { return q.workerID }
func (q GetAllJobPostsQuery) Page() int                { return q.page }
func (q GetAllJobPostsQuery) PageSize() int            { return q.pageSize }

// Validate ensures the query was created through the constructor.
func (q GetAllJobPostsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllJobPostsQueryIsNotConstructed)
}

func (q *GetAllJobPostsQuery) setFilter(filter JobPostFilter) error {
	if filter.OwnerID != nil {
		if err := filter.OwnerID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("ownerId", err)
		}
	}

	for _, status := range filter.Statuses {
		if err := status.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("statuses", err)
		}
	}

	for name, raw := range map[string]string{
		"dateFrom": filter.DateFrom,
		"dateTo":   filter.DateTo,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.Parse(kernel.DateLayout, raw); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(name, err)
		}
	}

	q.filter = filter
	return nil
}

func (q *GetAllJobPostsQuery) setWorkerID(workerID *kernel.UUID) error {
	if workerID != nil {
		if err := workerID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("workerId", err)
		}
	}

	q.workerID = workerID
	return nil
}

func (q *GetAllJobPostsQuery) setPage(page int) error {
	if page < 1 {
		return errs.NewValueIsOutOfRangeError("page", page, 1, nil)
	}

	q.page = page
	return nil
}

func (q *GetAllJobPostsQuery) setPageSize(pageSize int) error {
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

// JobPostSummary is the read model for one job post in the listing.
// DistanceKm/DistanceMiles and ApplicationStatus are populated only when the
// query carries a requesting worker; an unresolved postcode yields the
// unknown-distance sentinel rather than an error.
type JobPostSummary struct {
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
	Status           string
	ParentJobID      *kernel.UUID
	CareNeeds        []string
	Languages        []string

	DistanceKm        *float64
	DistanceMiles     *float64
	ApplicationStatus *string
}

// GetAllJobPostsQueryResponse is one page of the job post listing.
type GetAllJobPostsQueryResponse struct {
	JobPosts []JobPostSummary
	Total    int
	Page     int
	PageSize int
}

package queries

import (
	"context"
	"sort"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllJobPostsQueryHandler retrieves the job post listing from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern,
// then enriches rows with distance and applied-status annotations when a
// requesting worker context is present.
type GetAllJobPostsQueryHandler struct {
	db       *gorm.DB
	distance services.GeoDistanceService
	workers  ports.WorkerReader
}

// NewGetAllJobPostsQueryHandler creates a handler for job post listing queries.
func NewGetAllJobPostsQueryHandler(
	db *gorm.DB, distance services.GeoDistanceService, workers ports.WorkerReader,
) GetAllJobPostsQueryHandler {
	return GetAllJobPostsQueryHandler{db: db, distance: distance, workers: workers}
}

// Handle executes the listing query. Recurrence templates are excluded: only
// individually bookable posts are listed. With a worker context results are
// sorted nearest first (unknown distances last); otherwise by schedule date
// and start time. Total counts all matches before pagination.
func (h GetAllJobPostsQueryHandler) Handle(
	ctx context.Context,
	query GetAllJobPostsQuery,
) (GetAllJobPostsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllJobPostsQueryResponse{}, err
	}

	posts, err := h.fetchPosts(ctx, query.Filter())
	if err != nil {
		return GetAllJobPostsQueryResponse{}, err
	}

	if err = h.attachRelations(ctx, posts); err != nil {
		return GetAllJobPostsQueryResponse{}, err
	}

	if workerID := query.WorkerID(); workerID != nil {
		if err = h.annotateForWorker(ctx, posts, *workerID); err != nil {
			return GetAllJobPostsQueryResponse{}, err
		}
		sortByDistance(posts)
	}

	total := len(posts)
	return GetAllJobPostsQueryResponse{
		JobPosts: paginate(posts, query.Page(), query.PageSize()),
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}

func (h GetAllJobPostsQueryHandler) fetchPosts(
	ctx context.Context, filter JobPostFilter,
) ([]*JobPostSummary, error) {
	sql := `
		SELECT
			id,
			owner_id,
			postcode,
			address,
			schedule_date,
			start_time,
			end_time,
			shift_length_hours,
			recipient_gender,
			recipient_age,
			caregiver_gender,
			payment_type,
			payment_cost,
			status,
			parent_job_id
		FROM job_posts
		WHERE deleted = FALSE
		  AND recurrence_frequency IS NULL
	`
	args := make([]any, 0, 4)

	if filter.OwnerID != nil {
		sql += " AND owner_id = ?"
		args = append(args, filter.OwnerID.Bytes())
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, int(status))
		}
		sql += " AND status IN (?)"
		args = append(args, statuses)
	}
	if filter.DateFrom != "" {
		sql += " AND schedule_date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		sql += " AND schedule_date <= ?"
		args = append(args, filter.DateTo)
	}

	sql += " ORDER BY schedule_date, start_time"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]*JobPostSummary, 0)

	for rows.Next() {
		var summary JobPostSummary
		var id, ownerID uuid.UUID
		var parentJobID *uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&ownerID,
			&summary.Postcode,
			&summary.Address,
			&summary.Date,
			&summary.StartTime,
			&summary.EndTime,
			&summary.ShiftLengthHours,
			&summary.RecipientGender,
			&summary.RecipientAge,
			&summary.CaregiverGender,
			&summary.PaymentType,
			&summary.PaymentCost,
			&status,
			&parentJobID,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.OwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
			return nil, err
		}
		if parentJobID != nil {
			parent, parentErr := kernel.UUIDFromBytes((*parentJobID)[:])
			if parentErr != nil {
				return nil, parentErr
			}
			summary.ParentJobID = &parent
		}
		summary.Status = jobpost.Status(status).String()

		posts = append(posts, &summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// attachRelations loads the care-need and language junction rows for the
// fetched posts in two queries instead of one per post.
func (h GetAllJobPostsQueryHandler) attachRelations(
	ctx context.Context, posts []*JobPostSummary,
) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[string]*JobPostSummary, len(posts))
	ids := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		byID[post.ID.String()] = post
		ids = append(ids, post.ID.Bytes())
	}

	careNeeds, err := h.fetchJunction(ctx,
		"SELECT job_post_id, care_need FROM job_post_care_needs WHERE job_post_id IN (?)", ids)
	if err != nil {
		return err
	}
	languages, err := h.fetchJunction(ctx,
		"SELECT job_post_id, language FROM job_post_languages WHERE job_post_id IN (?)", ids)
	if err != nil {
		return err
	}

	for id, values := range careNeeds {
		if post, ok := byID[id]; ok {
			post.CareNeeds = values
		}
	}
	for id, values := range languages {
		if post, ok := byID[id]; ok {
			post.Languages = values
		}
	}

	return nil
}

func (h GetAllJobPostsQueryHandler) fetchJunction(
	ctx context.Context, sql string, ids []uuid.UUID,
) (map[string][]string, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string][]string)

	for rows.Next() {
		var jobPostID uuid.UUID
		var value string

		if err = rows.Scan(&jobPostID, &value); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(jobPostID[:])
		if idErr != nil {
			return nil, idErr
		}
		values[id.String()] = append(values[id.String()], value)
	}

	return values, rows.Err()
}

// annotateForWorker fills the worker-context annotations: the status of any
// application the worker holds on each post, and the great-circle distance
// from the worker's postcode to the post's. Distance degrades to the
// unknown sentinel when either postcode fails to resolve.
func (h GetAllJobPostsQueryHandler) annotateForWorker(
	ctx context.Context, posts []*JobPostSummary, workerID kernel.UUID,
) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID.Bytes())
	}

	applied, err := h.fetchAppliedStatuses(ctx, workerID, ids)
	if err != nil {
		return err
	}

	workerPostcode, postcodeErr := h.workers.GetPostcode(ctx, workerID)

	for _, post := range posts {
		if status, ok := applied[post.ID.String()]; ok {
			post.ApplicationStatus = &status
		}

		km, miles := float64(services.UnknownDistance), float64(services.UnknownDistance)
		if postcodeErr == nil {
			if postPostcode, pcErr := kernel.NewPostcode(post.Postcode); pcErr == nil {
				d := h.distance.Between(ctx, workerPostcode, postPostcode)
				km, miles = d.Km, d.Miles
			}
		}
		post.DistanceKm = &km
		post.DistanceMiles = &miles
	}

	return nil
}

func (h GetAllJobPostsQueryHandler) fetchAppliedStatuses(
	ctx context.Context, workerID kernel.UUID, jobPostIDs []uuid.UUID,
) (map[string]string, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT job_post_id, status
		FROM job_applications
		WHERE worker_id = ?
		  AND deleted = FALSE
		  AND job_post_id IN (?)
	`, workerID.Bytes(), jobPostIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make(map[string]string)

	for rows.Next() {
		var jobPostID uuid.UUID
		var status int

		if err = rows.Scan(&jobPostID, &status); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(jobPostID[:])
		if idErr != nil {
			return nil, idErr
		}
		statuses[id.String()] = application.Status(status).String()
	}

	return statuses, rows.Err()
}

// sortByDistance orders nearest first; the unknown-distance sentinel is the
// largest value, so unresolved postcodes naturally rank last. Ties keep the
// date/time order established by the SQL.
func sortByDistance(posts []*JobPostSummary) {
	sort.SliceStable(posts, func(i, j int) bool {
		return *posts[i].DistanceKm < *posts[j].DistanceKm
	})
}

func paginate(posts []*JobPostSummary, page int, pageSize int) []JobPostSummary {
	start := (page - 1) * pageSize
	if start >= len(posts) {
		return []JobPostSummary{}
	}

	end := start + pageSize
	if end > len(posts) {
		end = len(posts)
	}

	result := make([]JobPostSummary, 0, end-start)
	for _, post := range posts[start:end] {
		result = append(result, *post)
	}
	return result
}

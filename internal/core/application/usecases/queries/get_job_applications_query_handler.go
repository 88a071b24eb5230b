package queries

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetJobApplicationsQueryHandler retrieves a job post's applications and
// ranks them for the owner. Each row is annotated with the candidate's match
// score against the post's requirements, the worker-to-post distance, and
// best-effort review statistics.
type GetJobApplicationsQueryHandler struct {
	db       *gorm.DB
	scorer   services.MatchScorer
	distance services.GeoDistanceService
	workers  ports.WorkerReader
	reviews  ports.ReviewReader
}

// NewGetJobApplicationsQueryHandler creates a handler for the owner's
// application listing.
func NewGetJobApplicationsQueryHandler(
	db *gorm.DB,
	scorer services.MatchScorer,
	distance services.GeoDistanceService,
	workers ports.WorkerReader,
	reviews ports.ReviewReader,
) GetJobApplicationsQueryHandler {
	return GetJobApplicationsQueryHandler{
		db:       db,
		scorer:   scorer,
		distance: distance,
		workers:  workers,
		reviews:  reviews,
	}
}

// Handle executes the query. Only the post's owner may list its applications;
// anyone else is denied. Results are sorted by match score descending and
// paginated; Total counts all applications on the post before pagination.
// Review-stat and profile lookups are best-effort: a failing source leaves
// the annotation at its zero value instead of failing the query.
func (h GetJobApplicationsQueryHandler) Handle(
	ctx context.Context,
	query GetJobApplicationsQuery,
) (GetJobApplicationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetJobApplicationsQueryResponse{}, err
	}

	row, err := h.fetchJobPost(ctx, query.JobPostID())
	if err != nil {
		return GetJobApplicationsQueryResponse{}, err
	}
	if !row.OwnerID.IsEqual(query.OwnerID()) {
		return GetJobApplicationsQueryResponse{}, errs.NewAccessDeniedError(
			"get job applications", query.OwnerID().String(),
		)
	}

	post, err := restoreJobPost(row)
	if err != nil {
		return GetJobApplicationsQueryResponse{}, err
	}

	summaries, err := h.fetchApplications(ctx, query.JobPostID())
	if err != nil {
		return GetJobApplicationsQueryResponse{}, err
	}

	if err = h.annotate(ctx, post, row, summaries); err != nil {
		return GetJobApplicationsQueryResponse{}, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].MatchScore > summaries[j].MatchScore
	})

	total := len(summaries)
	return GetJobApplicationsQueryResponse{
		Applications: paginateApplications(summaries, query.Page(), query.PageSize()),
		Total:        total,
		Page:         query.Page(),
		PageSize:     query.PageSize(),
	}, nil
}

func (h GetJobApplicationsQueryHandler) fetchJobPost(
	ctx context.Context, jobPostID kernel.UUID,
) (jobPostRow, error) {
	row := jobPostRow{ID: jobPostID}

	var ownerID uuid.UUID
	var status int

	err := h.db.WithContext(ctx).Raw(`
		SELECT
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
			status
		FROM job_posts
		WHERE id = ? AND deleted = FALSE
	`, jobPostID.Bytes()).Row().Scan(
		&ownerID,
		&row.Postcode,
		&row.Address,
		&row.Date,
		&row.StartTime,
		&row.EndTime,
		&row.ShiftLengthHours,
		&row.RecipientGender,
		&row.RecipientAge,
		&row.CaregiverGender,
		&row.PaymentType,
		&row.PaymentCost,
		&status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return jobPostRow{}, errs.NewObjectNotFoundError("jobPost", jobPostID.String())
		}
		return jobPostRow{}, err
	}

	if row.OwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
		return jobPostRow{}, err
	}
	row.Status = jobpost.Status(status)

	if row.CareNeeds, err = h.fetchStrings(ctx,
		"SELECT care_need FROM job_post_care_needs WHERE job_post_id = ?", jobPostID); err != nil {
		return jobPostRow{}, err
	}
	if row.Languages, err = h.fetchStrings(ctx,
		"SELECT language FROM job_post_languages WHERE job_post_id = ?", jobPostID); err != nil {
		return jobPostRow{}, err
	}
	if row.PreferenceIDs, err = h.fetchUUIDs(ctx,
		"SELECT preference_id FROM job_post_preferences WHERE job_post_id = ?", jobPostID); err != nil {
		return jobPostRow{}, err
	}

	return row, nil
}

func (h GetJobApplicationsQueryHandler) fetchStrings(
	ctx context.Context, sql string, id kernel.UUID,
) ([]string, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err = rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, rows.Err()
}

func (h GetJobApplicationsQueryHandler) fetchUUIDs(
	ctx context.Context, sql string, id kernel.UUID,
) ([]kernel.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []kernel.UUID
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		value, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		values = append(values, value)
	}

	return values, rows.Err()
}

func (h GetJobApplicationsQueryHandler) fetchApplications(
	ctx context.Context, jobPostID kernel.UUID,
) ([]*ApplicationSummary, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, worker_id, status, message
		FROM job_applications
		WHERE job_post_id = ? AND deleted = FALSE
	`, jobPostID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*ApplicationSummary, 0)

	for rows.Next() {
		summary := ApplicationSummary{JobPostID: jobPostID}
		var id, workerID uuid.UUID
		var status int

		if err = rows.Scan(&id, &workerID, &status, &summary.Message); err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.WorkerID, err = kernel.UUIDFromBytes(workerID[:]); err != nil {
			return nil, err
		}
		summary.Status = application.Status(status).String()

		summaries = append(summaries, &summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		if summary.PreferenceIDs, err = h.fetchUUIDs(ctx,
			"SELECT preference_id FROM application_preferences WHERE application_id = ?",
			summary.ID); err != nil {
			return nil, err
		}
	}

	return summaries, nil
}

// annotate fills match score, distance and review stats per application.
// A worker profile that fails to load scores as an empty profile; a failing
// postcode lookup degrades the distance to the unknown sentinel; a failing
// review source leaves the stats absent. None of these fail the query.
func (h GetJobApplicationsQueryHandler) annotate(
	ctx context.Context, post *jobpost.JobPost, row jobPostRow, summaries []*ApplicationSummary,
) error {
	if len(summaries) == 0 {
		return nil
	}

	jobPostcode, err := kernel.NewPostcode(row.Postcode)
	if err != nil {
		return err
	}

	workerIDs := make([]kernel.UUID, 0, len(summaries))
	for _, summary := range summaries {
		workerIDs = append(workerIDs, summary.WorkerID)
	}

	stats, statsErr := h.reviews.GetStats(ctx, workerIDs)
	if statsErr != nil {
		stats = nil
	}

	for _, summary := range summaries {
		profile, profileErr := h.workers.GetProfile(ctx, summary.WorkerID)
		if profileErr != nil {
			profile = services.WorkerProfile{}
		}

		score, scoreErr := h.scorer.Score(post, profile, summary.PreferenceIDs)
		if scoreErr != nil {
			return scoreErr
		}
		summary.MatchScore = score

		km, miles := float64(services.UnknownDistance), float64(services.UnknownDistance)
		if workerPostcode, pcErr := h.workers.GetPostcode(ctx, summary.WorkerID); pcErr == nil {
			d := h.distance.Between(ctx, workerPostcode, jobPostcode)
			km, miles = d.Km, d.Miles
		}
		summary.DistanceKm = km
		summary.DistanceMiles = miles

		if workerStats, ok := stats[summary.WorkerID]; ok {
			rating := workerStats.AverageRating
			summary.AverageRating = &rating
			summary.ReviewCount = workerStats.ReviewCount
		}
	}

	return nil
}

// restoreJobPost rebuilds the aggregate from its persisted row so the match
// scorer can evaluate candidates against it.
func restoreJobPost(row jobPostRow) (*jobpost.JobPost, error) {
	schedule, err := kernel.NewSchedule(row.Date, row.StartTime, row.EndTime)
	if err != nil {
		return nil, err
	}

	postcode, err := kernel.NewPostcode(row.Postcode)
	if err != nil {
		return nil, err
	}

	recipientGender, err := jobpost.ParseGender(row.RecipientGender)
	if err != nil {
		return nil, err
	}

	caregiverGender, err := jobpost.ParseGender(row.CaregiverGender)
	if err != nil {
		return nil, err
	}

	paymentType, err := jobpost.ParsePaymentType(row.PaymentType)
	if err != nil {
		return nil, err
	}

	payment, err := jobpost.NewPayment(paymentType, row.PaymentCost)
	if err != nil {
		return nil, err
	}

	details := jobpost.Details{
		Postcode:         postcode,
		Address:          row.Address,
		Schedule:         schedule,
		ShiftLengthHours: row.ShiftLengthHours,
		RecipientGender:  recipientGender,
		RecipientAge:     row.RecipientAge,
		CaregiverGender:  caregiverGender,
		Payment:          payment,
		CareNeeds:        row.CareNeeds,
		Languages:        row.Languages,
		PreferenceIDs:    row.PreferenceIDs,
	}

	return jobpost.RestoreJobPost(row.ID, row.OwnerID, details, row.Status, nil, nil, false)
}

func paginateApplications(
	summaries []*ApplicationSummary, page int, pageSize int,
) []ApplicationSummary {
	start := (page - 1) * pageSize
	if start >= len(summaries) {
		return []ApplicationSummary{}
	}

	end := start + pageSize
	if end > len(summaries) {
		end = len(summaries)
	}

	result := make([]ApplicationSummary, 0, end-start)
	for _, summary := range summaries[start:end] {
		result = append(result, *summary)
	}
	return result
}

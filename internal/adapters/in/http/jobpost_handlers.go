package http

import (
	"net/http"
	"time"

	"careshift/internal/core/application/usecases/commands"
	"careshift/internal/core/application/usecases/queries"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type jobPostDetailsRequest struct {
	Postcode         string   `json:"postcode"`
	Address          string   `json:"address"`
	Date             string   `json:"date"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	ShiftLengthHours int      `json:"shiftLengthHours"`
	RecipientGender  string   `json:"recipientGender"`
	RecipientAge     int      `json:"recipientAge"`
	CaregiverGender  string   `json:"caregiverGender"`
	PaymentType      string   `json:"paymentType"`
	PaymentCost      float64  `json:"paymentCost"`
	CareNeeds        []string `json:"careNeeds"`
	Languages        []string `json:"languages"`
	PreferenceIDs    []string `json:"preferenceIds"`
}

func (r jobPostDetailsRequest) toDetails() (jobpost.Details, error) {
	postcode, err := kernel.NewPostcode(r.Postcode)
	if err != nil {
		return jobpost.Details{}, err
	}

	schedule, err := kernel.NewSchedule(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return jobpost.Details{}, err
	}

	recipientGender, err := jobpost.ParseGender(r.RecipientGender)
	if err != nil {
		return jobpost.Details{}, err
	}

	caregiverGender, err := jobpost.ParseGender(r.CaregiverGender)
	if err != nil {
		return jobpost.Details{}, err
	}

	paymentType, err := jobpost.ParsePaymentType(r.PaymentType)
	if err != nil {
		return jobpost.Details{}, err
	}

	payment, err := jobpost.NewPayment(paymentType, r.PaymentCost)
	if err != nil {
		return jobpost.Details{}, err
	}

	preferenceIDs, err := parseUUIDs(r.PreferenceIDs)
	if err != nil {
		return jobpost.Details{}, err
	}

	return jobpost.Details{
		Postcode:         postcode,
		Address:          r.Address,
		Schedule:         schedule,
		ShiftLengthHours: r.ShiftLengthHours,
		RecipientGender:  recipientGender,
		RecipientAge:     r.RecipientAge,
		CaregiverGender:  caregiverGender,
		Payment:          payment,
		CareNeeds:        r.CareNeeds,
		Languages:        r.Languages,
		PreferenceIDs:    preferenceIDs,
	}, nil
}

type recurrenceRequest struct {
	Frequency string   `json:"frequency"`
	Weekdays  []string `json:"weekdays"`
	EndDate   string   `json:"endDate"`
}

type createJobPostRequest struct {
	OwnerID string `json:"ownerId"`
	jobPostDetailsRequest
	Recurrence *recurrenceRequest `json:"recurrence"`
}

// CreateJobPost handles POST /api/v1/job-posts.
// A request carrying a recurrence descriptor creates a weekly series.
func (s *Server) CreateJobPost(ctx echo.Context) error {
	var req createJobPostRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner ID")
	}

	details, err := req.toDetails()
	if err != nil {
		return respondError(ctx, err)
	}

	var cmd commands.CreateJobPostCommand
	if req.Recurrence != nil {
		recurrence, recErr := jobpost.NewRecurrence(
			req.Recurrence.Frequency, req.Recurrence.Weekdays, req.Recurrence.EndDate)
		if recErr != nil {
			return respondError(ctx, recErr)
		}
		cmd, err = commands.NewCreateRecurringJobPostCommand(ownerID, details, recurrence)
	} else {
		cmd, err = commands.NewCreateJobPostCommand(ownerID, details)
	}
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CreateJobPost.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id": cmd.JobPostID().String(),
	})
}

type updateJobPostRequest struct {
	ActorID          string   `json:"actorId"`
	Postcode         *string  `json:"postcode"`
	Address          *string  `json:"address"`
	Date             *string  `json:"date"`
	StartTime        *string  `json:"startTime"`
	EndTime          *string  `json:"endTime"`
	ShiftLengthHours *int     `json:"shiftLengthHours"`
	RecipientGender  *string  `json:"recipientGender"`
	RecipientAge     *int     `json:"recipientAge"`
	CaregiverGender  *string  `json:"caregiverGender"`
	PaymentType      *string  `json:"paymentType"`
	PaymentCost      *float64 `json:"paymentCost"`
	CareNeeds        []string `json:"careNeeds"`
	Languages        []string `json:"languages"`
	PreferenceIDs    []string `json:"preferenceIds"`
}

//nolint:cyclop //field-by-field patch assembly is a flat checklist
func (r updateJobPostRequest) toPatch() (jobpost.Patch, error) {
	patch := jobpost.Patch{
		Address:          r.Address,
		ShiftLengthHours: r.ShiftLengthHours,
		RecipientAge:     r.RecipientAge,
		CareNeeds:        r.CareNeeds,
		Languages:        r.Languages,
	}

	if r.Postcode != nil {
		postcode, err := kernel.NewPostcode(*r.Postcode)
		if err != nil {
			return jobpost.Patch{}, err
		}
		patch.Postcode = &postcode
	}

	if r.Date != nil || r.StartTime != nil || r.EndTime != nil {
		if r.Date == nil || r.StartTime == nil || r.EndTime == nil {
			return jobpost.Patch{}, errInvalidSchedulePatch
		}
		schedule, err := kernel.NewSchedule(*r.Date, *r.StartTime, *r.EndTime)
		if err != nil {
			return jobpost.Patch{}, err
		}
		patch.Schedule = &schedule
	}

	if r.RecipientGender != nil {
		gender, err := jobpost.ParseGender(*r.RecipientGender)
		if err != nil {
			return jobpost.Patch{}, err
		}
		patch.RecipientGender = &gender
	}

	if r.CaregiverGender != nil {
		gender, err := jobpost.ParseGender(*r.CaregiverGender)
		if err != nil {
			return jobpost.Patch{}, err
		}
		patch.CaregiverGender = &gender
	}

	if r.PaymentType != nil || r.PaymentCost != nil {
		if r.PaymentType == nil || r.PaymentCost == nil {
			return jobpost.Patch{}, errInvalidPaymentPatch
		}
		paymentType, err := jobpost.ParsePaymentType(*r.PaymentType)
		if err != nil {
			return jobpost.Patch{}, err
		}
		payment, err := jobpost.NewPayment(paymentType, *r.PaymentCost)
		if err != nil {
			return jobpost.Patch{}, err
		}
		patch.Payment = &payment
	}

	if r.PreferenceIDs != nil {
		preferenceIDs, err := parseUUIDs(r.PreferenceIDs)
		if err != nil {
			return jobpost.Patch{}, err
		}
		patch.PreferenceIDs = preferenceIDs
	}

	return patch, nil
}

// UpdateJobPost handles PATCH /api/v1/job-posts/:id.
// Only fields present in the body are touched; care needs, languages and
// preference selections replace the stored set when present.
func (s *Server) UpdateJobPost(ctx echo.Context) error {
	jobPostID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid job post ID")
	}

	var req updateJobPostRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	patch, err := req.toPatch()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateJobPostCommand(jobPostID, actorID, patch)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.UpdateJobPost.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type actorRequest struct {
	ActorID string `json:"actorId"`
}

// CloseJobPost handles POST /api/v1/job-posts/:id/close.
func (s *Server) CloseJobPost(ctx echo.Context) error {
	jobPostID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid job post ID")
	}

	var req actorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	cmd, err := commands.NewCloseJobPostCommand(jobPostID, actorID, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CloseJobPost.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type repostRequest struct {
	ActorID   string `json:"actorId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (r repostRequest) parse(ctx echo.Context) (kernel.UUID, kernel.UUID, kernel.Schedule, error) {
	jobPostID, err := pathUUID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.Schedule{}, err
	}

	actorID, err := kernel.UUIDFromString(r.ActorID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.Schedule{}, err
	}

	schedule, err := kernel.NewSchedule(r.Date, r.StartTime, r.EndTime)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.Schedule{}, err
	}

	return jobPostID, actorID, schedule, nil
}

// RepostExpiredJob handles POST /api/v1/job-posts/:id/repost-expired.
func (s *Server) RepostExpiredJob(ctx echo.Context) error {
	var req repostRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	jobPostID, actorID, schedule, err := req.parse(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRepostExpiredJobCommand(jobPostID, actorID, schedule, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.RepostExpiredJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id": cmd.NewJobPostID().String(),
	})
}

// RepostPastJob handles POST /api/v1/job-posts/:id/repost-past.
func (s *Server) RepostPastJob(ctx echo.Context) error {
	var req repostRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	jobPostID, actorID, schedule, err := req.parse(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRepostPastJobCommand(jobPostID, actorID, schedule, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.RepostPastJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id": cmd.NewJobPostID().String(),
	})
}

type bulkRowRequest struct {
	RowNumber        int      `json:"rowNumber"`
	Postcode         string   `json:"postcode"`
	Address          string   `json:"address"`
	Date             string   `json:"date"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
	ShiftLengthHours string   `json:"shiftLengthHours"`
	RecipientGender  string   `json:"recipientGender"`
	RecipientAge     string   `json:"recipientAge"`
	CaregiverGender  string   `json:"caregiverGender"`
	PaymentType      string   `json:"paymentType"`
	Cost             string   `json:"cost"`
	CareNeeds        []string `json:"careNeeds"`
	Languages        []string `json:"languages"`
}

func (r bulkRowRequest) toRow() commands.BulkJobRow {
	return commands.BulkJobRow{
		RowNumber:        r.RowNumber,
		Postcode:         r.Postcode,
		Address:          r.Address,
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		ShiftLengthHours: r.ShiftLengthHours,
		RecipientGender:  r.RecipientGender,
		RecipientAge:     r.RecipientAge,
		CaregiverGender:  r.CaregiverGender,
		PaymentType:      r.PaymentType,
		Cost:             r.Cost,
		CareNeeds:        r.CareNeeds,
		Languages:        r.Languages,
	}
}

type parseBulkRequest struct {
	OwnerID string           `json:"ownerId"`
	Rows    []bulkRowRequest `json:"rows"`
}

type bulkRowFailureResponse struct {
	RowNumber  int      `json:"rowNumber"`
	Violations []string `json:"violations"`
}

type parseBulkResponse struct {
	TotalRows   int                      `json:"totalRows"`
	ValidCount  int                      `json:"validCount"`
	FailedCount int                      `json:"failedCount"`
	ValidRows   []int                    `json:"validRows"`
	Failures    []bulkRowFailureResponse `json:"failures"`
}

// ParseBulkJobData handles POST /api/v1/job-posts/bulk/parse.
// Validates an import batch without creating anything.
func (s *Server) ParseBulkJobData(ctx echo.Context) error {
	var req parseBulkRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner ID")
	}

	rows := make([]commands.BulkJobRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, row.toRow())
	}

	cmd, err := commands.NewParseBulkJobDataCommand(ownerID, rows, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.handlers.ParseBulkJobData.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := parseBulkResponse{
		TotalRows:   result.TotalRows,
		ValidCount:  result.ValidCount,
		FailedCount: result.FailedCount,
		ValidRows:   make([]int, 0, len(result.Valid)),
		Failures:    make([]bulkRowFailureResponse, 0, len(result.Failures)),
	}
	for _, row := range result.Valid {
		response.ValidRows = append(response.ValidRows, row.RowNumber)
	}
	for _, failure := range result.Failures {
		response.Failures = append(response.Failures, bulkRowFailureResponse{
			RowNumber:  failure.RowNumber,
			Violations: failure.Violations,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type bulkCreatedRowResponse struct {
	RowNumber int    `json:"rowNumber"`
	JobPostID string `json:"jobPostId"`
}

type bulkCreateFailureResponse struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

type createBulkResponse struct {
	TotalRows   int                         `json:"totalRows"`
	ValidCount  int                         `json:"validCount"`
	FailedCount int                         `json:"failedCount"`
	Created     []bulkCreatedRowResponse    `json:"created"`
	Failures    []bulkCreateFailureResponse `json:"failures"`
}

// CreateBulkJobs handles POST /api/v1/job-posts/bulk.
// Re-validates the batch and creates the rows that pass.
func (s *Server) CreateBulkJobs(ctx echo.Context) error {
	var req parseBulkRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner ID")
	}

	rows := make([]commands.BulkJobRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, row.toRow())
	}

	parseCmd, err := commands.NewParseBulkJobDataCommand(ownerID, rows, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	parsed, err := s.handlers.ParseBulkJobData.Handle(ctx.Request().Context(), parseCmd)
	if err != nil {
		return respondError(ctx, err)
	}

	createCmd, err := commands.NewCreateBulkJobsCommand(ownerID, parsed.Valid)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.handlers.CreateBulkJobs.Handle(ctx.Request().Context(), createCmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := createBulkResponse{
		TotalRows:   parsed.TotalRows,
		ValidCount:  result.ValidCount,
		FailedCount: parsed.FailedCount + result.FailedCount,
		Created:     make([]bulkCreatedRowResponse, 0, len(result.Created)),
		Failures:    make([]bulkCreateFailureResponse, 0, len(parsed.Failures)+len(result.Failures)),
	}
	for _, row := range result.Created {
		response.Created = append(response.Created, bulkCreatedRowResponse{
			RowNumber: row.RowNumber,
			JobPostID: row.JobPostID.String(),
		})
	}
	for _, failure := range parsed.Failures {
		response.Failures = append(response.Failures, bulkCreateFailureResponse{
			RowNumber: failure.RowNumber,
			Reason:    joinViolations(failure.Violations),
		})
	}
	for _, failure := range result.Failures {
		response.Failures = append(response.Failures, bulkCreateFailureResponse{
			RowNumber: failure.RowNumber,
			Reason:    failure.Reason,
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// GetJobPosts handles GET /api/v1/job-posts.
// Accepts filter, pagination and requesting-worker query parameters.
func (s *Server) GetJobPosts(ctx echo.Context) error {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var workerID *kernel.UUID
	if raw := ctx.QueryParam("workerId"); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid worker ID")
		}
		workerID = &id
	}

	page, pageSize, err := paginationFromQuery(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid pagination parameters")
	}

	query, err := queries.NewGetAllJobPostsQuery(filter, workerID, page, pageSize)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.handlers.GetAllJobPosts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toJobPostListResponse(result))
}

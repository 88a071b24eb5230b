// Package http exposes the scheduling operations over an echo v4 REST API.
// Handlers are thin: they bind the request, build a command or query through
// its constructor and translate the result. All domain rules live in the
// use case layer.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"careshift/internal/core/application/usecases/commands"
	"careshift/internal/core/application/usecases/queries"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	errInvalidSchedulePatch = errs.NewValueIsRequiredError(
		"date, startTime and endTime must be provided together")
	errInvalidPaymentPatch = errs.NewValueIsRequiredError(
		"paymentType and paymentCost must be provided together")
)

// Handlers bundles the command and query handlers the server routes to.
type Handlers struct {
	CreateJobPost           commands.CreateJobPostCommandHandler
	UpdateJobPost           commands.UpdateJobPostCommandHandler
	CloseJobPost            commands.CloseJobPostCommandHandler
	RepostExpiredJob        commands.RepostExpiredJobCommandHandler
	RepostPastJob           commands.RepostPastJobCommandHandler
	ParseBulkJobData        commands.ParseBulkJobDataCommandHandler
	CreateBulkJobs          commands.CreateBulkJobsCommandHandler
	ApplyForJob             commands.ApplyForJobCommandHandler
	UpdateApplicationStatus commands.UpdateApplicationStatusCommandHandler
	CancelApplication       commands.CancelApplicationCommandHandler
	CheckinToJob            commands.CheckinToJobCommandHandler
	CheckoutFromJob         commands.CheckoutFromJobCommandHandler
	CompleteJob             commands.CompleteJobCommandHandler
	ReportApplication       commands.ReportApplicationCommandHandler

	GetAllJobPosts     queries.GetAllJobPostsQueryHandler
	GetJobApplications queries.GetJobApplicationsQueryHandler
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts every operation under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/job-posts", s.GetJobPosts)
	api.POST("/job-posts", s.CreateJobPost)
	api.POST("/job-posts/bulk/parse", s.ParseBulkJobData)
	api.POST("/job-posts/bulk", s.CreateBulkJobs)
	api.PATCH("/job-posts/:id", s.UpdateJobPost)
	api.POST("/job-posts/:id/close", s.CloseJobPost)
	api.POST("/job-posts/:id/repost-expired", s.RepostExpiredJob)
	api.POST("/job-posts/:id/repost-past", s.RepostPastJob)
	api.GET("/job-posts/:id/applications", s.GetJobApplications)
	api.POST("/job-posts/:id/applications", s.ApplyForJob)

	api.POST("/applications/:id/status", s.UpdateApplicationStatus)
	api.POST("/applications/:id/cancel", s.CancelApplication)
	api.POST("/applications/:id/checkin", s.CheckinToJob)
	api.POST("/applications/:id/checkout", s.CheckoutFromJob)
	api.POST("/applications/:id/complete", s.CompleteJob)
	api.POST("/applications/:id/report", s.ReportApplication)
}

// Error is the wire form of a failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain errors onto HTTP status codes.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValidationFailed):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// pathUUID parses the :id path parameter.
func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// filterFromQuery builds a listing filter from ownerId, status (repeatable)
// and dateFrom/dateTo query parameters.
func filterFromQuery(ctx echo.Context) (queries.JobPostFilter, error) {
	filter := queries.JobPostFilter{
		DateFrom: ctx.QueryParam("dateFrom"),
		DateTo:   ctx.QueryParam("dateTo"),
	}

	if raw := ctx.QueryParam("ownerId"); raw != "" {
		ownerID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.JobPostFilter{}, errs.NewValueIsInvalidError("ownerId")
		}
		filter.OwnerID = &ownerID
	}

	for _, raw := range ctx.QueryParams()["status"] {
		status, err := jobpost.ParseStatus(raw)
		if err != nil {
			return queries.JobPostFilter{}, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// paginationFromQuery reads page and pageSize, defaulting page to 1 and
// leaving pageSize zero so the query applies its own default.
func paginationFromQuery(ctx echo.Context) (int, int, error) {
	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		page = parsed
	}

	pageSize := 0
	if raw := ctx.QueryParam("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, err
		}
		pageSize = parsed
	}

	return page, pageSize, nil
}

func joinViolations(violations []string) string {
	return strings.Join(violations, "; ")
}

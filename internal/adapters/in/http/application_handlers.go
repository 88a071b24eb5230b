package http

import (
	"net/http"
	"time"

	"careshift/internal/core/application/usecases/commands"
	"careshift/internal/core/application/usecases/queries"
	"careshift/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type applyForJobRequest struct {
	WorkerID      string   `json:"workerId"`
	Message       string   `json:"message"`
	PreferenceIDs []string `json:"preferenceIds"`
}

// ApplyForJob handles POST /api/v1/job-posts/:id/applications.
func (s *Server) ApplyForJob(ctx echo.Context) error {
	jobPostID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid job post ID")
	}

	var req applyForJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker ID")
	}

	preferenceIDs, err := parseUUIDs(req.PreferenceIDs)
	if err != nil {
		return badRequest(ctx, "Invalid preference ID")
	}

	cmd, err := commands.NewApplyForJobCommand(jobPostID, workerID, req.Message, preferenceIDs, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ApplyForJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id": cmd.ApplicationID().String(),
	})
}

type updateApplicationStatusRequest struct {
	ActorID  string `json:"actorId"`
	Decision string `json:"decision"`
	Message  string `json:"message"`
}

// UpdateApplicationStatus handles POST /api/v1/applications/:id/status.
// The decision is "accepted" or "rejected"; acceptance cascades onto the
// post and the worker's other pending applications.
func (s *Server) UpdateApplicationStatus(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid application ID")
	}

	var req updateApplicationStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	cmd, err := commands.NewUpdateApplicationStatusCommand(
		applicationID, actorID, commands.StatusDecision(req.Decision), req.Message, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.UpdateApplicationStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cancelApplicationRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// CancelApplication handles POST /api/v1/applications/:id/cancel.
// Either side may cancel; cancelling an accepted application reopens the post.
func (s *Server) CancelApplication(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid application ID")
	}

	var req cancelApplicationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	cmd, err := commands.NewCancelApplicationCommand(applicationID, actorID, req.Reason, req.Message, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CancelApplication.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type checkEventRequest struct {
	WorkerID string `json:"workerId"`
	Location string `json:"location"`
}

// CheckinToJob handles POST /api/v1/applications/:id/checkin.
func (s *Server) CheckinToJob(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid application ID")
	}

	var req checkEventRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker ID")
	}

	cmd, err := commands.NewCheckinToJobCommand(applicationID, workerID, req.Location, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CheckinToJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CheckoutFromJob handles POST /api/v1/applications/:id/checkout.
func (s *Server) CheckoutFromJob(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid application ID")
	}

	var req checkEventRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker ID")
	}

	cmd, err := commands.NewCheckoutFromJobCommand(applicationID, workerID, req.Location, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CheckoutFromJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type completeJobRequest struct {
	ActorID string `json:"actorId"`
	Notes   string `json:"notes"`
}

// CompleteJob handles POST /api/v1/applications/:id/complete.
func (s *Server) CompleteJob(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid application ID")
	}

	var req completeJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	cmd, err := commands.NewCompleteJobCommand(applicationID, actorID, req.Notes, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CompleteJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reportApplicationRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ReportApplication handles POST /api/v1/applications/:id/report.
func (s *Server) ReportApplication(ctx echo.Context) error {
	applicationID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid application ID")
	}

	var req reportApplicationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor ID")
	}

	cmd, err := commands.NewReportApplicationCommand(applicationID, actorID, req.Reason, req.Message, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ReportApplication.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetJobApplications handles GET /api/v1/job-posts/:id/applications.
// Only the post owner may list applications; the owner is identified by the
// ownerId query parameter.
func (s *Server) GetJobApplications(ctx echo.Context) error {
	jobPostID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid job post ID")
	}

	ownerID, err := kernel.UUIDFromString(ctx.QueryParam("ownerId"))
	if err != nil {
		return badRequest(ctx, "Invalid owner ID")
	}

	page, pageSize, err := paginationFromQuery(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid pagination parameters")
	}

	query, err := queries.NewGetJobApplicationsQuery(jobPostID, ownerID, page, pageSize)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.handlers.GetJobApplications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toApplicationListResponse(result))
}

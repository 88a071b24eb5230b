package commands

import (
	"context"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
)

// CreateBulkJobsCommandHandler creates validated import rows one transaction
// per row, so a failure on one row never blocks the rest of the batch.
type CreateBulkJobsCommandHandler struct {
	uowFactory JobPostUoWFactory
}

// NewCreateBulkJobsCommandHandler creates a handler for bulk creation.
func NewCreateBulkJobsCommandHandler(uowFactory JobPostUoWFactory) CreateBulkJobsCommandHandler {
	return CreateBulkJobsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates each row independently and reports per-row outcomes.
// The duplicate-slot check is repeated per row inside its own transaction;
// validation may have run a while before creation.
func (h *CreateBulkJobsCommandHandler) Handle(
	ctx context.Context, cmd CreateBulkJobsCommand,
) (BulkCreateResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkCreateResult{}, err
	}

	result := BulkCreateResult{TotalRows: len(cmd.Rows())}
	for _, row := range cmd.Rows() {
		jobPostID, err := h.createRow(ctx, cmd.OwnerID(), row)
		if err != nil {
			result.Failures = append(result.Failures, BulkCreateFailure{
				RowNumber: row.RowNumber,
				Reason:    err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, BulkCreatedRow{
			RowNumber: row.RowNumber,
			JobPostID: jobPostID,
		})
	}

	result.ValidCount = len(result.Created)
	result.FailedCount = len(result.Failures)
	return result, nil
}

func (h *CreateBulkJobsCommandHandler) createRow(
	ctx context.Context, ownerID kernel.UUID, row BulkValidRow,
) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobPostRepository()

	taken, err := jobRepo.ExistsForOwnerAt(ctx, ownerID, row.Details.Schedule)
	if err != nil {
		return kernel.UUID{}, err
	}
	if taken {
		return kernel.UUID{}, errs.NewConflictError("job schedule", row.Details.Schedule.DateString())
	}

	post, err := jobpost.NewJobPost(kernel.NewUUID(), ownerID, row.Details)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = jobRepo.Add(ctx, post); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return post.ID(), nil
}

package commands

import (
	"errors"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrCreateBulkJobsCommandIsNotConstructed = errors.New(
	"CreateBulkJobsCommand must be created via NewCreateBulkJobsCommand constructor",
)

// BulkCreatedRow reports one successfully created row of a bulk import.
type BulkCreatedRow struct {
	RowNumber int
	JobPostID kernel.UUID
}

// BulkCreateFailure reports one row that failed creation.
type BulkCreateFailure struct {
	RowNumber int
	Reason    string
}

// BulkCreateResult reports the per-row outcome of a bulk creation.
type BulkCreateResult struct {
	Created     []BulkCreatedRow
	Failures    []BulkCreateFailure
	TotalRows   int
	ValidCount  int
	FailedCount int
}

// CreateBulkJobsCommand represents a request to create the validated rows of
// an import batch for the owner.
type CreateBulkJobsCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	rows    []BulkValidRow

	guard guard.ConstructorGuard
}

// NewCreateBulkJobsCommand creates a command to persist validated bulk rows.
func NewCreateBulkJobsCommand(ownerID kernel.UUID, rows []BulkValidRow) (CreateBulkJobsCommand, error) {
	command := CreateBulkJobsCommand{
		rows:  rows,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOwnerID(ownerID); err != nil {
		return CreateBulkJobsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBulkJobsCommand) Validate() error {
	return c.guard.Validate(ErrCreateBulkJobsCommandIsNotConstructed)
}

// OwnerID returns the importing user's ID.
func (c CreateBulkJobsCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Rows returns the validated rows to create.
func (c CreateBulkJobsCommand) Rows() []BulkValidRow {
	return c.rows
}

func (c *CreateBulkJobsCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.ownerID = id
	return nil
}

package commands

import (
	"errors"
	"time"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/guard"
)

var ErrParseBulkJobDataCommandIsNotConstructed = errors.New(
	"ParseBulkJobDataCommand must be created via NewParseBulkJobDataCommand constructor",
)

// BulkJobRow is one raw row of a tabular bulk import, untyped as uploaded.
type BulkJobRow struct {
	RowNumber        int
	Postcode         string
	Address          string
	Date             string
	StartTime        string
	EndTime          string
	ShiftLengthHours string
	RecipientGender  string
	RecipientAge     string
	CaregiverGender  string
	PaymentType      string
	Cost             string
	CareNeeds        []string
	Languages        []string
}

// BulkValidRow is a row that passed validation, carrying the typed details
// ready for creation.
type BulkValidRow struct {
	RowNumber int
	Details   jobpost.Details
}

// BulkRowFailure is a row that failed validation together with every
// violation found on it.
type BulkRowFailure struct {
	RowNumber  int
	Row        BulkJobRow
	Violations []string
}

// BulkParseResult partitions an import batch into valid rows and per-row
// failures with summary counts.
type BulkParseResult struct {
	Valid       []BulkValidRow
	Failures    []BulkRowFailure
	TotalRows   int
	ValidCount  int
	FailedCount int
}

// ParseBulkJobDataCommand represents a request to validate a tabular batch
// of job rows for the importing owner without creating anything.
type ParseBulkJobDataCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	rows    []BulkJobRow
	now     time.Time

	guard guard.ConstructorGuard
}

// NewParseBulkJobDataCommand creates a command to validate an import batch.
func NewParseBulkJobDataCommand(
	ownerID kernel.UUID, rows []BulkJobRow, now time.Time,
) (ParseBulkJobDataCommand, error) {
	command := ParseBulkJobDataCommand{
		rows:  rows,
		now:   now,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOwnerID(ownerID); err != nil {
		return ParseBulkJobDataCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ParseBulkJobDataCommand) Validate() error {
	return c.guard.Validate(ErrParseBulkJobDataCommandIsNotConstructed)
}

// OwnerID returns the importing user's ID.
func (c ParseBulkJobDataCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Rows returns the raw rows to validate.
func (c ParseBulkJobDataCommand) Rows() []BulkJobRow {
	return c.rows
}

// Now returns the instant the batch is validated at.
func (c ParseBulkJobDataCommand) Now() time.Time {
	return c.now
}

func (c *ParseBulkJobDataCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.ownerID = id
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/core/ports"
	"careshift/internal/pkg/errs"
)

// ParseBulkJobDataCommandHandler validates a tabular import batch row by
// row. Each row's violations are collected independently so one bad row
// never hides problems elsewhere in the batch. Postcodes are checked against
// the external lookup; when the lookup is unavailable the format check alone
// decides, so an import never blocks on a flaky geocoder.
type ParseBulkJobDataCommandHandler struct {
	uowFactory JobPostUoWFactory
	resolver   services.PostcodeResolver
}

// NewParseBulkJobDataCommandHandler creates a handler for bulk validation.
func NewParseBulkJobDataCommandHandler(
	uowFactory JobPostUoWFactory, resolver services.PostcodeResolver,
) ParseBulkJobDataCommandHandler {
	return ParseBulkJobDataCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle validates every row and partitions the batch into valid rows and
// failures. Nothing is created; duplicate slots are checked both against the
// owner's persisted posts and between rows of the same batch (both sides of
// an in-batch duplicate are failed).
func (h *ParseBulkJobDataCommandHandler) Handle(
	ctx context.Context, cmd ParseBulkJobDataCommand,
) (BulkParseResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkParseResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BulkParseResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobPostRepository()

	slotCounts := make(map[string]int, len(cmd.Rows()))
	for _, row := range cmd.Rows() {
		slotCounts[batchSlotKey(row)]++
	}

	result := BulkParseResult{TotalRows: len(cmd.Rows())}
	for _, row := range cmd.Rows() {
		details, violations := h.validateRow(ctx, jobRepo, cmd, row)
		if slotCounts[batchSlotKey(row)] > 1 {
			violations = append(violations, "another row in this batch has the same date and start time")
		}

		if len(violations) > 0 {
			result.Failures = append(result.Failures, BulkRowFailure{
				RowNumber:  row.RowNumber,
				Row:        row,
				Violations: violations,
			})
			continue
		}
		result.Valid = append(result.Valid, BulkValidRow{RowNumber: row.RowNumber, Details: details})
	}

	result.ValidCount = len(result.Valid)
	result.FailedCount = len(result.Failures)
	return result, nil
}

//nolint:gocognit,cyclop //row validation is a flat checklist
func (h *ParseBulkJobDataCommandHandler) validateRow(
	ctx context.Context, jobRepo ports.JobPostRepository, cmd ParseBulkJobDataCommand, row BulkJobRow,
) (jobpost.Details, []string) {
	fail := errs.NewValidationErrors()
	details := jobpost.Details{
		Address:   row.Address,
		CareNeeds: row.CareNeeds,
		Languages: row.Languages,
	}

	for _, required := range []struct{ name, value string }{
		{"postcode", row.Postcode},
		{"address", row.Address},
		{"date", row.Date},
		{"startTime", row.StartTime},
		{"endTime", row.EndTime},
		{"paymentType", row.PaymentType},
		{"cost", row.Cost},
	} {
		if strings.TrimSpace(required.value) == "" {
			fail.Addf("%s is required", required.name)
		}
	}

	if row.Postcode != "" {
		postcode, err := kernel.NewPostcode(row.Postcode)
		if err != nil {
			fail.Addf("postcode %q is not a valid postcode", row.Postcode)
		} else {
			details.Postcode = postcode
			if _, err = h.resolver.Resolve(ctx, postcode); errors.Is(err, errs.ErrObjectNotFound) {
				fail.Addf("postcode %q does not exist", row.Postcode)
			}
			// Any other resolver error means the lookup is unavailable and
			// the format check alone decides.
		}
	}

	if row.Date != "" && row.StartTime != "" && row.EndTime != "" {
		schedule, err := kernel.NewSchedule(row.Date, row.StartTime, row.EndTime)
		switch {
		case err != nil:
			fail.Addf("date/time %q %q-%q could not be parsed", row.Date, row.StartTime, row.EndTime)
		case schedule.DateHasPassed(cmd.Now()):
			fail.Addf("job date %s is in the past", row.Date)
		default:
			details.Schedule = schedule

			taken, existsErr := jobRepo.ExistsForOwnerAt(ctx, cmd.OwnerID(), schedule)
			if existsErr == nil && taken {
				fail.Addf("a job already exists on %s at %s", schedule.DateString(), schedule.StartTimeString())
			}
		}
	}

	if hours, err := strconv.Atoi(strings.TrimSpace(row.ShiftLengthHours)); err != nil {
		fail.Addf("shift length %q is not a number", row.ShiftLengthHours)
	} else if hours < jobpost.MinShiftLengthHours || hours > jobpost.MaxShiftLengthHours {
		fail.Addf("shift length must be between %d and %d hours",
			jobpost.MinShiftLengthHours, jobpost.MaxShiftLengthHours)
	} else {
		details.ShiftLengthHours = hours
	}

	if age, err := strconv.Atoi(strings.TrimSpace(row.RecipientAge)); err != nil {
		fail.Addf("recipient age %q is not a number", row.RecipientAge)
	} else if age < jobpost.MinRecipientAge || age > jobpost.MaxRecipientAge {
		fail.Addf("recipient age must be between %d and %d",
			jobpost.MinRecipientAge, jobpost.MaxRecipientAge)
	} else {
		details.RecipientAge = age
	}

	if gender, err := jobpost.ParseGender(row.RecipientGender); err != nil {
		fail.Addf("recipient gender %q must be one of: %s",
			row.RecipientGender, strings.Join(jobpost.ValidGenders(), ", "))
	} else {
		details.RecipientGender = gender
	}

	if gender, err := jobpost.ParseGender(row.CaregiverGender); err != nil {
		fail.Addf("caregiver gender %q must be one of: %s",
			row.CaregiverGender, strings.Join(jobpost.ValidGenders(), ", "))
	} else {
		details.CaregiverGender = gender
	}

	paymentType, paymentErr := jobpost.ParsePaymentType(row.PaymentType)
	if paymentErr != nil && row.PaymentType != "" {
		fail.Addf("payment type %q must be one of: %s",
			row.PaymentType, strings.Join(jobpost.ValidPaymentTypes(), ", "))
	}

	if cost, err := strconv.ParseFloat(strings.TrimSpace(row.Cost), 64); err != nil {
		fail.Addf("cost %q is not a number", row.Cost)
	} else if cost < 0 {
		fail.Addf("cost must not be negative")
	} else if paymentErr == nil {
		payment, err := jobpost.NewPayment(paymentType, cost)
		if err != nil {
			fail.Add(err.Error())
		} else {
			details.Payment = payment
		}
	}

	return details, fail.Violations
}

// batchSlotKey identifies a row's (date, startTime) slot within the batch.
func batchSlotKey(row BulkJobRow) string {
	return fmt.Sprintf("%s|%s", strings.TrimSpace(row.Date), strings.TrimSpace(row.StartTime))
}

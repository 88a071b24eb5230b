package commands_test

import (
	"testing"
	"time"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

// fixedNow is the reference instant used across handler tests; job dates in
// the fixtures are relative to it.
var fixedNow = time.Date(2030, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestSchedule(t *testing.T, date, start, end string) kernel.Schedule {
	t.Helper()
	schedule, err := kernel.NewSchedule(date, start, end)
	require.NoError(t, err)
	return schedule
}

func newTestDetails(t *testing.T, date, start, end string) jobpost.Details {
	t.Helper()
	postcode, err := kernel.NewPostcode("SW1A 1AA")
	require.NoError(t, err)
	payment, err := jobpost.NewPayment(jobpost.PaymentHourly, 18.50)
	require.NoError(t, err)

	return jobpost.Details{
		Postcode:         postcode,
		Address:          "10 Downing Street, London",
		Schedule:         newTestSchedule(t, date, start, end),
		ShiftLengthHours: 8,
		RecipientGender:  jobpost.GenderFemale,
		RecipientAge:     80,
		CaregiverGender:  jobpost.GenderAny,
		Payment:          payment,
	}
}

func newTestJobPost(t *testing.T, ownerID kernel.UUID, date, start, end string) *jobpost.JobPost {
	t.Helper()
	post, err := jobpost.NewJobPost(kernel.NewUUID(), ownerID, newTestDetails(t, date, start, end))
	require.NoError(t, err)
	return post
}

func newPendingApplication(t *testing.T, jobPostID, workerID kernel.UUID) *application.Application {
	t.Helper()
	app, err := application.NewApplication(kernel.NewUUID(), jobPostID, workerID, "happy to help", nil)
	require.NoError(t, err)
	return app
}

func newAcceptedApplication(t *testing.T, jobPostID, workerID kernel.UUID) *application.Application {
	t.Helper()
	app := newPendingApplication(t, jobPostID, workerID)
	require.NoError(t, app.Accept(fixedNow, "see you there"))
	return app
}

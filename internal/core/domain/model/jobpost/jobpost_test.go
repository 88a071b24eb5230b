package jobpost_test

import (
	"testing"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails(t *testing.T) jobpost.Details {
	t.Helper()

	postcode, err := kernel.NewPostcode("SW1A 1AA")
	require.NoError(t, err)
	schedule, err := kernel.NewSchedule("2025-06-01", "09:00", "17:00")
	require.NoError(t, err)
	payment, err := jobpost.NewPayment(jobpost.PaymentHourly, 18.50)
	require.NoError(t, err)

	return jobpost.Details{
		Postcode:         postcode,
		Address:          "1 Example Street",
		Schedule:         schedule,
		ShiftLengthHours: 8,
		RecipientGender:  jobpost.GenderFemale,
		RecipientAge:     82,
		CaregiverGender:  jobpost.GenderAny,
		Payment:          payment,
		CareNeeds:        []string{"dementia"},
		Languages:        []string{"english"},
		PreferenceIDs:    []kernel.UUID{kernel.NewUUID()},
	}
}

func TestNewJobPost(t *testing.T) {
	t.Run("creates_open_post", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		ownerID := kernel.NewUUID()
		details := validDetails(t)

		// When
		post, err := jobpost.NewJobPost(id, ownerID, details)

		// Then
		require.NoError(t, err)
		require.NoError(t, post.Validate())
		assert.Equal(t, jobpost.Open, post.Status())
		assert.True(t, post.ID().IsEqual(id))
		assert.True(t, post.IsOwnedBy(ownerID))
		assert.Nil(t, post.ParentJobID())
		assert.Nil(t, post.Recurrence())
		assert.False(t, post.IsDeleted())
	})

	t.Run("rejects_invalid_shift_length", func(t *testing.T) {
		details := validDetails(t)
		details.ShiftLengthHours = 0

		_, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), details)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_out_of_range_age", func(t *testing.T) {
		details := validDetails(t)
		details.RecipientAge = 130

		_, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), details)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_negative_cost", func(t *testing.T) {
		details := validDetails(t)
		details.Payment = jobpost.Payment{Type: jobpost.PaymentHourly, Cost: -1}

		_, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), details)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_zero_value_schedule", func(t *testing.T) {
		details := validDetails(t)
		details.Schedule = kernel.Schedule{}

		_, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), details)
		require.Error(t, err)
	})
}

func TestNewRecurringJobPost(t *testing.T) {
	t.Run("parent_carries_recurrence", func(t *testing.T) {
		rec, err := jobpost.NewRecurrence("weekly", []string{"monday"}, "2025-06-30")
		require.NoError(t, err)

		post, err := jobpost.NewRecurringJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t), rec)
		require.NoError(t, err)
		assert.True(t, post.IsRecurringParent())
	})

	t.Run("rejects_end_date_before_seed", func(t *testing.T) {
		rec, err := jobpost.NewRecurrence("weekly", []string{"monday"}, "2025-05-01")
		require.NoError(t, err)

		_, err = jobpost.NewRecurringJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t), rec)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestJobPost_SpawnChild(t *testing.T) {
	rec, err := jobpost.NewRecurrence("weekly", []string{"monday"}, "2025-06-30")
	require.NoError(t, err)
	parent, err := jobpost.NewRecurringJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t), rec)
	require.NoError(t, err)

	t.Run("child_links_to_parent_without_recurrence", func(t *testing.T) {
		childSchedule, err := kernel.NewSchedule("2025-06-02", "09:00", "17:00")
		require.NoError(t, err)

		child, err := parent.SpawnChild(kernel.NewUUID(), childSchedule)
		require.NoError(t, err)

		require.NotNil(t, child.ParentJobID())
		assert.True(t, child.ParentJobID().IsEqual(parent.ID()))
		assert.Nil(t, child.Recurrence())
		assert.Equal(t, jobpost.Open, child.Status())
		assert.Equal(t, parent.Postcode().String(), child.Postcode().String())
	})

	t.Run("non_recurring_post_cannot_spawn", func(t *testing.T) {
		single, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t))
		require.NoError(t, err)
		schedule, err := kernel.NewSchedule("2025-06-02", "09:00", "17:00")
		require.NoError(t, err)

		_, err = single.SpawnChild(kernel.NewUUID(), schedule)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestJobPost_CloneForSchedule(t *testing.T) {
	original, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t))
	require.NoError(t, err)
	newSchedule, err := kernel.NewSchedule("2025-07-01", "10:00", "18:00")
	require.NoError(t, err)

	clone, err := original.CloneForSchedule(kernel.NewUUID(), newSchedule)
	require.NoError(t, err)

	assert.False(t, clone.IsEqual(original))
	assert.Equal(t, jobpost.Open, clone.Status())
	assert.Equal(t, "2025-07-01", clone.Schedule().DateString())
	assert.Equal(t, original.Payment(), clone.Payment())
	assert.Nil(t, clone.ParentJobID())
}

func TestJobPost_Transitions(t *testing.T) {
	newPost := func(t *testing.T) *jobpost.JobPost {
		post, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t))
		require.NoError(t, err)
		return post
	}

	t.Run("open_approve_complete", func(t *testing.T) {
		post := newPost(t)

		require.NoError(t, post.Approve())
		assert.Equal(t, jobpost.Approved, post.Status())

		require.NoError(t, post.Complete())
		assert.Equal(t, jobpost.Completed, post.Status())
	})

	t.Run("approved_reopens_on_cancelled_acceptance", func(t *testing.T) {
		post := newPost(t)
		require.NoError(t, post.Approve())

		require.NoError(t, post.Reopen())
		assert.Equal(t, jobpost.Open, post.Status())
	})

	t.Run("completed_post_cannot_close", func(t *testing.T) {
		post := newPost(t)
		require.NoError(t, post.Approve())
		require.NoError(t, post.Complete())

		require.ErrorIs(t, post.Close(), errs.ErrInvalidState)
	})
}

func TestJobPost_ApplyPatch(t *testing.T) {
	t.Run("patches_only_supplied_fields", func(t *testing.T) {
		post, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t))
		require.NoError(t, err)

		address := "2 New Street"
		age := 90
		err = post.ApplyPatch(jobpost.Patch{
			Address:      &address,
			RecipientAge: &age,
			Languages:    []string{"english", "polish"},
		})

		require.NoError(t, err)
		assert.Equal(t, "2 New Street", post.Address())
		assert.Equal(t, 90, post.RecipientAge())
		assert.Equal(t, []string{"english", "polish"}, post.Languages())
		// untouched fields survive
		assert.Equal(t, 8, post.ShiftLengthHours())
	})

	t.Run("rejects_invalid_patched_value", func(t *testing.T) {
		post, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), validDetails(t))
		require.NoError(t, err)

		bad := 30
		err = post.ApplyPatch(jobpost.Patch{ShiftLengthHours: &bad})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		// aggregate unchanged on failed patch
		assert.Equal(t, 8, post.ShiftLengthHours())
	})
}

func TestJobPost_DeclaresPreference(t *testing.T) {
	details := validDetails(t)
	declared := details.PreferenceIDs[0]
	post, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), details)
	require.NoError(t, err)

	assert.True(t, post.DeclaresPreference(declared))
	assert.False(t, post.DeclaresPreference(kernel.NewUUID()))
}

func TestGenderAndPaymentParsing(t *testing.T) {
	t.Run("parse_gender", func(t *testing.T) {
		g, err := jobpost.ParseGender(" Female ")
		require.NoError(t, err)
		assert.Equal(t, jobpost.GenderFemale, g)

		_, err = jobpost.ParseGender("other")
		require.Error(t, err)
	})

	t.Run("gender_accepts", func(t *testing.T) {
		assert.True(t, jobpost.GenderAny.Accepts(jobpost.GenderMale))
		assert.True(t, jobpost.GenderFemale.Accepts(jobpost.GenderFemale))
		assert.False(t, jobpost.GenderFemale.Accepts(jobpost.GenderMale))
	})

	t.Run("parse_payment_type", func(t *testing.T) {
		p, err := jobpost.ParsePaymentType("HOURLY")
		require.NoError(t, err)
		assert.Equal(t, jobpost.PaymentHourly, p)

		_, err = jobpost.ParsePaymentType("barter")
		require.Error(t, err)
	})
}

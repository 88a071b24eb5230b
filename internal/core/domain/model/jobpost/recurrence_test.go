package jobpost_test

import (
	"testing"
	"time"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecurrence(t *testing.T) {
	t.Run("accepts_weekly_with_valid_weekdays", func(t *testing.T) {
		// When
		rec, err := jobpost.NewRecurrence("Weekly", []string{"Monday", "wednesday"}, "2025-01-15")

		// Then
		require.NoError(t, err)
		assert.Equal(t, jobpost.FrequencyWeekly, rec.Frequency())
		assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, rec.Weekdays())
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), rec.EndDate())
	})

	t.Run("rejects_unsupported_frequency", func(t *testing.T) {
		_, err := jobpost.NewRecurrence("daily", []string{"monday"}, "2025-01-15")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_empty_weekday_set", func(t *testing.T) {
		_, err := jobpost.NewRecurrence("weekly", nil, "2025-01-15")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_unknown_weekday", func(t *testing.T) {
		_, err := jobpost.NewRecurrence("weekly", []string{"funday"}, "2025-01-15")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_malformed_end_date", func(t *testing.T) {
		_, err := jobpost.NewRecurrence("weekly", []string{"monday"}, "15/01/2025")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRecurrence_ExpandDates(t *testing.T) {
	t.Run("emits_selected_weekdays_excluding_seed", func(t *testing.T) {
		// Given: 2025-01-01 is a Wednesday
		rec, err := jobpost.NewRecurrence("weekly", []string{"monday", "wednesday"}, "2025-01-15")
		require.NoError(t, err)
		seed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		// When
		dates := rec.ExpandDates(seed)

		// Then: the seed Wednesday is owned by the parent and never re-emitted
		expected := []time.Time{
			time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, expected, dates)
	})

	t.Run("end_date_is_inclusive", func(t *testing.T) {
		rec, err := jobpost.NewRecurrence("weekly", []string{"sunday"}, "2025-01-12")
		require.NoError(t, err)
		seed := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC) // a Sunday

		dates := rec.ExpandDates(seed)

		assert.Equal(t, []time.Time{time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)}, dates)
	})

	t.Run("empty_when_end_before_seed", func(t *testing.T) {
		rec, err := jobpost.NewRecurrence("weekly", []string{"monday"}, "2025-01-01")
		require.NoError(t, err)
		seed := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

		assert.Empty(t, rec.ExpandDates(seed))
	})
}

func TestParseWeekday(t *testing.T) {
	wd, err := jobpost.ParseWeekday(" Friday ")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, wd)

	_, err = jobpost.ParseWeekday("noday")
	require.Error(t, err)
}

package application_test

import (
	"testing"

	"careshift/internal/core/domain/model/application"
	"careshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []application.Status{
			application.Pending, application.Accepted, application.Rejected,
			application.Cancelled, application.NotAvailable, application.Closed,
			application.Completed,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, application.Unknown.Validate())
		require.Error(t, application.Status(42).Validate())
	})
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, application.Pending.IsLive())
	assert.True(t, application.Accepted.IsLive())
	assert.False(t, application.Rejected.IsLive())

	assert.False(t, application.Pending.IsTerminal())
	assert.False(t, application.Accepted.IsTerminal())
	for _, s := range []application.Status{
		application.Rejected, application.Cancelled, application.NotAvailable,
		application.Closed, application.Completed,
	} {
		assert.True(t, s.IsTerminal(), s.String())
	}
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("accept_only_from_pending", func(t *testing.T) {
		next, err := application.Pending.Accept()
		require.NoError(t, err)
		assert.Equal(t, application.Accepted, next)

		_, err = application.Accepted.Accept()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("reject_from_pending_and_accepted", func(t *testing.T) {
		for _, s := range []application.Status{application.Pending, application.Accepted} {
			next, err := s.Reject()
			require.NoError(t, err)
			assert.Equal(t, application.Rejected, next)
		}

		_, err := application.Completed.Reject()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("cancel_from_pending_and_accepted", func(t *testing.T) {
		for _, s := range []application.Status{application.Pending, application.Accepted} {
			next, err := s.Cancel()
			require.NoError(t, err)
			assert.Equal(t, application.Cancelled, next)
		}

		_, err := application.Rejected.Cancel()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("not_available_only_from_pending", func(t *testing.T) {
		next, err := application.Pending.MarkNotAvailable()
		require.NoError(t, err)
		assert.Equal(t, application.NotAvailable, next)

		_, err = application.Accepted.MarkNotAvailable()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("close_from_live_statuses", func(t *testing.T) {
		for _, s := range []application.Status{application.Pending, application.Accepted} {
			next, err := s.Close()
			require.NoError(t, err)
			assert.Equal(t, application.Closed, next)
		}

		_, err := application.Closed.Close()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("complete_only_from_accepted", func(t *testing.T) {
		next, err := application.Accepted.Complete()
		require.NoError(t, err)
		assert.Equal(t, application.Completed, next)

		_, err = application.Pending.Complete()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

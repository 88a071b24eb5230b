package commands_test

import (
	"testing"

	"careshift/internal/core/application/usecases/commands"
	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCloseJobPostCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")
	pendingApp := newPendingApplication(t, post.ID(), kernel.NewUUID())

	cmd, err := commands.NewCloseJobPostCommand(post.ID(), ownerID, fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		appRepo.On("GetPendingForJob", ctx, post.ID()).
			Return([]*application.Application{pendingApp}, nil).Once(),
		appRepo.On("Update", ctx, pendingApp).Return(nil).Once(),
		jobRepo.On("Update", ctx, post).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := &RecordingDispatcher{}
	handler := commands.NewCloseJobPostCommandHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, jobpost.Closed, post.Status())
	assert.Equal(t, application.NotAvailable, pendingApp.Status())
	require.Len(t, dispatcher.Notifications, 1)
	assert.Equal(t, pendingApp.WorkerID(), dispatcher.Notifications[0].TargetUserID)
	uow.AssertExpectations(t)
}

func TestCloseJobPostCommandHandler_Handle_ApprovedJobCannotClose(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")
	require.NoError(t, post.Approve())

	cmd, err := commands.NewCloseJobPostCommand(post.ID(), ownerID, fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCloseJobPostCommandHandler(factory, &RecordingDispatcher{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestCloseJobPostCommandHandler_Handle_NotTheOwner(t *testing.T) {
	ctx := t.Context()
	post := newTestJobPost(t, kernel.NewUUID(), "2030-05-20", "09:00", "17:00")

	cmd, err := commands.NewCloseJobPostCommand(post.ID(), kernel.NewUUID(), fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCloseJobPostCommandHandler(factory, &RecordingDispatcher{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrAccessDenied)
}

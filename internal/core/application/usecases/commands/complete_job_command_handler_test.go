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

func TestCompleteJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")
	require.NoError(t, post.Approve())
	app := newAcceptedApplication(t, post.ID(), workerID)
	sibling := newPendingApplication(t, post.ID(), kernel.NewUUID())

	cmd, err := commands.NewCompleteJobCommand(app.ID(), ownerID, "all done", fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		appRepo.On("Get", ctx, app.ID()).Return(app, nil).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		appRepo.On("Update", ctx, app).Return(nil).Once(),
		jobRepo.On("Update", ctx, post).Return(nil).Once(),
		appRepo.On("GetPendingForJob", ctx, post.ID()).
			Return([]*application.Application{sibling}, nil).Once(),
		appRepo.On("Update", ctx, sibling).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := &RecordingDispatcher{}
	handler := commands.NewCompleteJobCommandHandler(factory, dispatcher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, application.Completed, app.Status())
	assert.Equal(t, jobpost.Completed, post.Status())
	assert.Equal(t, application.Closed, sibling.Status())

	// Sibling closure notice plus the worker's completion notice.
	require.Len(t, dispatcher.Notifications, 2)
	assert.Equal(t, workerID, dispatcher.Notifications[1].TargetUserID)
	appRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteJobCommandHandler_Handle_SecondCompletionFails(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")
	require.NoError(t, post.Approve())
	app := newAcceptedApplication(t, post.ID(), kernel.NewUUID())
	require.NoError(t, app.Complete(fixedNow, "done"))
	require.NoError(t, post.Complete())

	cmd, err := commands.NewCompleteJobCommand(app.ID(), ownerID, "done again", fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		appRepo.On("Get", ctx, app.ID()).Return(app, nil).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteJobCommandHandler(factory, &RecordingDispatcher{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestCompleteJobCommandHandler_Handle_NotTheOwner(t *testing.T) {
	ctx := t.Context()
	post := newTestJobPost(t, kernel.NewUUID(), "2030-05-20", "09:00", "17:00")
	app := newAcceptedApplication(t, post.ID(), kernel.NewUUID())

	cmd, err := commands.NewCompleteJobCommand(app.ID(), kernel.NewUUID(), "", fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		appRepo.On("Get", ctx, app.ID()).Return(app, nil).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteJobCommandHandler(factory, &RecordingDispatcher{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrAccessDenied)
}

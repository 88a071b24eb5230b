package commands_test

import (
	"testing"

	"careshift/internal/core/application/usecases/commands"
	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApplyHandler(factory commands.UoWFactory) (commands.ApplyForJobCommandHandler, *RecordingDispatcher) {
	dispatcher := &RecordingDispatcher{}
	return commands.NewApplyForJobCommandHandler(factory, services.NewConflictResolver(), dispatcher), dispatcher
}

func TestApplyForJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")

	cmd, err := commands.NewApplyForJobCommand(post.ID(), workerID, "I can do this", nil, fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		appRepo.On("GetByJobAndWorker", ctx, post.ID(), workerID).
			Return(nil, errs.NewObjectNotFoundError("application", workerID)).Once(),
		appRepo.On("GetAcceptedForJob", ctx, post.ID()).
			Return(nil, errs.NewObjectNotFoundError("application", post.ID())).Once(),
		appRepo.On("GetAcceptedForWorker", ctx, workerID).
			Return([]*application.Application{}, nil).Once(),
		appRepo.On("Add", ctx, mock.AnythingOfType("*application.Application")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, dispatcher := newApplyHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	created := appRepo.Calls[3].Arguments[1].(*application.Application)
	assert.Equal(t, application.Pending, created.Status())
	assert.Equal(t, workerID, created.WorkerID())

	require.Len(t, dispatcher.Notifications, 1)
	assert.Equal(t, ownerID, dispatcher.Notifications[0].TargetUserID)
	appRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyForJobCommandHandler_Handle_SecondApplyConflicts(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")
	existing := newPendingApplication(t, post.ID(), workerID)

	cmd, err := commands.NewApplyForJobCommand(post.ID(), workerID, "again", nil, fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		appRepo.On("GetByJobAndWorker", ctx, post.ID(), workerID).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, dispatcher := newApplyHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Empty(t, dispatcher.Notifications)
	appRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestApplyForJobCommandHandler_Handle_JobNotOpen(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")
	require.NoError(t, post.Approve())

	cmd, err := commands.NewApplyForJobCommand(post.ID(), kernel.NewUUID(), "", nil, fixedNow)
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

	handler, _ := newApplyHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestApplyForJobCommandHandler_Handle_PastJobDate(t *testing.T) {
	ctx := t.Context()
	post := newTestJobPost(t, kernel.NewUUID(), "2020-01-01", "09:00", "17:00")

	cmd, err := commands.NewApplyForJobCommand(post.ID(), kernel.NewUUID(), "", nil, fixedNow)
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

	handler, _ := newApplyHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestApplyForJobCommandHandler_Handle_UndeclaredPreference(t *testing.T) {
	ctx := t.Context()
	post := newTestJobPost(t, kernel.NewUUID(), "2030-05-20", "09:00", "17:00")

	cmd, err := commands.NewApplyForJobCommand(
		post.ID(), kernel.NewUUID(), "", []kernel.UUID{kernel.NewUUID()}, fixedNow,
	)
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

	handler, _ := newApplyHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestApplyForJobCommandHandler_Handle_OverlapWithAcceptedWindow(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	workerID := kernel.NewUUID()
	post := newTestJobPost(t, ownerID, "2030-05-20", "09:00", "17:00")

	// The worker already holds an accepted application on an overlapping shift.
	otherPost := newTestJobPost(t, kernel.NewUUID(), "2030-05-20", "12:00", "20:00")
	accepted := newAcceptedApplication(t, otherPost.ID(), workerID)

	cmd, err := commands.NewApplyForJobCommand(post.ID(), workerID, "", nil, fixedNow)
	require.NoError(t, err)

	jobRepo := new(MockJobPostRepository)
	appRepo := new(MockApplicationRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobPostRepository").Return(jobRepo).Once(),
		uow.On("ApplicationRepository").Return(appRepo).Once(),
		jobRepo.On("Get", ctx, post.ID()).Return(post, nil).Once(),
		appRepo.On("GetByJobAndWorker", ctx, post.ID(), workerID).
			Return(nil, errs.NewObjectNotFoundError("application", workerID)).Once(),
		appRepo.On("GetAcceptedForJob", ctx, post.ID()).
			Return(nil, errs.NewObjectNotFoundError("application", post.ID())).Once(),
		appRepo.On("GetAcceptedForWorker", ctx, workerID).
			Return([]*application.Application{accepted}, nil).Once(),
		jobRepo.On("GetByIDs", ctx, []kernel.UUID{otherPost.ID()}).
			Return([]*jobpost.JobPost{otherPost}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler, _ := newApplyHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	appRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

package commands_test

import (
	"context"

	"careshift/internal/core/application/usecases/commands"
	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobPostRepository struct{ mock.Mock }

func (m *MockJobPostRepository) Add(ctx context.Context, p *jobpost.JobPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockJobPostRepository) Update(ctx context.Context, p *jobpost.JobPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockJobPostRepository) Get(ctx context.Context, id kernel.UUID) (*jobpost.JobPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobpost.JobPost), args.Error(1)
}

func (m *MockJobPostRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*jobpost.JobPost, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobpost.JobPost), args.Error(1)
}

func (m *MockJobPostRepository) ExistsForOwnerAt(
	ctx context.Context, ownerID kernel.UUID, schedule kernel.Schedule,
) (bool, error) {
	args := m.Called(ctx, ownerID, schedule)
	return args.Bool(0), args.Error(1)
}

type MockApplicationRepository struct{ mock.Mock }

func (m *MockApplicationRepository) Add(ctx context.Context, a *application.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationRepository) Update(ctx context.Context, a *application.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationRepository) Get(ctx context.Context, id kernel.UUID) (*application.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetByJobAndWorker(
	ctx context.Context, jobPostID kernel.UUID, workerID kernel.UUID,
) (*application.Application, error) {
	args := m.Called(ctx, jobPostID, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetAcceptedForJob(
	ctx context.Context, jobPostID kernel.UUID,
) (*application.Application, error) {
	args := m.Called(ctx, jobPostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetAcceptedForWorker(
	ctx context.Context, workerID kernel.UUID,
) ([]*application.Application, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetPendingForWorker(
	ctx context.Context, workerID kernel.UUID,
) ([]*application.Application, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetLiveForJob(
	ctx context.Context, jobPostID kernel.UUID,
) ([]*application.Application, error) {
	args := m.Called(ctx, jobPostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetPendingForJob(
	ctx context.Context, jobPostID kernel.UUID,
) ([]*application.Application, error) {
	args := m.Called(ctx, jobPostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.Application), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobPostRepository() ports.JobPostRepository {
	args := m.Called()
	return args.Get(0).(ports.JobPostRepository)
}

func (m *MockUoW) ApplicationRepository() ports.ApplicationRepository {
	args := m.Called()
	return args.Get(0).(ports.ApplicationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockJobPostUoWFactory struct{ mock.Mock }

func (m *MockJobPostUoWFactory) Create() commands.JobPostUoW {
	args := m.Called()
	return args.Get(0).(commands.JobPostUoW)
}

type MockPostcodeResolver struct{ mock.Mock }

func (m *MockPostcodeResolver) Resolve(ctx context.Context, postcode kernel.Postcode) (kernel.Coordinates, error) {
	args := m.Called(ctx, postcode)
	return args.Get(0).(kernel.Coordinates), args.Error(1)
}

// RecordingDispatcher captures dispatched notifications for assertions.
// Dispatch never fails, matching the port contract.
type RecordingDispatcher struct {
	Notifications []ports.Notification
}

func (d *RecordingDispatcher) Dispatch(_ context.Context, n ports.Notification) {
	d.Notifications = append(d.Notifications, n)
}

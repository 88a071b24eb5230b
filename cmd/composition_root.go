package cmd

import (
	"log/slog"
	"os"

	"careshift/internal/adapters/in/http"
	"careshift/internal/adapters/out/geocoder"
	"careshift/internal/adapters/out/notify"
	"careshift/internal/adapters/out/postgres"
	"careshift/internal/adapters/out/postgres/reviewrepo"
	"careshift/internal/adapters/out/postgres/workerrepo"
	"careshift/internal/core/application/usecases/commands"
	"careshift/internal/core/application/usecases/queries"
	"careshift/internal/core/domain/services"
	"careshift/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	resolver   services.PostcodeResolver
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		resolver:   geocoder.NewClient(config.GeocoderBaseURL),
		dispatcher: notify.NewDispatcher(notify.NewLogSender(logger), logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) jobPostUoWFactory() commands.JobPostUoWFactory {
	return FuncJobPostUoWFactory(func() commands.JobPostUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateJobPostCommandHandler() commands.CreateJobPostCommandHandler {
	return commands.NewCreateJobPostCommandHandler(c.jobPostUoWFactory())
}

func (c *CompositionRoot) CreateUpdateJobPostCommandHandler() commands.UpdateJobPostCommandHandler {
	return commands.NewUpdateJobPostCommandHandler(c.jobPostUoWFactory())
}

func (c *CompositionRoot) CreateCloseJobPostCommandHandler() commands.CloseJobPostCommandHandler {
	return commands.NewCloseJobPostCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRepostExpiredJobCommandHandler() commands.RepostExpiredJobCommandHandler {
	return commands.NewRepostExpiredJobCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRepostPastJobCommandHandler() commands.RepostPastJobCommandHandler {
	return commands.NewRepostPastJobCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateParseBulkJobDataCommandHandler() commands.ParseBulkJobDataCommandHandler {
	return commands.NewParseBulkJobDataCommandHandler(c.jobPostUoWFactory(), c.resolver)
}

func (c *CompositionRoot) CreateCreateBulkJobsCommandHandler() commands.CreateBulkJobsCommandHandler {
	return commands.NewCreateBulkJobsCommandHandler(c.jobPostUoWFactory())
}

func (c *CompositionRoot) CreateApplyForJobCommandHandler() commands.ApplyForJobCommandHandler {
	return commands.NewApplyForJobCommandHandler(
		c.fullUoWFactory(), services.NewConflictResolver(), c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateApplicationStatusCommandHandler() commands.UpdateApplicationStatusCommandHandler {
	return commands.NewUpdateApplicationStatusCommandHandler(
		c.fullUoWFactory(), services.NewConflictResolver(), c.dispatcher)
}

func (c *CompositionRoot) CreateCancelApplicationCommandHandler() commands.CancelApplicationCommandHandler {
	return commands.NewCancelApplicationCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCheckinToJobCommandHandler() commands.CheckinToJobCommandHandler {
	return commands.NewCheckinToJobCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCheckoutFromJobCommandHandler() commands.CheckoutFromJobCommandHandler {
	return commands.NewCheckoutFromJobCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() commands.CompleteJobCommandHandler {
	return commands.NewCompleteJobCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateReportApplicationCommandHandler() commands.ReportApplicationCommandHandler {
	return commands.NewReportApplicationCommandHandler(c.fullUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateGetAllJobPostsQueryHandler() queries.GetAllJobPostsQueryHandler {
	return queries.NewGetAllJobPostsQueryHandler(
		c.gormDB,
		services.NewGeoDistanceService(c.resolver),
		workerrepo.NewGormWorkerReader(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGetJobApplicationsQueryHandler() queries.GetJobApplicationsQueryHandler {
	return queries.NewGetJobApplicationsQueryHandler(
		c.gormDB,
		services.NewMatchScorer(),
		services.NewGeoDistanceService(c.resolver),
		workerrepo.NewGormWorkerReader(c.gormDB),
		reviewrepo.NewGormReviewReader(c.gormDB),
	)
}

// CreateHTTPHandlers bundles every handler the HTTP server routes to.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		CreateJobPost:           c.CreateCreateJobPostCommandHandler(),
		UpdateJobPost:           c.CreateUpdateJobPostCommandHandler(),
		CloseJobPost:            c.CreateCloseJobPostCommandHandler(),
		RepostExpiredJob:        c.CreateRepostExpiredJobCommandHandler(),
		RepostPastJob:           c.CreateRepostPastJobCommandHandler(),
		ParseBulkJobData:        c.CreateParseBulkJobDataCommandHandler(),
		CreateBulkJobs:          c.CreateCreateBulkJobsCommandHandler(),
		ApplyForJob:             c.CreateApplyForJobCommandHandler(),
		UpdateApplicationStatus: c.CreateUpdateApplicationStatusCommandHandler(),
		CancelApplication:       c.CreateCancelApplicationCommandHandler(),
		CheckinToJob:            c.CreateCheckinToJobCommandHandler(),
		CheckoutFromJob:         c.CreateCheckoutFromJobCommandHandler(),
		CompleteJob:             c.CreateCompleteJobCommandHandler(),
		ReportApplication:       c.CreateReportApplicationCommandHandler(),
		GetAllJobPosts:          c.CreateGetAllJobPostsQueryHandler(),
		GetJobApplications:      c.CreateGetJobApplicationsQueryHandler(),
	}
}

// CreateJobManager wires the background jobs to the notification dispatcher.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.dispatcher, c.logger)
}

type FuncJobPostUoWFactory func() commands.JobPostUoW

func (f FuncJobPostUoWFactory) Create() commands.JobPostUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

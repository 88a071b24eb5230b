package queries_test

import (
	"context"
	"testing"
	"time"

	pgadapter "careshift/internal/adapters/out/postgres"
	"careshift/internal/adapters/out/postgres/applicationrepo"
	"careshift/internal/adapters/out/postgres/jobpostrepo"
	"careshift/internal/adapters/out/postgres/workerrepo"
	"careshift/internal/core/application/usecases/queries"
	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/core/domain/services"
	"careshift/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// stubAggregateTracker satisfies the repositories' tracker dependency where
// tracking is irrelevant to the test.
type stubAggregateTracker struct{}

func (stubAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// stubPostcodeResolver resolves a fixed postcode-to-coordinates table.
// Unknown postcodes fail, which exercises the unknown-distance degradation.
type stubPostcodeResolver struct {
	coords map[string]kernel.Coordinates
}

func (r stubPostcodeResolver) Resolve(
	_ context.Context, postcode kernel.Postcode,
) (kernel.Coordinates, error) {
	if coords, ok := r.coords[postcode.String()]; ok {
		return coords, nil
	}
	return kernel.Coordinates{}, errs.NewObjectNotFoundError("postcode", postcode.String())
}

func newStubResolver() stubPostcodeResolver {
	return stubPostcodeResolver{coords: map[string]kernel.Coordinates{
		"SW1A 1AA": {Latitude: 51.5014, Longitude: -0.1419}, // London
		"SW1A 2AA": {Latitude: 51.5035, Longitude: -0.1276}, // London, nearby
		"M1 1AE":   {Latitude: 53.4774, Longitude: -2.2430}, // Manchester
	}}
}

type GetAllJobPostsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	jobRepo   *jobpostrepo.GormJobPostRepository
	handler   queries.GetAllJobPostsQueryHandler
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(pgadapter.Migrate(db))

	suite.jobRepo = jobpostrepo.NewGormJobPostRepository(db, stubAggregateTracker{})
	suite.handler = queries.NewGetAllJobPostsQueryHandler(
		db,
		services.NewGeoDistanceService(newStubResolver()),
		workerrepo.NewGormWorkerReader(db),
	)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) SetupTest() {
	for _, table := range []string{"job_posts", "job_applications", "workers"} {
		suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error)
	}
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptyPage() {
	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, nil, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result.JobPosts)
	suite.Equal(0, result.Total)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_SortsByDateAndTimeWithoutWorkerContext() {
	suite.seedPost("2030-06-12", "09:00", "SW1A 1AA", kernel.NewUUID())
	suite.seedPost("2030-06-10", "14:00", "SW1A 1AA", kernel.NewUUID())
	suite.seedPost("2030-06-10", "08:00", "SW1A 1AA", kernel.NewUUID())

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, nil, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.JobPosts, 3)

	suite.Equal("2030-06-10", result.JobPosts[0].Date)
	suite.Equal("08:00", result.JobPosts[0].StartTime)
	suite.Equal("14:00", result.JobPosts[1].StartTime)
	suite.Equal("2030-06-12", result.JobPosts[2].Date)

	suite.Nil(result.JobPosts[0].DistanceKm)
	suite.Nil(result.JobPosts[0].ApplicationStatus)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_LoadsRelationSets() {
	post := suite.seedPost("2030-06-10", "09:00", "SW1A 1AA", kernel.NewUUID())

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, nil, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.JobPosts, 1)

	suite.True(result.JobPosts[0].ID.IsEqual(post.ID()))
	suite.ElementsMatch([]string{"personal care", "mobility"}, result.JobPosts[0].CareNeeds)
	suite.ElementsMatch([]string{"english"}, result.JobPosts[0].Languages)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_FiltersByStatusOwnerAndDate() {
	ownerID := kernel.NewUUID()
	open := suite.seedPost("2030-06-10", "09:00", "SW1A 1AA", ownerID)
	closed := suite.seedPost("2030-06-11", "09:00", "SW1A 1AA", ownerID)
	suite.Require().NoError(closed.Close())
	suite.Require().NoError(suite.jobRepo.Update(context.Background(), closed))
	suite.seedPost("2030-06-20", "09:00", "SW1A 1AA", kernel.NewUUID())

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{
		OwnerID:  &ownerID,
		Statuses: []jobpost.Status{jobpost.Open},
		DateFrom: "2030-06-01",
		DateTo:   "2030-06-15",
	}, nil, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.JobPosts, 1)
	suite.True(result.JobPosts[0].ID.IsEqual(open.ID()))
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_ExcludesRecurrenceTemplatesAndDeleted() {
	suite.seedPost("2030-06-10", "09:00", "SW1A 1AA", kernel.NewUUID())

	recurrence, err := jobpost.NewRecurrence("weekly", []string{"Monday"}, "2030-07-01")
	suite.Require().NoError(err)
	parent, err := jobpost.NewRecurringJobPost(
		kernel.NewUUID(), kernel.NewUUID(),
		suite.testDetails("2030-06-11", "09:00", "SW1A 1AA"), recurrence,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.jobRepo.Add(context.Background(), parent))

	deleted := suite.seedPost("2030-06-12", "09:00", "SW1A 1AA", kernel.NewUUID())
	deleted.SoftDelete()
	suite.Require().NoError(suite.jobRepo.Update(context.Background(), deleted))

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, nil, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Len(result.JobPosts, 1)
	suite.Equal("2030-06-10", result.JobPosts[0].Date)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_WorkerContext_SortsByDistance() {
	london := suite.seedPost("2030-06-20", "09:00", "SW1A 1AA", kernel.NewUUID())
	manchester := suite.seedPost("2030-06-10", "09:00", "M1 1AE", kernel.NewUUID())

	workerID := suite.seedWorker("SW1A 2AA")

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, &workerID, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.JobPosts, 2)

	// The nearby London post ranks first despite its later date.
	suite.True(result.JobPosts[0].ID.IsEqual(london.ID()))
	suite.True(result.JobPosts[1].ID.IsEqual(manchester.ID()))

	suite.Require().NotNil(result.JobPosts[0].DistanceKm)
	suite.Require().NotNil(result.JobPosts[1].DistanceKm)
	suite.Less(*result.JobPosts[0].DistanceKm, *result.JobPosts[1].DistanceKm)
	suite.Greater(*result.JobPosts[1].DistanceKm, 200.0)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_WorkerContext_AnnotatesAppliedStatus() {
	applied := suite.seedPost("2030-06-10", "09:00", "SW1A 1AA", kernel.NewUUID())
	suite.seedPost("2030-06-11", "09:00", "SW1A 1AA", kernel.NewUUID())

	workerID := suite.seedWorker("SW1A 2AA")
	suite.seedApplication(applied.ID(), workerID)

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, &workerID, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.JobPosts, 2)

	for _, summary := range result.JobPosts {
		if summary.ID.IsEqual(applied.ID()) {
			suite.Require().NotNil(summary.ApplicationStatus)
			suite.Equal(application.Pending.String(), *summary.ApplicationStatus)
		} else {
			suite.Nil(summary.ApplicationStatus)
		}
	}
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_UnresolvablePostcode_UsesSentinelDistance() {
	suite.seedPost("2030-06-10", "09:00", "ZZ9 9ZZ", kernel.NewUUID())
	workerID := suite.seedWorker("SW1A 2AA")

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, &workerID, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.JobPosts, 1)
	suite.Require().NotNil(result.JobPosts[0].DistanceKm)
	suite.Equal(float64(services.UnknownDistance), *result.JobPosts[0].DistanceKm)
	suite.Equal(float64(services.UnknownDistance), *result.JobPosts[0].DistanceMiles)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_Pagination() {
	for day := 10; day < 15; day++ {
		suite.seedPost(time.Date(2030, 6, day, 0, 0, 0, 0, time.UTC).Format(kernel.DateLayout),
			"09:00", "SW1A 1AA", kernel.NewUUID())
	}

	query, err := queries.NewGetAllJobPostsQuery(queries.JobPostFilter{}, nil, 2, 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(5, result.Total)
	suite.Require().Len(result.JobPosts, 2)
	suite.Equal("2030-06-12", result.JobPosts[0].Date)
	suite.Equal("2030-06-13", result.JobPosts[1].Date)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetAllJobPostsQuery{})
	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetAllJobPostsQueryIsNotConstructed)
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) testDetails(
	date string, start string, postcode string,
) jobpost.Details {
	schedule, err := kernel.NewSchedule(date, start, "17:00")
	suite.Require().NoError(err)

	pc, err := kernel.NewPostcode(postcode)
	suite.Require().NoError(err)

	payment, err := jobpost.NewPayment(jobpost.PaymentHourly, 18.50)
	suite.Require().NoError(err)

	return jobpost.Details{
		Postcode:         pc,
		Address:          "10 Downing Street, London",
		Schedule:         schedule,
		ShiftLengthHours: 8,
		RecipientGender:  jobpost.GenderFemale,
		RecipientAge:     80,
		CaregiverGender:  jobpost.GenderAny,
		Payment:          payment,
		CareNeeds:        []string{"personal care", "mobility"},
		Languages:        []string{"english"},
	}
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) seedPost(
	date string, start string, postcode string, ownerID kernel.UUID,
) *jobpost.JobPost {
	post, err := jobpost.NewJobPost(
		kernel.NewUUID(), ownerID, suite.testDetails(date, start, postcode),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.jobRepo.Add(context.Background(), post))
	return post
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) seedWorker(postcode string) kernel.UUID {
	workerID := kernel.NewUUID()
	dto := workerrepo.WorkerDTO{
		ID:        workerID.Bytes(),
		Name:      "Ada Price",
		Gender:    "female",
		Postcode:  postcode,
		Languages: pq.StringArray{"english"},
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return workerID
}

func (suite *GetAllJobPostsQueryHandlerTestSuite) seedApplication(
	jobPostID kernel.UUID, workerID kernel.UUID,
) {
	app, err := application.NewApplication(
		kernel.NewUUID(), jobPostID, workerID, "happy to help", nil,
	)
	suite.Require().NoError(err)

	repo := applicationrepo.NewGormApplicationRepository(suite.db, stubAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), app))
}

func TestGetAllJobPostsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAllJobPostsQueryHandlerTestSuite))
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	pgadapter "careshift/internal/adapters/out/postgres"
	"careshift/internal/adapters/out/postgres/jobpostrepo"
	"careshift/internal/core/domain/model/application"
	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics of the GORM
// unit of work: commits persist every write, rollbacks discard them all.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *pgadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(pgadapter.Migrate(db))

	suite.factory = pgadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE job_posts CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE job_applications CASCADE").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAllWrites() {
	ctx := context.Background()

	post := suite.createTestJobPost()
	app := suite.createApplicationFor(post)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.JobPostRepository().Add(ctx, post))
	suite.Require().NoError(uow.ApplicationRepository().Add(ctx, app))

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertJobPostCount(1)
	suite.assertApplicationCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()

	post := suite.createTestJobPost()
	app := suite.createApplicationFor(post)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.JobPostRepository().Add(ctx, post))
	suite.Require().NoError(uow.ApplicationRepository().Add(ctx, app))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertJobPostCount(0)
	suite.assertApplicationCount(0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_ReturnsError() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_IsIdempotent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.JobPostRepository().Add(ctx, suite.createTestJobPost()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertJobPostCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedWritesAreInvisible() {
	ctx := context.Background()

	post := suite.createTestJobPost()

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	suite.Require().NoError(writer.JobPostRepository().Add(ctx, post))

	reader := suite.factory.Create()
	_, err := reader.JobPostRepository().Get(ctx, post.ID())
	suite.Require().Error(err)

	suite.Require().NoError(writer.Commit(ctx))

	retrieved, err := reader.JobPostRepository().Get(ctx, post.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(post.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestJobPost() *jobpost.JobPost {
	schedule, err := kernel.NewSchedule("2030-06-10", "09:00", "17:00")
	suite.Require().NoError(err)

	postcode, err := kernel.NewPostcode("SW1A 1AA")
	suite.Require().NoError(err)

	payment, err := jobpost.NewPayment(jobpost.PaymentHourly, 18.50)
	suite.Require().NoError(err)

	post, err := jobpost.NewJobPost(kernel.NewUUID(), kernel.NewUUID(), jobpost.Details{
		Postcode:         postcode,
		Address:          "10 Downing Street, London",
		Schedule:         schedule,
		ShiftLengthHours: 8,
		RecipientGender:  jobpost.GenderFemale,
		RecipientAge:     80,
		CaregiverGender:  jobpost.GenderAny,
		Payment:          payment,
	})
	suite.Require().NoError(err)
	return post
}

func (suite *UnitOfWorkIntegrationTestSuite) createApplicationFor(
	post *jobpost.JobPost,
) *application.Application {
	app, err := application.NewApplication(
		kernel.NewUUID(), post.ID(), kernel.NewUUID(), "happy to help", nil,
	)
	suite.Require().NoError(err)
	return app
}

func (suite *UnitOfWorkIntegrationTestSuite) assertJobPostCount(expected int) {
	var count int64
	err := suite.db.Model(&jobpostrepo.JobPostDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertApplicationCount(expected int) {
	var count int64
	err := suite.db.Table("job_applications").Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

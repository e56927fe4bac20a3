package routerepo_test

import (
	"context"
	"testing"
	"time"

	"routeplan/internal/adapters/out/postgres/routerepo"
	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// RouteRepositoryIntegrationTestSuite provides integration tests for RouteRepository
// using PostgreSQL containers to verify persistence of routes and their stops.
type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *routerepo.GormRouteRepository
	tracker    *MockAggregateTracker
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&routerepo.RouteDTO{}, &routerepo.StopDTO{}))
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE routes CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE route_stops").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = routerepo.NewGormRouteRepository(suite.db, suite.tracker)
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_PersistsRouteWithStops() {
	ctx := context.Background()

	testRoute := suite.createTestRoute(3)
	suite.tracker.On("TrackAggregate", testRoute.ID(), testRoute).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	var routeCount, stopCount int64
	suite.Require().NoError(suite.db.Model(&routerepo.RouteDTO{}).Count(&routeCount).Error)
	suite.Require().NoError(suite.db.Model(&routerepo.StopDTO{}).Count(&stopCount).Error)
	suite.Equal(int64(1), routeCount)
	suite.Equal(int64(3), stopCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFields() {
	ctx := context.Background()

	testRoute := suite.createTestRoute(2)
	suite.tracker.On("TrackAggregate", testRoute.ID(), testRoute).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	retrieved, err := suite.repository.Get(ctx, testRoute.ID())
	suite.Require().NoError(err)

	suite.Equal(testRoute.ID(), retrieved.ID())
	suite.Equal(testRoute.CompanyID(), retrieved.CompanyID())
	suite.InDelta(42.5, retrieved.TotalDistanceKm(), 0.001)
	suite.InDelta(95, retrieved.TotalTimeMinutes(), 0.001)
	suite.InDelta(11.2, retrieved.FuelCostEur(), 0.001)
	suite.Equal(route.Planned, retrieved.Status())
	suite.Equal(testRoute.AccessToken().String(), retrieved.AccessToken().String())

	suite.Require().Len(retrieved.Stops(), 2)
	for i, s := range retrieved.Stops() {
		suite.Equal(i+1, s.Sequence())
		suite.Equal(testRoute.Stops()[i].OrderID(), s.OrderID())
		suite.Equal(route.StopPending, s.Status())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetByAccessToken_ResolvesRoute() {
	ctx := context.Background()

	testRoute := suite.createTestRoute(1)
	suite.tracker.On("TrackAggregate", testRoute.ID(), testRoute).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	retrieved, err := suite.repository.GetByAccessToken(ctx, testRoute.AccessToken())
	suite.Require().NoError(err)
	suite.Equal(testRoute.ID(), retrieved.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetByAccessToken_UnknownToken_ReturnsNotFoundError() {
	ctx := context.Background()

	token, err := route.AccessTokenFromString("3b1f2e4d5c6a7980aabbccddeeff0011")
	suite.Require().NoError(err)

	retrieved, err := suite.repository.GetByAccessToken(ctx, token)
	suite.Nil(retrieved)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_PersistsStopProgress() {
	ctx := context.Background()

	testRoute := suite.createTestRoute(2)
	suite.tracker.On("TrackAggregate", testRoute.ID(), testRoute).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	testRoute.Open()
	suite.Require().NoError(testRoute.ActivateStop(1))
	photoRef := "s3://proofs/route/stop-1"
	note := "left at reception"
	suite.Require().NoError(testRoute.AttachProof(1, &photoRef, &note))
	completedAt := time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)
	_, err := testRoute.CompleteStop(1, completedAt)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, testRoute))

	retrieved, err := suite.repository.Get(ctx, testRoute.ID())
	suite.Require().NoError(err)

	suite.Equal(route.Active, retrieved.Status())

	firstStop, err := retrieved.Stop(1)
	suite.Require().NoError(err)
	suite.Equal(route.StopCompleted, firstStop.Status())
	suite.Require().NotNil(firstStop.PhotoRef())
	suite.Equal(photoRef, *firstStop.PhotoRef())
	suite.Require().NotNil(firstStop.Note())
	suite.Equal(note, *firstStop.Note())
	suite.Require().NotNil(firstStop.CompletedAt())
	suite.True(completedAt.Equal(*firstStop.CompletedAt()))

	secondStop, err := retrieved.Stop(2)
	suite.Require().NoError(err)
	suite.Equal(route.StopPending, secondStop.Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_RouteCompletionPersists() {
	ctx := context.Background()

	testRoute := suite.createTestRoute(1)
	suite.tracker.On("TrackAggregate", testRoute.ID(), testRoute).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	testRoute.Open()
	suite.Require().NoError(testRoute.ActivateStop(1))
	_, err := testRoute.CompleteStop(1, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testRoute))

	retrieved, err := suite.repository.Get(ctx, testRoute.ID())
	suite.Require().NoError(err)
	suite.Equal(route.Completed, retrieved.Status())

	suite.tracker.AssertExpectations(suite.T())
}

// createTestRoute creates a planned route with the requested number of stops.
func (suite *RouteRepositoryIntegrationTestSuite) createTestRoute(stopCount int) *route.Route {
	stops := make([]*route.Stop, 0, stopCount)
	for i := range stopCount {
		s, err := route.NewStop(i+1, kernel.NewUUID())
		suite.Require().NoError(err)
		stops = append(stops, s)
	}

	testRoute, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), stops, 42.5, 95, 11.2)
	suite.Require().NoError(err)
	return testRoute
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}

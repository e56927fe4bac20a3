package queries_test

import (
	"context"
	"testing"
	"time"

	"routeplan/internal/adapters/out/postgres/orderrepo"
	"routeplan/internal/adapters/out/postgres/routerepo"
	"routeplan/internal/core/application/usecases/queries"
	"routeplan/internal/core/domain/model/kernel"
	"routeplan/internal/core/domain/model/order"
	"routeplan/internal/core/domain/model/route"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetCompanyStatsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetCompanyStatsQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	routeRepo *routerepo.GormRouteRepository
	companyID kernel.UUID
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &routerepo.RouteDTO{}, &routerepo.StopDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetCompanyStatsQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.routeRepo = routerepo.NewGormRouteRepository(db, &mockAggregateTracker{})
	suite.companyID = kernel.NewUUID()
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, routes, route_stops CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsZeroes() {
	query, err := queries.NewGetCompanyStatsQuery(suite.companyID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Zero(result.PendingOrders)
	suite.Zero(result.PendingWeightKg)
	suite.Zero(result.ActiveRoutes)
	suite.Zero(result.DeliveredToday)
	suite.Zero(result.TotalDistanceKm)
	suite.Zero(result.TotalFuelCostEur)
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) TestHandle_CountsPendingOrdersAndWeight() {
	suite.createOrder(suite.companyID, 120)
	suite.createOrder(suite.companyID, 380)

	assigned := suite.createOrder(suite.companyID, 999)
	suite.Require().NoError(assigned.Assign())
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), assigned))

	query, err := queries.NewGetCompanyStatsQuery(suite.companyID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(2, result.PendingOrders)
	suite.InDelta(500.0, result.PendingWeightKg, 0.001)
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) TestHandle_CountsDeliveredToday() {
	today := suite.createDeliveredOrder(75)
	suite.createCompletedStopRoute(today.ID(), time.Now().UTC())

	yesterday := suite.createDeliveredOrder(40)
	suite.createCompletedStopRoute(yesterday.ID(), time.Now().UTC().Add(-24*time.Hour))

	query, err := queries.NewGetCompanyStatsQuery(suite.companyID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(1, result.DeliveredToday, "only stops completed today count")
	suite.Zero(result.PendingOrders)
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) TestHandle_AggregatesRouteTotals() {
	suite.createRoute(suite.companyID, route.Active, 40.0, 90, 10.5)
	suite.createRoute(suite.companyID, route.Active, 25.0, 60, 6.5)
	suite.createRoute(suite.companyID, route.Completed, 15.0, 30, 4.0)

	query, err := queries.NewGetCompanyStatsQuery(suite.companyID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(2, result.ActiveRoutes)
	suite.Equal(1, result.CompletedRoutes)
	suite.InDelta(80.0, result.TotalDistanceKm, 0.001)
	suite.InDelta(180.0, result.TotalTimeMinutes, 0.001)
	suite.InDelta(21.0, result.TotalFuelCostEur, 0.001)
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) TestHandle_IgnoresOtherCompanies() {
	otherCompany := kernel.NewUUID()
	suite.createOrder(otherCompany, 200)
	suite.createRoute(otherCompany, route.Active, 50.0, 100, 12.0)

	query, err := queries.NewGetCompanyStatsQuery(suite.companyID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Zero(result.PendingOrders)
	suite.Zero(result.ActiveRoutes)
	suite.Zero(result.TotalDistanceKm)
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetCompanyStatsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetCompanyStatsQuery constructor")
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) createOrder(companyID kernel.UUID, weightKg float64) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(),
		companyID,
		"Test Customer",
		"",
		"Bahnhofstrasse 3, Munich",
		weightKg,
		order.DefaultPriority,
		time.Time{},
	)
	suite.Require().NoError(err)

	err = suite.orderRepo.Add(context.Background(), o)
	suite.Require().NoError(err)

	return o
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) createDeliveredOrder(weightKg float64) *order.Order {
	o := suite.createOrder(suite.companyID, weightKg)
	suite.Require().NoError(o.Assign())
	suite.Require().NoError(o.Deliver())
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), o))
	return o
}

// createCompletedStopRoute persists a completed single-stop route whose stop
// confirmed the given order at the given time.
func (suite *GetCompanyStatsQueryHandlerTestSuite) createCompletedStopRoute(
	orderID kernel.UUID,
	completedAt time.Time,
) *route.Route {
	stop, err := route.RestoreStop(1, orderID, route.StopCompleted, nil, nil, &completedAt)
	suite.Require().NoError(err)

	token, err := route.NewAccessToken()
	suite.Require().NoError(err)

	r, err := route.RestoreRoute(
		kernel.NewUUID(),
		suite.companyID,
		[]*route.Stop{stop},
		12.0, 25, 3.5,
		route.Completed,
		token,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = suite.routeRepo.Add(context.Background(), r)
	suite.Require().NoError(err)

	return r
}

func (suite *GetCompanyStatsQueryHandlerTestSuite) createRoute(
	companyID kernel.UUID,
	status route.Status,
	distanceKm float64,
	timeMinutes float64,
	fuelCostEur float64,
) *route.Route {
	stop, err := route.NewStop(1, kernel.NewUUID())
	suite.Require().NoError(err)

	token, err := route.NewAccessToken()
	suite.Require().NoError(err)

	r, err := route.RestoreRoute(
		kernel.NewUUID(),
		companyID,
		[]*route.Stop{stop},
		distanceKm,
		timeMinutes,
		fuelCostEur,
		status,
		token,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = suite.routeRepo.Add(context.Background(), r)
	suite.Require().NoError(err)

	return r
}

func TestGetCompanyStatsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetCompanyStatsQueryHandlerTestSuite))
}

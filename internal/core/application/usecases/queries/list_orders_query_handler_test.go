package queries_test

import (
	"context"
	"testing"
	"time"

	"restring/internal/adapters/out/postgres/orderrepo"
	"restring/internal/core/application/usecases/queries"
	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(string, any) {}

type ListOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusHistoryEntryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *ListOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ListOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_status_history RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewListOrdersQuery("")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_NoFilter_ReturnsAllNewestFirst() {
	older := suite.seedOrder("anna@example.com", time.Now().UTC().Add(-2*time.Hour))
	newer := suite.seedOrder("ben@example.com", time.Now().UTC().Add(-time.Hour))

	query := queries.NewListOrdersQuery("")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
	suite.Equal(order.Pending, result[0].Status)
	suite.True(decimal.NewFromInt(45).Equal(result[0].Total))
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_CustomerFilter_ReturnsOnlyTheirOrders() {
	mine := suite.seedOrder("anna@example.com", time.Now().UTC().Add(-time.Hour))
	suite.seedOrder("ben@example.com", time.Now().UTC())

	query := queries.NewListOrdersQuery("anna@example.com")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
	suite.Equal("anna@example.com", result[0].CustomerEmail)
}

func (suite *ListOrdersQueryHandlerTestSuite) TestHandle_UnknownCustomer_ReturnsEmptySlice() {
	suite.seedOrder("anna@example.com", time.Now().UTC())

	query := queries.NewListOrdersQuery("nobody@example.com")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *ListOrdersQueryHandlerTestSuite) seedOrder(email string, createdAt time.Time) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), email, "SYN-GUT-16", nil, decimal.NewFromInt(45), false, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func TestListOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListOrdersQueryHandlerTestSuite))
}

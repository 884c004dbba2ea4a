package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"restring/internal/adapters/out/postgres/orderrepo"
	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/pkg/errs"

	"github.com/shopspring/decimal"
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

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers to verify persistence of
// orders and their append-only status history.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusHistoryEntryDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_status_history RESTART IDENTITY").Error
	suite.Require().NoError(err)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderAndInitialHistory() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("anna@example.com")
	suite.tracker.On("TrackAggregate", testOrder.ID().String(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertHistoryCount(testOrder.ID(), 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestOrder("anna@example.com")
	suite.tracker.On("TrackAggregate", original.ID().String(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("anna@example.com", retrieved.CustomerEmail())
	suite.Equal("SYN-GUT-16", retrieved.SKU())
	suite.Equal([]string{"logo stencil"}, retrieved.Options())
	suite.True(original.Total().Equal(retrieved.Total()))
	suite.False(retrieved.Express())
	suite.Equal(order.Pending, retrieved.Status())

	suite.Require().Len(retrieved.History(), 1)
	suite.Equal(order.Pending, retrieved.History()[0].Status())
	suite.Equal("system", retrieved.History()[0].Actor())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewHistoryEntries() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("anna@example.com")
	suite.tracker.On("TrackAggregate", testOrder.ID().String(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	changed, err := testOrder.TransitionTo(order.PickedUp, "driver en route", "marco", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().True(changed)

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PickedUp, retrieved.Status())

	history := retrieved.History()
	suite.Require().Len(history, 2)
	suite.Equal(order.Pending, history[0].Status())
	suite.Equal(order.PickedUp, history[1].Status())
	suite.Equal("driver en route", history[1].Note())
	suite.Equal("marco", history[1].Actor())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnchangedHistory_InsertsNothing() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("anna@example.com")
	suite.tracker.On("TrackAggregate", testOrder.ID().String(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AppendNote("prefers evening delivery"))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	suite.assertHistoryCount(testOrder.ID(), 1)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("prefers evening delivery", retrieved.Notes())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("anna@example.com")

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_ReturnsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("anna@example.com")
	suite.tracker.On("TrackAggregate", testOrder.ID().String(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByCustomer_ReturnsOnlyTheirOrders() {
	ctx := context.Background()

	first := suite.createTestOrder("anna@example.com")
	second := suite.createTestOrder("anna@example.com")
	other := suite.createTestOrder("ben@example.com")

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	orders, err := suite.repository.ListByCustomer(ctx, "anna@example.com")
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	for _, o := range orders {
		suite.Equal("anna@example.com", o.CustomerEmail())
		suite.Len(o.History(), 1)
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(email string) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		email,
		"SYN-GUT-16",
		[]string{"logo stencil"},
		decimal.NewFromInt(45),
		false,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertHistoryCount(orderID kernel.UUID, expected int64) {
	var count int64
	err := suite.db.Model(&orderrepo.StatusHistoryEntryDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

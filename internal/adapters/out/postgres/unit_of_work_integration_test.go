package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "restring/internal/adapters/out/postgres"
	"restring/internal/adapters/out/postgres/inventoryrepo"
	"restring/internal/adapters/out/postgres/orderrepo"
	"restring/internal/adapters/out/postgres/profilerepo"
	"restring/internal/core/domain/model/inventory"
	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that repositories obtained from one
// unit of work share a transaction against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgresadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryEntryDTO{},
		&inventoryrepo.ItemDTO{},
		&inventoryrepo.MovementDTO{},
		&profilerepo.ProfileDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_status_history, inventory_items, inventory_movements, customer_profiles RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	first := suite.factory.Create()
	second := suite.factory.Create()

	suite.NotNil(first)
	suite.NotNil(second)
	suite.NotSame(first, second)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle_CommitPersists() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// Begin on an open transaction is a no-op.
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertOrderCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors_WithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	item := suite.createTestItem()
	suite.Require().NoError(uow.InventoryRepository().AddItem(ctx, item))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertOrderCount(0)
	var items int64
	suite.Require().NoError(suite.db.Model(&inventoryrepo.ItemDTO{}).Count(&items).Error)
	suite.Equal(int64(0), items)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMultiRepository_SharedTransaction() {
	ctx := context.Background()

	// Seed the item outside the transaction under test.
	seed := suite.factory.Create()
	suite.Require().NoError(seed.InventoryRepository().AddItem(ctx, suite.createTestItem()))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	movement, err := inventory.NewConsumptionMovement("SYN-GUT-16", 1, testOrder.ID(), time.Now().UTC())
	suite.Require().NoError(err)
	onHand, err := uow.InventoryRepository().RecordMovement(ctx, movement)
	suite.Require().NoError(err)
	suite.Equal(11, onHand)

	// Not visible outside the transaction before commit.
	suite.assertOrderCount(0)

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertOrderCount(1)
	persisted, err := suite.factory.Create().InventoryRepository().GetItem(ctx, "SYN-GUT-16")
	suite.Require().NoError(err)
	suite.Equal(11, persisted.OnHand())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WorkWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	retrieved, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAggregateTracking_SurvivesCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	// The concrete type exposes tracked aggregates for followup processing.
	concrete, ok := uow.(interface{ TrackAggregate(string, any) })
	suite.True(ok)
	suite.NotNil(concrete)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"anna@example.com",
		"SYN-GUT-16",
		nil,
		decimal.NewFromInt(45),
		false,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestItem() *inventory.Item {
	item, err := inventory.NewItem(
		"SYN-GUT-16", "Synthetic gut 16g", 12, 5, decimal.NewFromFloat(6.5), time.Now().UTC())
	suite.Require().NoError(err)
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

var _ ports.UnitOfWorkFactory = (*postgresadapter.GormUnitOfWorkFactory)(nil)

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

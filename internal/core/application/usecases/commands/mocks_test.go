package commands_test

import (
	"context"
	"time"

	"restring/internal/core/application/usecases/commands"
	"restring/internal/core/domain/model/customer"
	"restring/internal/core/domain/model/inventory"
	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, email string) ([]*order.Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) AddItem(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetItem(ctx context.Context, sku string) (*inventory.Item, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepository) ListItems(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepository) RecordMovement(ctx context.Context, movement inventory.Movement) (int, error) {
	args := m.Called(ctx, movement)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) SumMovements(ctx context.Context, sku string) (int, error) {
	args := m.Called(ctx, sku)
	return args.Int(0), args.Error(1)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) Get(ctx context.Context, email string) (*customer.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Profile), args.Error(1)
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *customer.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockUoW satisfies every unit-of-work combination the handlers use.
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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) ProfileRepository() ports.ProfileRepository {
	args := m.Called()
	return args.Get(0).(ports.ProfileRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

type MockProfileUoWFactory struct{ mock.Mock }

func (m *MockProfileUoWFactory) Create() commands.ProfileUoW {
	args := m.Called()
	return args.Get(0).(commands.ProfileUoW)
}

// Sender and delivery-log stubs for dispatcher wiring in handler tests.

type StubSender struct {
	Sent []string
	Err  error
}

func (s *StubSender) Send(_ context.Context, recipient, message string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, recipient+"|"+message)
	return nil
}

type StubDeliveryLog struct {
	Keys map[string]bool
}

func NewStubDeliveryLog() *StubDeliveryLog {
	return &StubDeliveryLog{Keys: map[string]bool{}}
}

func (s *StubDeliveryLog) AlreadySent(_ context.Context, key string) (bool, error) {
	return s.Keys[key], nil
}

func (s *StubDeliveryLog) MarkSent(_ context.Context, key string, _ time.Time) error {
	s.Keys[key] = true
	return nil
}

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"restring/internal/core/application/usecases/commands"
	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfirmOrderCommandHandler_CreatesPendingOrder(t *testing.T) {
	ctx := context.Background()

	id := kernel.NewUUID()
	cmd, err := commands.NewConfirmOrderCommand(
		id, "anna@example.com", "SYN-GUT-16", nil, decimal.NewFromInt(35), false)
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	var created *order.Order
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*order.Order)
		}).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	sender := &StubSender{}
	deliveryLog := NewStubDeliveryLog()
	dispatcher := services.NewNotificationDispatcher(sender, deliveryLog, discardLogger())

	handler := commands.NewConfirmOrderCommandHandler(factory, dispatcher, discardLogger())
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, created)
	assert.Equal(t, order.Pending, created.Status())
	assert.True(t, created.ID().IsEqual(id))

	// Confirmation message goes out once, keyed by order and status.
	require.Len(t, sender.Sent, 1)
	assert.True(t, deliveryLog.Keys[services.TransitionDedupeKey(id, order.Pending)])

	mock.AssertExpectationsForObjects(t, orderRepo, uow, factory)
}

func TestConfirmOrderCommandHandler_NotificationFailureIsAbsorbed(t *testing.T) {
	ctx := context.Background()

	id := kernel.NewUUID()
	cmd, err := commands.NewConfirmOrderCommand(
		id, "anna@example.com", "SYN-GUT-16", nil, decimal.NewFromInt(35), false)
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Add", ctx, mock.Anything).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	sender := &StubSender{Err: assert.AnError}
	dispatcher := services.NewNotificationDispatcher(sender, NewStubDeliveryLog(), discardLogger())

	handler := commands.NewConfirmOrderCommandHandler(factory, dispatcher, discardLogger())
	assert.NoError(t, handler.Handle(ctx, cmd))
}

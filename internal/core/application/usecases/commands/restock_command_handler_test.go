package commands_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"restring/internal/core/application/usecases/commands"
	"restring/internal/core/domain/model/inventory"
	"restring/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRestockCommandHandler_CreditsExistingItem(t *testing.T) {
	ctx := context.Background()

	item, err := inventory.NewItem(
		"SYN-GUT-16", "Synthetic Gut 16", 4, 5, decimal.NewFromInt(6), time.Now().UTC())
	require.NoError(t, err)

	var credit inventory.Movement
	inventoryRepo := &MockInventoryRepository{}
	inventoryRepo.On("GetItem", ctx, "SYN-GUT-16").Return(item, nil)
	inventoryRepo.On("RecordMovement", ctx, mock.AnythingOfType("inventory.Movement")).
		Run(func(args mock.Arguments) {
			credit = args.Get(1).(inventory.Movement)
		}).Return(14, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockInventoryUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewRestockCommandHandler(factory)

	cmd, err := commands.NewRestockCommand("SYN-GUT-16", 10, decimal.NewFromInt(6), "reel delivery")
	require.NoError(t, err)
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.Equal(t, 10, credit.Delta())
	assert.Equal(t, inventory.ReasonManualRestock, credit.Reason())
	assert.Equal(t, "reel delivery", credit.Note())
	assert.Nil(t, credit.OrderID())

	inventoryRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
	mock.AssertExpectationsForObjects(t, inventoryRepo, uow, factory)
}

func TestRestockCommandHandler_RegistersUnknownSKU(t *testing.T) {
	ctx := context.Background()

	var added *inventory.Item
	inventoryRepo := &MockInventoryRepository{}
	inventoryRepo.On("GetItem", ctx, "POLY-17").
		Return(nil, fmt.Errorf("%w: POLY-17", errs.ErrObjectNotFound))
	inventoryRepo.On("AddItem", ctx, mock.AnythingOfType("*inventory.Item")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).(*inventory.Item)
		}).Return(nil)
	inventoryRepo.On("RecordMovement", ctx, mock.Anything).Return(20, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("InventoryRepository").Return(inventoryRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockInventoryUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewRestockCommandHandler(factory)

	cmd, err := commands.NewRestockCommand("POLY-17", 20, decimal.NewFromFloat(8.5), "")
	require.NoError(t, err)
	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, added)
	assert.Equal(t, "POLY-17", added.SKU())
	assert.Equal(t, 0, added.OnHand())
	assert.True(t, added.CostPerUnit().Equal(decimal.NewFromFloat(8.5)))

	mock.AssertExpectationsForObjects(t, inventoryRepo, uow, factory)
}

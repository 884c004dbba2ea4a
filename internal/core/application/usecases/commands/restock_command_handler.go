package commands

import (
	"context"
	"errors"
	"time"

	"restring/internal/core/domain/model/inventory"
	"restring/internal/pkg/errs"
)

// defaultReorderAt is the reorder threshold given to SKUs first seen through
// a restock; operators tune it afterwards.
const defaultReorderAt = 5

// RestockCommandHandler credits stock for a SKU. A restock of a SKU the
// system has never seen registers the item on the fly, so receiving stock is
// never blocked on catalog bookkeeping.
type RestockCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewRestockCommandHandler creates a handler for restock operations.
func NewRestockCommandHandler(uowFactory InventoryUoWFactory) RestockCommandHandler {
	return RestockCommandHandler{uowFactory: uowFactory}
}

// Handle appends the restock movement and applies it to the item's counter
// in one transaction.
func (h *RestockCommandHandler) Handle(ctx context.Context, cmd RestockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	movement, err := inventory.NewRestockMovement(cmd.SKU(), cmd.Quantity(), cmd.Notes(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InventoryRepository()

	_, err = repo.GetItem(ctx, cmd.SKU())
	if errors.Is(err, errs.ErrObjectNotFound) {
		item, newErr := inventory.NewItem(cmd.SKU(), cmd.SKU(), 0, defaultReorderAt, cmd.CostPerUnit(), now)
		if newErr != nil {
			return newErr
		}
		if err = repo.AddItem(ctx, item); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if _, err = repo.RecordMovement(ctx, movement); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

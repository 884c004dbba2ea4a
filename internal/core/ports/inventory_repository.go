package ports

import (
	"context"

	"restring/internal/core/domain/model/inventory"
)

// InventoryRepository defines the persistence contract for the stock ledger.
type InventoryRepository interface {
	// AddItem registers a new string SKU.
	AddItem(ctx context.Context, item *inventory.Item) error

	// GetItem retrieves the stock record for a SKU.
	GetItem(ctx context.Context, sku string) (*inventory.Item, error)

	// ListItems retrieves all stock records.
	ListItems(ctx context.Context) ([]*inventory.Item, error)

	// RecordMovement appends a ledger row and applies its delta to the
	// cached on-hand counter in the same transaction, so the counter can
	// never drift from the ledger under concurrency. Returns the resulting
	// on-hand quantity for shortfall detection.
	RecordMovement(ctx context.Context, movement inventory.Movement) (onHand int, err error)

	// SumMovements reconstructs on-hand for a SKU from the ledger. Used to
	// reconcile the cached counter, which is never trusted over this sum.
	SumMovements(ctx context.Context, sku string) (int, error)
}

package ports

import (
	"context"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations persist the order row and its append-only status history
// atomically within the surrounding unit of work.
type OrderRepository interface {
	// Add persists a new order aggregate, including its initial history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a mutated order together with any newly appended
	// history entries. Both writes commit or roll back as one.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order with a row lock held for the duration
	// of the transaction, serializing concurrent transitions per order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByCustomer retrieves all orders for a customer, oldest first.
	// Feeds the analytics profile recompute.
	ListByCustomer(ctx context.Context, email string) ([]*order.Order, error)
}

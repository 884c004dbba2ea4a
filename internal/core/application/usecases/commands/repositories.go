// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS split.
// All commands follow a consistent shape: a constructor-guarded command
// object, validation, transaction management, and persistence.
package commands

import (
	"context"

	"restring/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers depend on the narrowest combination they need.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// ProfileRepoFactory provides access to the profile repository within a transaction.
	ProfileRepoFactory interface {
		ProfileRepository() ports.ProfileRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW manages transactions for inventory-only operations.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
	}

	// InventoryUoWFactory creates inventory unit of work instances.
	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// ProfileUoW manages transactions for the profile recompute, which reads
	// order history and upserts the derived profile.
	ProfileUoW interface {
		TxManager
		OrderRepoFactory
		ProfileRepoFactory
	}

	// ProfileUoWFactory creates profile unit of work instances.
	ProfileUoWFactory interface {
		Create() ProfileUoW
	}

	// UoW manages transactions across all aggregates. The transition handler
	// uses separate instances for the authoritative state write and for the
	// post-commit inventory debit, so a debit failure can never roll back a
	// committed transition.
	UoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		ProfileRepoFactory
	}

	// UoWFactory creates unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

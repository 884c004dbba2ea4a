package commands

import (
	"context"
	"log/slog"
	"time"

	"restring/internal/core/domain/model/inventory"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/domain/services"
)

// TransitionResult reports the outcome of a transition request. Shortfall is
// a warning attached to a successful transition, never an error: the physical
// work proceeds even when the system missed a restock.
type TransitionResult struct {
	// Changed is false for the idempotent no-op case (target equals the
	// order's current status).
	Changed bool

	// Shortfall is set when the production debit drove the SKU's on-hand
	// quantity to or below zero.
	Shortfall bool
}

// TransitionOrderCommandHandler is the status transition engine. It applies
// one validated state move atomically with its history append, then fires the
// side effects in order: inventory debit on entering production, customer
// notification, and a profile recompute on delivery.
//
// Side effects run only after the state write commits, each in its own
// transaction, and none of their failures can roll back the committed
// transition. The authoritative status is always the order store's value.
type TransitionOrderCommandHandler struct {
	uowFactory       UoWFactory
	dispatcher       services.NotificationDispatcher
	recomputeHandler RecomputeProfileCommandHandler
	logger           *slog.Logger
}

// NewTransitionOrderCommandHandler creates the transition engine.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.NotificationDispatcher,
	recomputeHandler RecomputeProfileCommandHandler,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:       uowFactory,
		dispatcher:       dispatcher,
		recomputeHandler: recomputeHandler,
		logger:           logger.With("component", "transition_engine"),
	}
}

// Handle applies the transition and triggers its side effects.
//
// The order row is loaded with a row lock, so two concurrent transitions for
// the same order serialize: the loser re-reads the advanced status and gets
// ErrInvalidTransition or ErrOrderTerminal instead of double-applying.
// Transitions for different orders proceed in parallel.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	changed, err := aggregate.TransitionTo(cmd.Target(), cmd.Note(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return TransitionResult{}, err
	}

	if !changed {
		// Idempotent no-op: nothing to write, nothing to notify.
		// The deferred rollback releases the row lock.
		return TransitionResult{Changed: false}, nil
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{Changed: true}
	h.fireSideEffects(ctx, aggregate, cmd.Target(), &result)
	return result, nil
}

// fireSideEffects runs the post-commit effects. Failures here are logged and
// surfaced to operators, never to the caller as a transition failure.
func (h *TransitionOrderCommandHandler) fireSideEffects(
	ctx context.Context, aggregate *order.Order, target order.Status, result *TransitionResult,
) {
	if target == order.InProgress {
		result.Shortfall = h.debitStringStock(ctx, aggregate)
	}

	if err := h.dispatcher.DispatchTransition(
		ctx, aggregate.ID(), target, aggregate.CustomerEmail()); err != nil {
		h.logger.ErrorContext(ctx, "Transition notification failed",
			"order_id", aggregate.ID().String(), "status", target.String(), "error", err)
	}

	if target == order.Delivered {
		h.recomputeProfile(ctx, aggregate.CustomerEmail())
	}
}

// debitStringStock records the production debit for the order's SKU in its
// own transaction. Reports whether the debit left the SKU at or below zero.
// A failed debit is logged for operator follow-up; it does not fail the
// transition because the physical stringing happens regardless.
func (h *TransitionOrderCommandHandler) debitStringStock(ctx context.Context, aggregate *order.Order) bool {
	movement, err := inventory.NewConsumptionMovement(
		aggregate.SKU(), 1, aggregate.ID(), time.Now().UTC())
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build consumption movement",
			"order_id", aggregate.ID().String(), "sku", aggregate.SKU(), "error", err)
		return false
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Inventory debit transaction failed to start", "error", err)
		return false
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	onHand, err := uow.InventoryRepository().RecordMovement(ctx, movement)
	if err != nil {
		h.logger.ErrorContext(ctx, "Inventory debit failed",
			"order_id", aggregate.ID().String(), "sku", aggregate.SKU(), "error", err)
		return false
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Inventory debit commit failed", "sku", aggregate.SKU(), "error", err)
		return false
	}

	if onHand <= 0 {
		h.logger.WarnContext(ctx, "Stock shortfall after production debit",
			"sku", aggregate.SKU(), "on_hand", onHand, "order_id", aggregate.ID().String())
		return true
	}

	return false
}

func (h *TransitionOrderCommandHandler) recomputeProfile(ctx context.Context, email string) {
	cmd, err := NewRecomputeProfileCommand(email)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build recompute command", "customer", email, "error", err)
		return
	}

	if err = h.recomputeHandler.Handle(ctx, cmd); err != nil {
		h.logger.ErrorContext(ctx, "Profile recompute failed", "customer", email, "error", err)
	}
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"restring/internal/core/domain/model/order"
	"restring/internal/core/domain/services"
)

// ConfirmOrderCommandHandler creates orders from confirmed payments.
// The order starts in pending status with its initial history entry; the
// confirmation notification is dispatched best-effort after the commit.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher services.NotificationDispatcher
	logger     *slog.Logger
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher services.NotificationDispatcher,
	logger *slog.Logger,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "confirm_order_handler"),
	}
}

// Handle creates the order in pending status. The notification failure path
// is absorbed: a customer must never see a paid order fail because a message
// could not be sent.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerEmail(),
		cmd.SKU(),
		cmd.Options(),
		cmd.Amount(),
		cmd.Express(),
		time.Now().UTC(),
	)
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

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.dispatcher.DispatchTransition(
		ctx, newOrder.ID(), order.Pending, newOrder.CustomerEmail()); err != nil {
		h.logger.ErrorContext(ctx, "Confirmation notification failed",
			"order_id", newOrder.ID().String(), "error", err)
	}

	return nil
}

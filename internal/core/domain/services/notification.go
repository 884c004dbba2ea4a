package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/core/ports"
)

// ComposeStatusMessage maps a committed transition to the customer-facing
// text. Pure: same status and order id always produce the same message.
func ComposeStatusMessage(orderID kernel.UUID, status order.Status) string {
	short := orderID.String()[:8]
	switch status {
	case order.Pending:
		return fmt.Sprintf("Order %s confirmed! We'll pick up your racket soon.", short)
	case order.PickedUp:
		return fmt.Sprintf("Order %s: your racket has been picked up.", short)
	case order.InProgress:
		return fmt.Sprintf("Order %s: stringing is underway.", short)
	case order.QualityCheck:
		return fmt.Sprintf("Order %s: your racket is in quality check.", short)
	case order.Ready:
		return fmt.Sprintf("Order %s: your racket is ready for delivery.", short)
	case order.OutForDelivery:
		return fmt.Sprintf("Order %s: your racket is out for delivery.", short)
	case order.Delivered:
		return fmt.Sprintf("Order %s delivered. Thanks for playing with us!", short)
	case order.Cancelled:
		return fmt.Sprintf("Order %s has been cancelled.", short)
	default:
		return fmt.Sprintf("Order %s was updated.", short)
	}
}

// TransitionDedupeKey builds the dedupe-log key for a transition notification.
func TransitionDedupeKey(orderID kernel.UUID, status order.Status) string {
	return orderID.String() + ":" + status.String()
}

// ReminderDedupeKey builds the dedupe-log key for a daily reminder, keyed by
// customer and UTC calendar day so the sweep stays idempotent per day.
func ReminderDedupeKey(email string, day time.Time) string {
	return email + ":reminder:" + day.UTC().Format("2006-01-02")
}

// NotificationDispatcher delivers customer-facing messages through the
// external Sender, suppressing duplicates via the delivery log.
//
// Dispatch is idempotent per dedupe key: a key already recorded is skipped
// silently and reported as success. A transport failure is returned to the
// caller for logging and out-of-band retry; it never rolls back the state
// change that triggered it, and the key stays unrecorded so the retry can
// deliver (at-least-once).
type NotificationDispatcher struct {
	sender ports.Sender
	log    ports.DeliveryLog
	logger *slog.Logger
}

// NewNotificationDispatcher creates the dispatcher.
func NewNotificationDispatcher(sender ports.Sender, deliveryLog ports.DeliveryLog, logger *slog.Logger) NotificationDispatcher {
	return NotificationDispatcher{
		sender: sender,
		log:    deliveryLog,
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// DispatchTransition sends the message for a committed transition to the
// customer, deduped per (orderID, status).
func (d NotificationDispatcher) DispatchTransition(
	ctx context.Context, orderID kernel.UUID, status order.Status, recipient string,
) error {
	message := ComposeStatusMessage(orderID, status)
	return d.Dispatch(ctx, TransitionDedupeKey(orderID, status), recipient, message)
}

// Dispatch sends message to recipient unless the dedupe key was already
// recorded.
func (d NotificationDispatcher) Dispatch(ctx context.Context, dedupeKey, recipient, message string) error {
	sent, err := d.log.AlreadySent(ctx, dedupeKey)
	if err != nil {
		return fmt.Errorf("delivery log lookup failed: %w", err)
	}
	if sent {
		d.logger.DebugContext(ctx, "Notification already sent, skipping", "key", dedupeKey)
		return nil
	}

	if err = d.sender.Send(ctx, recipient, message); err != nil {
		return fmt.Errorf("send to %s failed: %w", recipient, err)
	}

	if err = d.log.MarkSent(ctx, dedupeKey, time.Now().UTC()); err != nil {
		// The message went out; a failed mark only risks a duplicate on
		// retry, which the business accepts over a lost notification.
		d.logger.WarnContext(ctx, "Failed to record sent notification", "key", dedupeKey, "error", err)
	}

	return nil
}

package ports

import (
	"context"
	"time"
)

// Sender is the external notification transport (SMS/push/email). The engine
// only composes messages; delivery is an outside capability and is always
// best-effort relative to the state machine.
type Sender interface {
	// Send delivers a message to a recipient. Implementations should honor
	// the context deadline set by the caller.
	Send(ctx context.Context, recipient, message string) error
}

// DeliveryLog is the dedupe ledger for outbound notifications. Keys are
// opaque; the dispatcher uses "orderID:status" for transition messages and
// "email:reminder:day" for reminder sweeps.
type DeliveryLog interface {
	// AlreadySent reports whether a notification with this key was recorded.
	AlreadySent(ctx context.Context, key string) (bool, error)

	// MarkSent records a successful send. Recording an existing key is a
	// no-op so retries stay idempotent.
	MarkSent(ctx context.Context, key string, at time.Time) error
}

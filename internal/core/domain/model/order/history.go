package order

import (
	"time"

	"restring/internal/core/domain/model/kernel"
)

// StatusHistoryEntry is an immutable record of one successful status
// transition, including the initial Pending entry written at creation.
// Entries are append-only and never edited or removed.
type StatusHistoryEntry struct {
	orderID    kernel.UUID
	status     Status
	occurredAt time.Time
	note       string
	actor      string
}

// NewStatusHistoryEntry creates a history entry for a committed transition.
func NewStatusHistoryEntry(orderID kernel.UUID, status Status, occurredAt time.Time, note, actor string) StatusHistoryEntry {
	return StatusHistoryEntry{
		orderID:    orderID,
		status:     status,
		occurredAt: occurredAt,
		note:       note,
		actor:      actor,
	}
}

// OrderID returns the order this entry belongs to.
func (e StatusHistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// Status returns the status the order entered.
func (e StatusHistoryEntry) Status() Status {
	return e.status
}

// OccurredAt returns when the transition was committed.
func (e StatusHistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// Note returns the optional operator note attached to the transition.
func (e StatusHistoryEntry) Note() string {
	return e.note
}

// Actor returns who triggered the transition.
func (e StatusHistoryEntry) Actor() string {
	return e.actor
}

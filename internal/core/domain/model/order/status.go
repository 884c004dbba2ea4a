package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when the target status is not the
	// defined successor of the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOrderTerminal is returned when a transition is requested for an
	// order already in a terminal status.
	ErrOrderTerminal = errors.New("order is in a terminal status")
)

// Status represents the lifecycle state of an order. It implements a state
// machine with a single fulfillment path and an explicit cancellation branch:
//
//	Pending -> PickedUp -> InProgress -> QualityCheck -> Ready -> OutForDelivery -> Delivered
//
// Cancelled is reachable from any non-terminal status. Delivered and Cancelled
// are terminal; no transition is accepted out of them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status, set when payment is confirmed.
	Pending

	// PickedUp indicates the racket has been collected from the customer.
	PickedUp

	// InProgress indicates stringing work has started. Entering this status
	// triggers the inventory debit for the order's string SKU.
	InProgress

	// QualityCheck indicates the restrung racket is being inspected.
	QualityCheck

	// Ready indicates the racket passed inspection and awaits delivery.
	Ready

	// OutForDelivery indicates the racket is on its way back to the customer.
	OutForDelivery

	// Delivered is the terminal success status. Delivered orders are immutable.
	Delivered

	// Cancelled is the terminal failure status, reachable from any
	// non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		PickedUp:       "picked_up",
		InProgress:     "in_progress",
		QualityCheck:   "quality_check",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// StatusFromString parses the persisted string form of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q is not a valid status", ErrInvalidTransition, s)
}

// String returns the persisted/customer-facing name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, int(s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are accepted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the unique successor on the fulfillment path and true, or
// (Unknown, false) for terminal and invalid statuses.
func (s Status) Next() (Status, bool) {
	switch s {
	case Pending:
		return PickedUp, true
	case PickedUp:
		return InProgress, true
	case InProgress:
		return QualityCheck, true
	case QualityCheck:
		return Ready, true
	case Ready:
		return OutForDelivery, true
	case OutForDelivery:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// TransitionTo validates a move from the current status to target and returns
// the resulting status.
//
// Rules:
//   - same status: allowed as an idempotent no-op
//   - terminal current status: ErrOrderTerminal for any other target
//   - Cancelled: allowed from any non-terminal status
//   - otherwise target must be the unique successor per Next
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target == s {
		return s, nil
	}

	if s.IsTerminal() {
		return Unknown, fmt.Errorf("%w: %s accepts no further transitions", ErrOrderTerminal, s)
	}

	if target == Cancelled {
		return Cancelled, nil
	}

	next, ok := s.Next()
	if !ok || next != target {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}

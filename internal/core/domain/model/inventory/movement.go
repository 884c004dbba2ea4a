package inventory

import (
	"errors"
	"fmt"
	"time"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/pkg/errs"
)

// ErrInvalidQuantity is returned when a debit or restock is requested with a
// non-positive quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// Reason classifies why a movement was recorded.
type Reason string

const (
	// ReasonOrderConsumption marks a debit caused by a job entering production.
	ReasonOrderConsumption Reason = "order_consumption"

	// ReasonManualRestock marks a credit from an operator restock.
	ReasonManualRestock Reason = "manual_restock"

	// ReasonCorrection marks a signed adjustment reconciling physical counts.
	ReasonCorrection Reason = "correction"
)

// Validate checks that the reason is one of the defined codes.
func (r Reason) Validate() error {
	switch r {
	case ReasonOrderConsumption, ReasonManualRestock, ReasonCorrection:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("%q is not a valid movement reason", string(r)))
	}
}

// Movement is an immutable ledger row recording a signed stock change for a
// SKU. The current on-hand quantity of a SKU is always reconstructable as the
// running sum of its movement deltas; a cached counter is a performance
// optimization that must be reconciled against this ledger, never trusted
// over it.
type Movement struct {
	id         kernel.UUID
	sku        string
	delta      int
	reason     Reason
	orderID    *kernel.UUID
	note       string
	occurredAt time.Time
}

// NewConsumptionMovement records a debit of quantity units against sku,
// linked to the consuming order. The delta is stored negated.
func NewConsumptionMovement(sku string, quantity int, orderID kernel.UUID, now time.Time) (Movement, error) {
	if quantity <= 0 {
		return Movement{}, ErrInvalidQuantity
	}
	if err := orderID.Validate(); err != nil {
		return Movement{}, err
	}
	if sku == "" {
		return Movement{}, errs.NewValueIsRequiredError("sku")
	}

	return Movement{
		id:         kernel.NewUUID(),
		sku:        sku,
		delta:      -quantity,
		reason:     ReasonOrderConsumption,
		orderID:    &orderID,
		occurredAt: now,
	}, nil
}

// NewRestockMovement records a credit of quantity units for sku with an
// optional operator note.
func NewRestockMovement(sku string, quantity int, note string, now time.Time) (Movement, error) {
	if quantity <= 0 {
		return Movement{}, ErrInvalidQuantity
	}
	if sku == "" {
		return Movement{}, errs.NewValueIsRequiredError("sku")
	}

	return Movement{
		id:         kernel.NewUUID(),
		sku:        sku,
		delta:      quantity,
		reason:     ReasonManualRestock,
		note:       note,
		occurredAt: now,
	}, nil
}

// NewCorrectionMovement records a signed adjustment for sku. Delta may be
// negative but not zero.
func NewCorrectionMovement(sku string, delta int, now time.Time) (Movement, error) {
	if delta == 0 {
		return Movement{}, ErrInvalidQuantity
	}
	if sku == "" {
		return Movement{}, errs.NewValueIsRequiredError("sku")
	}

	return Movement{
		id:         kernel.NewUUID(),
		sku:        sku,
		delta:      delta,
		reason:     ReasonCorrection,
		occurredAt: now,
	}, nil
}

// RestoreMovement reconstructs a ledger row from persistence.
func RestoreMovement(
	id kernel.UUID, sku string, delta int, reason Reason, orderID *kernel.UUID, note string, occurredAt time.Time,
) (Movement, error) {
	if err := errors.Join(id.Validate(), reason.Validate()); err != nil {
		return Movement{}, err
	}

	return Movement{
		id:         id,
		sku:        sku,
		delta:      delta,
		reason:     reason,
		orderID:    orderID,
		note:       note,
		occurredAt: occurredAt,
	}, nil
}

// Validate checks that the movement came through a constructor.
func (m Movement) Validate() error {
	return errors.Join(m.id.Validate(), m.reason.Validate())
}

// ID returns the movement's unique identifier.
func (m Movement) ID() kernel.UUID {
	return m.id
}

// SKU returns the stock item the movement applies to.
func (m Movement) SKU() string {
	return m.sku
}

// Delta returns the signed quantity change.
func (m Movement) Delta() int {
	return m.delta
}

// Reason returns the movement's reason code.
func (m Movement) Reason() Reason {
	return m.reason
}

// OrderID returns the consuming order, or nil for restocks and corrections.
func (m Movement) OrderID() *kernel.UUID {
	return m.orderID
}

// Note returns the optional operator note attached to the movement.
func (m Movement) Note() string {
	return m.note
}

// OccurredAt returns when the movement was recorded.
func (m Movement) OccurredAt() time.Time {
	return m.occurredAt
}

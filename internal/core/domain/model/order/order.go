package order

import (
	"errors"
	"strings"
	"time"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/pkg/errs"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a restring job. It owns the status state
// machine and the append-only status history.
//
// Invariants:
//   - must have a valid unique identifier and a customer email
//   - total must not be negative
//   - status moves monotonically along the fulfillment path, with Cancelled
//     as the only branch; Delivered and Cancelled orders are immutable
//   - every committed transition appends exactly one StatusHistoryEntry,
//     including the initial Pending entry
//
// Orders are never physically deleted; cancellation is the only removal path.
type Order struct {
	id            kernel.UUID
	customerEmail string
	sku           string
	options       []string
	total         decimal.Decimal
	express       bool
	notes         string
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	history       []StatusHistoryEntry

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Pending status with its initial history entry.
// Called when the payment collaborator confirms an order.
//
// Parameters:
//   - id: unique order identifier
//   - customerEmail: natural key of the customer
//   - sku: the consumable string SKU assigned to the job
//   - options: selected service options
//   - total: confirmed monetary total (must not be negative)
//   - express: express-turnaround flag
//   - now: creation timestamp
func NewOrder(
	id kernel.UUID,
	customerEmail string,
	sku string,
	options []string,
	total decimal.Decimal,
	express bool,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:  Pending,
		express: express,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerEmail(customerEmail),
		o.setSKU(sku),
		o.setTotal(total),
	); err != nil {
		return nil, err
	}

	o.options = append([]string(nil), options...)
	o.createdAt = now
	o.updatedAt = now
	o.history = []StatusHistoryEntry{
		NewStatusHistoryEntry(id, Pending, now, "", "system"),
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-emitting the
// initial history entry. The stored history is attached as-is.
func RestoreOrder(
	id kernel.UUID,
	customerEmail string,
	sku string,
	options []string,
	total decimal.Decimal,
	express bool,
	notes string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	history []StatusHistoryEntry,
) (*Order, error) {
	o := &Order{
		express: express,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerEmail(customerEmail),
		o.setSKU(sku),
		o.setTotal(total),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.options = append([]string(nil), options...)
	o.status = status
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	o.history = history

	return o, nil
}

// Validate ensures the Order was constructed through a factory function.
// Called when reconstructing orders from persistence and before writes.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerEmail returns the customer's natural key.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// SKU returns the consumable string SKU assigned to the job.
func (o *Order) SKU() string {
	return o.sku
}

// Options returns the selected service options.
func (o *Order) Options() []string {
	return append([]string(nil), o.options...)
}

// Total returns the confirmed monetary total.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// Express reports whether express turnaround was requested.
func (o *Order) Express() bool {
	return o.express
}

// Notes returns free-text operator notes.
func (o *Order) Notes() string {
	return o.notes
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// History returns the append-only status history, oldest first.
func (o *Order) History() []StatusHistoryEntry {
	return append([]StatusHistoryEntry(nil), o.history...)
}

// AppendNote attaches free-text operator notes to the order.
// Rejected for terminal orders, which are immutable.
func (o *Order) AppendNote(note string) error {
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.notes == "" {
		o.notes = note
	} else {
		o.notes = o.notes + "\n" + note
	}
	return nil
}

// TransitionTo moves the order to target and appends a history entry.
//
// Returns changed=false with a nil error for the idempotent no-op case
// (target equals the current status); no history entry is appended then.
// Any other invalid move returns ErrInvalidTransition or ErrOrderTerminal
// and leaves the order untouched.
func (o *Order) TransitionTo(target Status, note, actor string, now time.Time) (changed bool, err error) {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return false, err
	}

	if newStatus == o.status {
		return false, nil
	}

	o.status = newStatus
	o.updatedAt = now
	o.history = append(o.history, NewStatusHistoryEntry(o.id, newStatus, now, note, actor))
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("customer email")
	}
	o.customerEmail = strings.ToLower(email)
	return nil
}

func (o *Order) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	o.sku = sku
	return nil
}

func (o *Order) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total", errors.New("total must not be negative"))
	}
	o.total = total
	return nil
}

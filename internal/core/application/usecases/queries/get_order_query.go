package queries

import (
	"errors"
	"time"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full status history, the
// operator-facing detail view.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query for one order's detail.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identity.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StatusChangeResponse is one append-only history entry.
type StatusChangeResponse struct {
	Status     order.Status
	Note       string
	Actor      string
	OccurredAt time.Time
}

// GetOrderQueryResponse is the order detail with its transition trail.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	CustomerEmail string
	SKU           string
	Options       []string
	Status        order.Status
	Total         decimal.Decimal
	Express       bool
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	History       []StatusChangeResponse
}

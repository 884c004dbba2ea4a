package queries

import (
	"errors"
	"strings"
	"time"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders, optionally narrowed to one customer.
//
// Example:
//
//	query := NewListOrdersQuery("anna@example.com")
//	handler := NewListOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type ListOrdersQuery struct {
	customerEmail string

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates the query. An empty customerEmail means no
// customer filter.
func NewListOrdersQuery(customerEmail string) ListOrdersQuery {
	return ListOrdersQuery{
		customerEmail: strings.ToLower(strings.TrimSpace(customerEmail)),
		guard:         guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// CustomerEmail returns the normalized filter, empty for an unfiltered list.
func (q ListOrdersQuery) CustomerEmail() string {
	return q.customerEmail
}

// ListOrdersQueryResponse is one order row of the listing.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	CustomerEmail string
	SKU           string
	Status        order.Status
	Total         decimal.Decimal
	Express       bool
	CreatedAt     time.Time
}

package queries

import (
	"errors"
	"strings"
	"time"

	"restring/internal/core/domain/model/customer"
	"restring/internal/core/domain/services"
	"restring/internal/pkg/guard"
)

var (
	ErrCustomerSummaryQueryIsNotConstructed = errors.New(
		"CustomerSummaryQuery must be created via NewCustomerSummaryQuery constructor",
	)

	ErrCustomerEmailIsEmpty = errors.New("customer email is required")
)

// CustomerSummaryQuery retrieves one customer's cached analytics profile plus
// freshly scanned upsell opportunities.
type CustomerSummaryQuery struct {
	customerEmail string

	guard guard.ConstructorGuard
}

// NewCustomerSummaryQuery creates the query for one customer's summary.
func NewCustomerSummaryQuery(customerEmail string) (CustomerSummaryQuery, error) {
	email := strings.ToLower(strings.TrimSpace(customerEmail))
	if email == "" {
		return CustomerSummaryQuery{}, ErrCustomerEmailIsEmpty
	}

	return CustomerSummaryQuery{customerEmail: email, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q CustomerSummaryQuery) Validate() error {
	return q.guard.Validate(ErrCustomerSummaryQueryIsNotConstructed)
}

// CustomerEmail returns the normalized customer key.
func (q CustomerSummaryQuery) CustomerEmail() string {
	return q.customerEmail
}

// CustomerSummaryQueryResponse carries the profile's derived stats together
// with upsell suggestions computed against the live order history.
type CustomerSummaryQueryResponse struct {
	Email     string
	Tags      []string
	Stats     customer.Stats
	Upsells   []services.Upsell
	UpdatedAt time.Time
}

package commands

import (
	"errors"
	"strings"

	"restring/internal/pkg/guard"
)

var ErrRecomputeProfileCommandIsNotConstructed = errors.New(
	"RecomputeProfileCommand must be created via NewRecomputeProfileCommand constructor",
)

// RecomputeProfileCommand requests a full recompute of one customer's
// derived analytics profile from their order history.
type RecomputeProfileCommand struct { //nolint:recvcheck //using for validation
	customerEmail string

	guard guard.ConstructorGuard
}

// NewRecomputeProfileCommand creates a recompute request.
func NewRecomputeProfileCommand(customerEmail string) (RecomputeProfileCommand, error) {
	cmd := RecomputeProfileCommand{guard: guard.NewConstructorGuard()}

	if strings.TrimSpace(customerEmail) == "" {
		return RecomputeProfileCommand{}, ErrCustomerEmailIsRequired
	}
	cmd.customerEmail = strings.ToLower(strings.TrimSpace(customerEmail))

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecomputeProfileCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeProfileCommandIsNotConstructed)
}

// CustomerEmail returns the customer whose profile to recompute.
func (c RecomputeProfileCommand) CustomerEmail() string {
	return c.customerEmail
}

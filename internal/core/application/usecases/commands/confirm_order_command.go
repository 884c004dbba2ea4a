package commands

import (
	"errors"
	"strings"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrConfirmOrderCommandIsNotConstructed = errors.New(
		"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
	)
	ErrCustomerEmailIsRequired = errors.New("customer email is required")
	ErrSKUIsRequired           = errors.New("sku is required")
	ErrAmountIsInvalid         = errors.New("amount must not be negative")
)

// ConfirmOrderCommand represents the "payment confirmed" inbound event.
// The payment collaborator has already captured the money; this command
// creates the order in pending status with the confirmed amount.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerEmail string
	sku           string
	options       []string
	amount        decimal.Decimal
	express       bool

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to register a paid order.
// Validates the order ID, customer email, SKU, and that the amount is not
// negative.
func NewConfirmOrderCommand(
	orderID kernel.UUID,
	customerEmail string,
	sku string,
	options []string,
	amount decimal.Decimal,
	express bool,
) (ConfirmOrderCommand, error) {
	cmd := ConfirmOrderCommand{
		options: append([]string(nil), options...),
		express: express,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerEmail(customerEmail),
		cmd.setSKU(sku),
		cmd.setAmount(amount),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the opaque order identifier supplied by the payment event.
func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerEmail returns the paying customer's email.
func (c ConfirmOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// SKU returns the string SKU selected for the job.
func (c ConfirmOrderCommand) SKU() string {
	return c.sku
}

// Options returns the selected service options.
func (c ConfirmOrderCommand) Options() []string {
	return append([]string(nil), c.options...)
}

// Amount returns the confirmed payment amount.
func (c ConfirmOrderCommand) Amount() decimal.Decimal {
	return c.amount
}

// Express reports whether express turnaround was purchased.
func (c ConfirmOrderCommand) Express() bool {
	return c.express
}

func (c *ConfirmOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ConfirmOrderCommand) setCustomerEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrCustomerEmailIsRequired
	}
	c.customerEmail = email
	return nil
}

func (c *ConfirmOrderCommand) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return ErrSKUIsRequired
	}
	c.sku = sku
	return nil
}

func (c *ConfirmOrderCommand) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrAmountIsInvalid
	}
	c.amount = amount
	return nil
}

package commands

import (
	"errors"
	"strings"

	"restring/internal/core/domain/model/inventory"
	"restring/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrRestockCommandIsNotConstructed = errors.New(
		"RestockCommand must be created via NewRestockCommand constructor",
	)
	ErrCostPerUnitIsInvalid = errors.New("cost per unit must not be negative")
)

// RestockCommand records an operator restock of a string SKU.
type RestockCommand struct { //nolint:recvcheck //using for validation
	sku         string
	quantity    int
	costPerUnit decimal.Decimal
	notes       string

	guard guard.ConstructorGuard
}

// NewRestockCommand creates a restock request. Quantity must be positive;
// a non-positive quantity is rejected here, before any write.
func NewRestockCommand(sku string, quantity int, costPerUnit decimal.Decimal, notes string) (RestockCommand, error) {
	cmd := RestockCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSKU(sku),
		cmd.setQuantity(quantity),
		cmd.setCostPerUnit(costPerUnit),
	); err != nil {
		return RestockCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RestockCommand) Validate() error {
	return c.guard.Validate(ErrRestockCommandIsNotConstructed)
}

// SKU returns the stock item to credit.
func (c RestockCommand) SKU() string {
	return c.sku
}

// Quantity returns the number of string sets received.
func (c RestockCommand) Quantity() int {
	return c.quantity
}

// CostPerUnit returns the purchase cost per set.
func (c RestockCommand) CostPerUnit() decimal.Decimal {
	return c.costPerUnit
}

// Notes returns optional operator notes about the delivery.
func (c RestockCommand) Notes() string {
	return c.notes
}

func (c *RestockCommand) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return ErrSKUIsRequired
	}
	c.sku = sku
	return nil
}

func (c *RestockCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return inventory.ErrInvalidQuantity
	}
	c.quantity = quantity
	return nil
}

func (c *RestockCommand) setCostPerUnit(costPerUnit decimal.Decimal) error {
	if costPerUnit.IsNegative() {
		return ErrCostPerUnitIsInvalid
	}
	c.costPerUnit = costPerUnit
	return nil
}

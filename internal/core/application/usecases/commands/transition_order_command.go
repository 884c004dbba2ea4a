package commands

import (
	"errors"

	"restring/internal/core/domain/model/kernel"
	"restring/internal/core/domain/model/order"
	"restring/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// TransitionOrderCommand requests a move of one order to a target status.
// Invoked by the operator-facing admin tool; the engine trusts the
// surrounding authorization layer to have already approved the caller.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	note    string
	actor   string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a transition request. The note is
// optional operator free text; actor identifies who triggered the move.
func NewTransitionOrderCommand(
	orderID kernel.UUID, target order.Status, note, actor string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Note returns the optional operator note.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

// Actor returns who triggered the transition.
func (c TransitionOrderCommand) Actor() string {
	return c.actor
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor string) error {
	if actor == "" {
		return ErrActorIsRequired
	}
	c.actor = actor
	return nil
}

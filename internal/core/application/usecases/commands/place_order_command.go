package commands

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrServiceLabelIsRequired  = errors.New("service label is required")
	ErrDestinationIsRequired   = errors.New("destination address is required")
	ErrPaymentMethodIsRequired = errors.New("payment method is required")
	ErrAmountIsInvalid         = errors.New("amount must be greater than 0")
	ErrCreatedAtIsRequired     = errors.New("createdAt is required")
)

// PlaceOrderCommand represents a request to place a new tracked order.
// Placing an order overwrites any previously stored record: at most one
// order is live at a time.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, order.Delivery,
//	    "Grocery delivery", "12 Main St", "card", 4990, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(store)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	kind               order.Kind
	serviceLabel       string
	destinationAddress string
	paymentMethod      string
	amount             int64
	createdAt          time.Time

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new tracked order.
// Validates the identifier, kind, labels, amount and creation timestamp.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	kind order.Kind,
	serviceLabel string,
	destinationAddress string,
	paymentMethod string,
	amount int64,
	createdAt time.Time,
) (PlaceOrderCommand, error) {
	placeCommand := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		placeCommand.setOrderID(orderID),
		placeCommand.setKind(kind),
		placeCommand.setServiceLabel(serviceLabel),
		placeCommand.setDestinationAddress(destinationAddress),
		placeCommand.setPaymentMethod(paymentMethod),
		placeCommand.setAmount(amount),
		placeCommand.setCreatedAt(createdAt),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return placeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Kind returns the order category.
func (c PlaceOrderCommand) Kind() order.Kind {
	return c.kind
}

// ServiceLabel returns the free-text service description.
func (c PlaceOrderCommand) ServiceLabel() string {
	return c.serviceLabel
}

// DestinationAddress returns the delivery destination.
func (c PlaceOrderCommand) DestinationAddress() string {
	return c.destinationAddress
}

// PaymentMethod returns the payment method label.
func (c PlaceOrderCommand) PaymentMethod() string {
	return c.paymentMethod
}

// Amount returns the order total in minor currency units.
func (c PlaceOrderCommand) Amount() int64 {
	return c.amount
}

// CreatedAt returns the creation timestamp anchoring all transitions.
func (c PlaceOrderCommand) CreatedAt() time.Time {
	return c.createdAt
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setKind(kind order.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *PlaceOrderCommand) setServiceLabel(serviceLabel string) error {
	if serviceLabel == "" {
		return ErrServiceLabelIsRequired
	}

	c.serviceLabel = serviceLabel
	return nil
}

func (c *PlaceOrderCommand) setDestinationAddress(destinationAddress string) error {
	if destinationAddress == "" {
		return ErrDestinationIsRequired
	}

	c.destinationAddress = destinationAddress
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return ErrPaymentMethodIsRequired
	}

	c.paymentMethod = paymentMethod
	return nil
}

func (c *PlaceOrderCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}

func (c *PlaceOrderCommand) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}

	c.createdAt = createdAt
	return nil
}

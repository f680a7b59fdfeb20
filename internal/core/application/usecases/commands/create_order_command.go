package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPostalCodeIsRequired = errs.NewValueIsRequiredError("postal code")
	ErrAddressIsRequired    = errs.NewValueIsRequiredError("address")
	ErrWeightIsInvalid      = errs.NewValueIsInvalidErrorWithCause("weight", errors.New("must be greater than 0"))
)

// CreateOrderCommand registers a parcel entered by a supervisor. The order
// starts PENDING and is picked up by the next batch generation run.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "400001", "12 Marine Drive", 2.5,
//	    order.Customer{Name: "A. Rao", Phone: "9000000000"}, order.PaymentCOD, 499)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	postalCode  string
	address     string
	weight      float64
	customer    order.Customer
	paymentType order.PaymentType
	amount      float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifier, postal code, address,
// weight and payment details.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	postalCode string,
	address string,
	weight float64,
	customer order.Customer,
	paymentType order.PaymentType,
	amount float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer: order.Customer{
			Name:  strings.TrimSpace(customer.Name),
			Phone: strings.TrimSpace(customer.Phone),
		},
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPostalCode(postalCode),
		cmd.setAddress(address),
		cmd.setWeight(weight),
		cmd.setPaymentType(paymentType),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) PostalCode() string {
	return c.postalCode
}

func (c CreateOrderCommand) Address() string {
	return c.address
}

// Weight returns the parcel weight in kilograms.
func (c CreateOrderCommand) Weight() float64 {
	return c.weight
}

func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

func (c CreateOrderCommand) PaymentType() order.PaymentType {
	return c.paymentType
}

func (c CreateOrderCommand) Amount() float64 {
	return c.amount
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPostalCode(postalCode string) error {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return ErrPostalCodeIsRequired
	}

	c.postalCode = postalCode
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setWeight(weight float64) error {
	if !(weight > 0) {
		return ErrWeightIsInvalid
	}

	c.weight = weight
	return nil
}

func (c *CreateOrderCommand) setPaymentType(paymentType order.PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}

	c.paymentType = paymentType
	return nil
}

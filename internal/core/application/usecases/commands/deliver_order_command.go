package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
	ErrDeliveredAtIsRequired = errs.NewValueIsRequiredError("delivered at")
)

// DeliverOrderCommand records the hand-over of an assigned order.
type DeliverOrderCommand struct {
	orderID     kernel.UUID
	deliveredAt time.Time

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(orderID kernel.UUID, deliveredAt time.Time) (DeliverOrderCommand, error) {
	var errTime error
	if deliveredAt.IsZero() {
		errTime = ErrDeliveredAtIsRequired
	}
	if err := errors.Join(orderID.Validate(), errTime); err != nil {
		return DeliverOrderCommand{}, err
	}

	return DeliverOrderCommand{
		orderID:     orderID,
		deliveredAt: deliveredAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DeliverOrderCommand) DeliveredAt() time.Time {
	return c.deliveredAt
}

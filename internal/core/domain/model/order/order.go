package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrGeoPointIsMissing is returned when an order is assigned before its
	// postal code was resolved.
	ErrGeoPointIsMissing = errors.New("order has no resolved coordinates")
)

// Customer is the recipient of an order.
type Customer struct {
	Name  string
	Phone string
}

// Order is a parcel to deliver. It is the aggregate root for the
// PENDING -> ASSIGNED -> DELIVERED lifecycle.
//
// Order follows these invariants:
//   - Identifier is valid, postal code is non-blank, weight is positive and finite
//   - ASSIGNED and DELIVERED orders reference their batch and carry coordinates
//   - Delivered orders record the delivery time
type Order struct {
	id          kernel.UUID
	postalCode  string
	address     string
	weight      float64
	customer    Customer
	paymentType PaymentType
	amount      float64
	status      Status
	geoPoint    *kernel.GeoPoint
	batchID     *kernel.UUID
	createdAt   time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewOrder creates a PENDING order.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "400001", "12 Marine Drive", 2.5,
//	    order.Customer{Name: "A. Rao", Phone: "+91 90000 00000"}, order.PaymentCOD, 499)
func NewOrder(
	id kernel.UUID,
	postalCode string,
	address string,
	weight float64,
	customer Customer,
	paymentType PaymentType,
	amount float64,
) (*Order, error) {
	o := &Order{
		address:       address,
		customer:      customer,
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPostalCode(postalCode),
		o.setWeight(weight),
		o.setPayment(paymentType, amount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID          kernel.UUID
	PostalCode  string
	Address     string
	Weight      float64
	Customer    Customer
	PaymentType PaymentType
	Amount      float64
	Status      Status
	GeoPoint    *kernel.GeoPoint
	BatchID     *kernel.UUID
	CreatedAt   time.Time
	DeliveredAt *time.Time
}

// RestoreOrder rebuilds an order loaded from storage and re-checks its
// invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		address:       s.Address,
		customer:      s.Customer,
		geoPoint:      s.GeoPoint,
		batchID:       s.BatchID,
		createdAt:     s.CreatedAt,
		deliveredAt:   s.DeliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setPostalCode(s.PostalCode),
		o.setWeight(s.Weight),
		o.setPayment(s.PaymentType, s.Amount),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) PostalCode() string {
	return o.postalCode
}

func (o *Order) Address() string {
	return o.address
}

// Weight is expressed in kilograms.
func (o *Order) Weight() float64 {
	return o.weight
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) PaymentType() PaymentType {
	return o.paymentType
}

func (o *Order) Amount() float64 {
	return o.amount
}

func (o *Order) Status() Status {
	return o.status
}

// GeoPoint returns the resolved coordinates, or nil before resolution.
func (o *Order) GeoPoint() *kernel.GeoPoint {
	return o.geoPoint
}

// Batch returns the batch the order belongs to, or nil while PENDING.
func (o *Order) Batch() *kernel.UUID {
	return o.batchID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Locate attaches the coordinates resolved for the order's postal code.
func (o *Order) Locate(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	o.geoPoint = &point
	return nil
}

// AssignTo moves a PENDING order into the given batch.
func (o *Order) AssignTo(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	if o.geoPoint == nil {
		return ErrGeoPointIsMissing
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.batchID = &batchID
	return nil
}

// Deliver marks an ASSIGNED order as handed over at the given time.
func (o *Order) Deliver(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	at = at.UTC()
	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPostalCode(postalCode string) error {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postal code")
	}
	o.postalCode = postalCode
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a positive number of kilograms", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setPayment(paymentType PaymentType, amount float64) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}
	if amount < 0 || math.IsNaN(amount) {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is negative", amount))
	}
	o.paymentType = paymentType
	o.amount = amount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := errors.Join(status.Validate(), status.ValidateCanHaveBatch(o.batchID != nil)); err != nil {
		return err
	}
	if status != Pending && o.geoPoint == nil {
		return ErrGeoPointIsMissing
	}
	o.status = status
	return nil
}

package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentType is how the customer pays for the order.
type PaymentType string

const (
	PaymentUPI     PaymentType = "UPI"
	PaymentCOD     PaymentType = "COD"
	PaymentPrepaid PaymentType = "PREPAID"
)

func (p PaymentType) Validate() error {
	switch p {
	case PaymentUPI, PaymentCOD, PaymentPrepaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment type", fmt.Errorf("%q is not supported", string(p)))
	}
}

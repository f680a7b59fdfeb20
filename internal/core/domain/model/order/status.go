package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Pending orders are waiting to be batched.
	Pending

	// Assigned orders belong to a batch.
	Assigned

	// Delivered orders were handed over to the customer.
	Delivered
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Assigned:  "ASSIGNED",
	Delivered: "DELIVERED",
}

// ParseStatus maps the persisted/API name back to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known order status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Assign returns the status following a successful batch assignment.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return Assigned, nil
}

// Deliver returns the status following a completed hand-over.
func (s Status) Deliver() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s),
		)
	}
	return Delivered, nil
}

// ValidateCanHaveBatch checks the pairing between a status and the presence
// of a batch reference.
func (s Status) ValidateCanHaveBatch(hasBatch bool) error {
	if hasBatch && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot belong to a batch", s),
		)
	}

	if !hasBatch && (s == Assigned || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order must belong to a batch", s),
		)
	}

	return nil
}

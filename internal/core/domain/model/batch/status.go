package batch

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a batch.
type Status int

const (
	Unknown Status = iota
	Pending
	InProgress
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	InProgress: "IN_PROGRESS",
	Completed:  "COMPLETED",
	Cancelled:  "CANCELLED",
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, InProgress, Completed, Cancelled}
}

// ParseStatus maps the persisted/API name back to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known batch status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// IsOpen reports whether the batch can still change hands or be cancelled.
func (s Status) IsOpen() bool {
	return s == Pending || s == InProgress
}

func (s Status) start() (Status, error) {
	if !s.IsOpen() {
		return Unknown, transitionError(s, "assign a driver")
	}
	return InProgress, nil
}

func (s Status) complete() (Status, error) {
	if s != InProgress {
		return Unknown, transitionError(s, "complete")
	}
	return Completed, nil
}

func (s Status) cancel() (Status, error) {
	if !s.IsOpen() {
		return Unknown, transitionError(s, "cancel")
	}
	return Cancelled, nil
}

func transitionError(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("cannot %s a %s batch", action, s))
}

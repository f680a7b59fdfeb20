package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for drivers.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Get returns errs.ErrObjectNotFound when the driver does not exist.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}

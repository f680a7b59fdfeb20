package ports

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrGeocodeFailure marks every failure to resolve a postal code.
	ErrGeocodeFailure = errors.New("geocode failure")

	// ErrNoGeocodeResults is returned by geocoders that answered but found
	// nothing for the postal code.
	ErrNoGeocodeResults = errors.New("no geocoding results")
)

// Geocoder resolves a postal code to coordinates through an upstream service.
type Geocoder interface {
	Lookup(ctx context.Context, postalCode string) (kernel.GeoPoint, error)
}

// GeocodeCache is a persistent postal code -> coordinates store shared by
// all resolver instances. Misses are reported with found == false.
type GeocodeCache interface {
	Get(ctx context.Context, postalCode string) (point kernel.GeoPoint, found bool, err error)
	Put(ctx context.Context, postalCode string, point kernel.GeoPoint) error
}

// GeocodeFailureError reports that a postal code could not be resolved.
// It matches both ErrGeocodeFailure and the upstream cause with errors.Is.
type GeocodeFailureError struct {
	PostalCode string
	Cause      error
}

func NewGeocodeFailureError(postalCode string, cause error) *GeocodeFailureError {
	return &GeocodeFailureError{PostalCode: postalCode, Cause: cause}
}

func (e *GeocodeFailureError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: postal code %q", ErrGeocodeFailure, e.PostalCode)
	}
	return fmt.Sprintf("%s: postal code %q: %v", ErrGeocodeFailure, e.PostalCode, e.Cause)
}

func (e *GeocodeFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrGeocodeFailure}
	}
	return []error{ErrGeocodeFailure, e.Cause}
}

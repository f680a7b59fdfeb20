package geocoding

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// OfflineGeocoder derives coordinates from the numeric postal code instead
// of calling an upstream service. Postal codes sharing a last digit land on
// the same point around Mumbai, which is enough to exercise clustering in
// development and demos.
type OfflineGeocoder struct{}

func NewOfflineGeocoder() OfflineGeocoder {
	return OfflineGeocoder{}
}

func (OfflineGeocoder) Lookup(_ context.Context, postalCode string) (kernel.GeoPoint, error) {
	n, err := strconv.Atoi(strings.TrimSpace(postalCode))
	if err != nil || n < 0 {
		return kernel.GeoPoint{}, fmt.Errorf("offline geocoder %q: %w", postalCode, ports.ErrNoGeocodeResults)
	}

	offset := float64(n%10) * 0.1
	return kernel.NewGeoPoint(19+offset, 72+offset)
}

package geocoding_test

import (
	"testing"

	"dispatch/internal/adapters/out/geocoding"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineGeocoder_Lookup(t *testing.T) {
	g := geocoding.NewOfflineGeocoder()

	tests := []struct {
		postalCode string
		lat, lng   float64
	}{
		{"400000", 19.0, 72.0},
		{"400001", 19.1, 72.1},
		{"560007", 19.7, 72.7},
		{" 110009 ", 19.9, 72.9},
	}

	for _, tt := range tests {
		t.Run(tt.postalCode, func(t *testing.T) {
			p, err := g.Lookup(t.Context(), tt.postalCode)
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, p.Lat(), 1e-9)
			assert.InDelta(t, tt.lng, p.Lng(), 1e-9)
		})
	}
}

func TestOfflineGeocoder_NonNumeric(t *testing.T) {
	_, err := geocoding.NewOfflineGeocoder().Lookup(t.Context(), "SW1A")
	require.ErrorIs(t, err, ports.ErrNoGeocodeResults)
}

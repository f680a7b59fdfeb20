package geocoding_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/adapters/out/geocoding"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeocoder(t *testing.T, url string) *geocoding.OpenCageGeocoder {
	t.Helper()
	g, err := geocoding.NewOpenCageGeocoder(geocoding.OpenCageConfig{
		BaseURL: url,
		APIKey:  "test-key",
		Retry:   geocoding.RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond},
	})
	require.NoError(t, err)
	return g
}

func TestNewOpenCageGeocoder_RequiresKey(t *testing.T) {
	_, err := geocoding.NewOpenCageGeocoder(geocoding.OpenCageConfig{})
	require.ErrorIs(t, err, geocoding.ErrAPIKeyIsRequired)
}

func TestOpenCageGeocoder_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "400001,IN", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"geometry":{"lat":18.9388,"lng":72.8354}},{"geometry":{"lat":1,"lng":1}}]}`))
	}))
	defer srv.Close()

	point, err := newGeocoder(t, srv.URL).Lookup(t.Context(), "400001")

	require.NoError(t, err)
	assert.InDelta(t, 18.9388, point.Lat(), 1e-9)
	assert.InDelta(t, 72.8354, point.Lng(), 1e-9)
}

func TestOpenCageGeocoder_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := newGeocoder(t, srv.URL).Lookup(t.Context(), "000000")

	require.ErrorIs(t, err, ports.ErrNoGeocodeResults)
}

func TestOpenCageGeocoder_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"geometry":{"lat":12.97,"lng":77.59}}]}`))
	}))
	defer srv.Close()

	point, err := newGeocoder(t, srv.URL).Lookup(t.Context(), "560001")

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.InDelta(t, 12.97, point.Lat(), 1e-9)
}

func TestOpenCageGeocoder_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newGeocoder(t, srv.URL).Lookup(t.Context(), "560001")

	var statusErr *geocoding.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpenCageGeocoder_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newGeocoder(t, srv.URL).Lookup(t.Context(), "560001")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenCageGeocoder_TransportErrorHidesAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/geocode"
	srv.Close()

	g, err := geocoding.NewOpenCageGeocoder(geocoding.OpenCageConfig{
		BaseURL: baseURL,
		APIKey:  "SECRET-KEY",
		Retry:   geocoding.RetryPolicy{MaxAttempts: 1, InitialBackoff: time.Millisecond},
	})
	require.NoError(t, err)

	_, err = g.Lookup(t.Context(), "400001")

	require.Error(t, err)
	failure := ports.NewGeocodeFailureError("400001", err)
	assert.NotContains(t, failure.Error(), "SECRET-KEY")
	assert.Contains(t, failure.Error(), "key=REDACTED")
	assert.Contains(t, failure.Error(), "400001")
}

package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed_guard_passes_validation", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		customError := errors.New("batch must be created via NewBatch")

		// When
		err := g.Validate(customError)

		// Then
		require.Error(t, err)
		assert.Equal(t, customError, err)
	})

	t.Run("zero_value_with_nil_error_returns_default", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	errWeightNotConstructed := errors.New("weight must be created via newWeight")

	type weight struct {
		kg    float64
		guard guard.ConstructorGuard
	}

	newWeight := func(kg float64) (weight, error) {
		if kg <= 0 {
			return weight{}, errors.New("weight must be positive")
		}
		return weight{kg: kg, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_produces_valid_object", func(t *testing.T) {
		w, err := newWeight(2.5)

		require.NoError(t, err)
		require.NoError(t, w.guard.Validate(errWeightNotConstructed))
		assert.InDelta(t, 2.5, w.kg, 1e-9)
	})

	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var w weight

		assert.Equal(t, errWeightNotConstructed, w.guard.Validate(errWeightNotConstructed))
	})

	t.Run("constructor_rejects_invalid_input", func(t *testing.T) {
		_, err := newWeight(0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "weight must be positive")
	})
}

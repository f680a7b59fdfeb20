package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("batch", "b-1")

		assert.Equal(t, "batch", err.ParamName)
		assert.Equal(t, "b-1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: b-1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("batch", "b-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: batch, ID is: b-1 (cause: connection reset)",
			err.Error())
	})

	t.Run("non string IDs are formatted", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("postal code")

		assert.Equal(t, "postal code", err.ParamName)
		assert.Equal(t, "value is invalid: postal code", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("must not be blank")
		err := errs.NewValueIsInvalidErrorWithCause("postal code", cause)

		assert.Equal(t, "value is invalid: postal code (cause: must not be blank)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("latitude", 91.5, -90, 90)

		assert.Equal(t, 91.5, err.Value)
		assert.Equal(t, -90, err.Min)
		assert.Equal(t, 90, err.Max)
		assert.Equal(t, "value is invalid: 91.5 is latitude, min value is -90, max value is 90", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("geocoder returned garbage")
		err := errs.NewValueIsOutOfRangeErrorWithCause("longitude", 200, -180, 180, cause)

		assert.Equal(t,
			"value is invalid: 200 is longitude, min value is -180, max value is 180 (cause: geocoder returned garbage)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("address", "12 Main St\nFloor 2", 0, 10)
		assert.Contains(t, err.Error(), "12 Main St Floor 2")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("driver name")

		assert.Equal(t, "value is required: driver name", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("empty after trim")
		err := errs.NewValueIsRequiredErrorWithCause("driver name", cause)

		assert.Equal(t, "value is required: driver name (cause: empty after trim)", err.Error())
	})
}

func TestErrorsCanBeClassified(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("weight"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("lat", 100, -90, 90), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("id"), errs.ErrValueIsRequired)

	var notFound *errs.ObjectNotFoundError
	wrapped := errors.Join(errors.New("load batch"), errs.NewObjectNotFoundError("batch", "b-9"))
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "b-9", notFound.ID)
}

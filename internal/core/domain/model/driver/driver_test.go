package driver_test

import (
	"testing"

	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	t.Run("should create an active driver", func(t *testing.T) {
		id := kernel.NewUUID()

		d, err := driver.NewDriver(id, "Ana", 3)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, "Ana", d.Name())
		assert.Equal(t, 3, d.Capacity())
		assert.True(t, d.IsActive())
		assert.Nil(t, d.Location())
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.UUID{}, "", 0)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "UUID must be created")
		require.ErrorIs(t, err, driver.ErrNameIsRequired)
		assert.Contains(t, err.Error(), "capacity")
	})
}

func TestDriver_CanTakeDelivery(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "Ana", 2)
	require.NoError(t, err)

	require.NoError(t, d.CanTakeDelivery(1))
	require.ErrorIs(t, d.CanTakeDelivery(2), errs.ErrValueIsOutOfRange)

	d.Deactivate()
	require.ErrorIs(t, d.CanTakeDelivery(0), driver.ErrDriverIsInactive)

	d.Activate()
	require.NoError(t, d.CanTakeDelivery(0))
}

func TestDriver_DistanceKm(t *testing.T) {
	d, err := driver.NewDriver(kernel.NewUUID(), "Ana", 2)
	require.NoError(t, err)
	target, err := kernel.NewGeoPoint(0, 1)
	require.NoError(t, err)

	_, known, err := d.DistanceKm(target)
	require.NoError(t, err)
	assert.False(t, known)

	origin, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)
	require.NoError(t, d.ReportLocation(origin))

	km, known, err := d.DistanceKm(target)
	require.NoError(t, err)
	assert.True(t, known)
	assert.InDelta(t, 111.19, km, 0.1)
}

func TestRestoreDriver(t *testing.T) {
	loc, err := kernel.NewGeoPoint(10, 20)
	require.NoError(t, err)

	d, err := driver.RestoreDriver(kernel.NewUUID(), "Ana", 1, false, &loc)

	require.NoError(t, err)
	assert.False(t, d.IsActive())
	require.NotNil(t, d.Location())
	assert.InDelta(t, 20.0, d.Location().Longitude(), 1e-9)
}

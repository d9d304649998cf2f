package kernel_test

import (
	"math"
	"testing"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCoordinates(t *testing.T, lat, lng float64) kernel.Coordinates {
	t.Helper()
	c, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	return c
}

func TestNewCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr error
	}{
		{name: "paris", lat: 48.8566, lng: 2.3522},
		{name: "bounds", lat: kernel.LatitudeMax, lng: kernel.LongitudeMin},
		{name: "latitude too large", lat: 90.0001, lng: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "latitude too small", lat: -91, lng: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "longitude too large", lat: 0, lng: 180.5, wantErr: errs.ErrValueIsOutOfRange},
		{name: "nan", lat: math.NaN(), lng: 0, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := kernel.NewCoordinates(tt.lat, tt.lng)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Error(t, c.Validate())
				return
			}
			require.NoError(t, err)
			require.NoError(t, c.Validate())
			assert.InDelta(t, tt.lat, c.Latitude(), 1e-9)
			assert.InDelta(t, tt.lng, c.Longitude(), 1e-9)
		})
	}

	t.Run("both invalid reports both", func(t *testing.T) {
		_, err := kernel.NewCoordinates(100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestCoordinates_DistanceTo(t *testing.T) {
	t.Run("zero on self", func(t *testing.T) {
		a := mustCoordinates(t, 45.764, 4.8357)

		d, err := a.DistanceTo(a)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := mustCoordinates(t, 48.8566, 2.3522)
		b := mustCoordinates(t, 45.764, 4.8357)

		ab, err := a.DistanceTo(b)
		require.NoError(t, err)
		ba, err := b.DistanceTo(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-6)
		// Paris to Lyon is about 392 km
		assert.InDelta(t, 392_000, ab, 2_000)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a := mustCoordinates(t, 0, 0)
		b := mustCoordinates(t, 1, 0)

		d, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.InDelta(t, kernel.EarthRadiusMeters*math.Pi/180, d, 1e-6)
	})

	t.Run("antipodes", func(t *testing.T) {
		a := mustCoordinates(t, 0, 0)
		b := mustCoordinates(t, 0, 180)

		d, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.InDelta(t, kernel.EarthRadiusMeters*math.Pi, d, 1e-3)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var zero kernel.Coordinates
		a := mustCoordinates(t, 0, 0)

		_, err := a.DistanceTo(zero)

		require.ErrorIs(t, err, kernel.ErrCoordinatesIsNotConstructed)
	})
}

func TestCoordinates_IsEqual(t *testing.T) {
	a := mustCoordinates(t, 1.5, 2.5)
	b := mustCoordinates(t, 1.5, 2.5)
	c := mustCoordinates(t, 1.5, 2.6)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)
}

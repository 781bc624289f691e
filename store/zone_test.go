package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneFromCoordinates(t *testing.T) {
	a := ZoneFromCoordinates(19.43, -99.13)
	assert.Equal(t, a, ZoneFromCoordinates(19.43, -99.13))
	assert.NotEqual(t, a, ZoneFromCoordinates(19.99, -99.99))

	tests := []struct {
		lat, lng float64
		want     string
	}{
		{19.43, -99.13, "Zone_19.4_-99.2"},
		{19.99, -99.99, "Zone_19.9_-100.0"},
		{0, 0, "Zone_0.0_0.0"},
		{-0.05, 0.05, "Zone_-0.1_0.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZoneFromCoordinates(tt.lat, tt.lng))
	}
}

func TestZoneFromCoordinates_DistinctFloorsDistinctLabels(t *testing.T) {
	seen := map[string][2]int{}
	for lat := -3; lat <= 3; lat++ {
		for lng := -3; lng <= 3; lng++ {
			label := ZoneFromCoordinates(float64(lat)+0.25, float64(lng)+0.75)
			prev, dup := seen[label]
			require.False(t, dup, "%s for %v and %v", label, prev, [2]int{lat, lng})
			seen[label] = [2]int{lat, lng}
		}
	}
}

func TestFloorTo_CellBoundaries(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{4.35, 2, "4.35"},
		{1.13, 2, "1.13"},
		{-1.13, 2, "-1.13"},
		{0.29, 2, "0.29"},
		{19.431, 3, "19.431"},
		{-99.1301, 3, "-99.131"},
		{2.5, 0, "2"},
		{-2.5, 0, "-3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floorTo(tt.v, tt.decimals), "%v at %d", tt.v, tt.decimals)
	}

	zone, err := GridResolver{Decimals: 2}.Resolve(4.35, 1.13)
	require.NoError(t, err)
	assert.Equal(t, "Zone_4.35_1.13", zone)
}

func TestGridResolver(t *testing.T) {
	var r ZoneResolver = GridResolver{}

	zone, err := r.Resolve(19.43, -99.13)
	require.NoError(t, err)
	assert.Equal(t, "Zone_19_-100", zone)

	zone, err = GridResolver{Decimals: 2}.Resolve(19.437, -99.131)
	require.NoError(t, err)
	assert.Equal(t, "Zone_19.43_-99.14", zone)

	for _, c := range [][2]float64{
		{math.NaN(), 0},
		{0, math.Inf(1)},
		{91, 0},
		{0, -181},
	} {
		_, err := r.Resolve(c[0], c[1])
		assert.ErrorIs(t, err, ErrInvalid)
	}

	_, err = GridResolver{Decimals: 9}.Resolve(1, 1)
	assert.ErrorIs(t, err, ErrInvalid)
}

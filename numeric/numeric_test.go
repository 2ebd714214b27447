package numeric_test

import (
	"testing"

	"github.com/katalvlaran/bspc/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		dx, dy float64
		want   float64
	}{
		{"east", 1, 0, 0},
		{"north", 0, 1, 90},
		{"west", -1, 0, 180},
		{"south", 0, -1, 270},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := numeric.Angle(tc.dx, tc.dy)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestPartitionPerpDist(t *testing.T) {
	t.Parallel()

	part := numeric.NewPartition(0, 0, 10, 0)
	require.InDelta(t, 0, part.PerpDist(0, 0), numeric.DistEpsilon)
	require.InDelta(t, 0, part.PerpDist(5, 0), numeric.DistEpsilon)

	// The right (front) side of an east-pointing partition is south.
	assert.Greater(t, part.PerpDist(5, -5), 0.0)
	assert.Less(t, part.PerpDist(5, 5), 0.0)
}

func TestPartitionParallelDist(t *testing.T) {
	t.Parallel()

	part := numeric.NewPartition(0, 0, 0, 10)
	require.InDelta(t, 0, part.ParallelDist(0, 0), numeric.DistEpsilon)
	assert.InDelta(t, 5, part.ParallelDist(0, 5), numeric.DistEpsilon)
}

func TestBoxVsPartition(t *testing.T) {
	t.Parallel()

	part := numeric.NewPartition(0, 0, 0, 1) // vertical line x=0
	right := numeric.Box{MinX: 10, MinY: 0, MaxX: 20, MaxY: 10}
	left := numeric.Box{MinX: -20, MinY: 0, MaxX: -10, MaxY: 10}
	straddle := numeric.Box{MinX: -5, MinY: 0, MaxX: 5, MaxY: 10}

	assert.Equal(t, numeric.SideRight, numeric.BoxVsPartition(right, part))
	assert.Equal(t, numeric.SideLeft, numeric.BoxVsPartition(left, part))
	assert.Equal(t, numeric.SideStraddle, numeric.BoxVsPartition(straddle, part))
}

func TestRoundPow2Up128(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 128.0, numeric.RoundPow2Up128(1))
	assert.Equal(t, 256.0, numeric.RoundPow2Up128(129))
	assert.Equal(t, 512.0, numeric.RoundPow2Up128(300))
}

package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	v3 "github.com/sesmesh/sesmesh/vec/v3"
)

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := New(v3.Vec{}, v3.Vec{X: 4, Y: 4, Z: 4}, 0.5, 2.0, 2)
	require.NoError(t, err)
	return g
}

func TestClearSetsDefaultValue(t *testing.T) {
	g := newTestGrid(t)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				require.Equal(t, float32(g.MaxDist), g.At(i, j, k))
			}
		}
	}
}

func TestAddSphereClampsToBand(t *testing.T) {
	g := newTestGrid(t)
	g.AddSphere(v3.Vec{X: 2, Y: 2, Z: 2}, 1.0)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				v := g.At(i, j, k)
				require.GreaterOrEqual(t, float64(v), -g.MaxDist-1e-6)
				require.LessOrEqual(t, float64(v), g.MaxDist+1e-6)
			}
		}
	}
}

func TestAddSphereMonotoneNonIncreasing(t *testing.T) {
	g := newTestGrid(t)
	before := append([]float32(nil), g.data...)
	g.AddSphere(v3.Vec{X: 2, Y: 2, Z: 2}, 1.0)
	for i, v := range g.data {
		require.LessOrEqual(t, v, before[i])
	}
}

func TestOutOfRangeIndexReadsDefault(t *testing.T) {
	g := newTestGrid(t)
	require.Equal(t, float32(g.MaxDist), g.At(-1, 0, 0))
	require.Equal(t, float32(g.MaxDist), g.At(g.Nx, 0, 0))
}

func TestClearThenRepeatAddSphereIsIdempotent(t *testing.T) {
	g := newTestGrid(t)
	g.AddSphere(v3.Vec{X: 1, Y: 1, Z: 1}, 0.7)
	g.AddSphere(v3.Vec{X: 3, Y: 2, Z: 1}, 0.5)
	first := append([]float32(nil), g.data...)

	g.Clear()
	g.AddSphere(v3.Vec{X: 1, Y: 1, Z: 1}, 0.7)
	g.AddSphere(v3.Vec{X: 3, Y: 2, Z: 1}, 0.5)
	second := g.data

	require.Equal(t, first, second)
}

func TestGridTooLarge(t *testing.T) {
	_, err := New(v3.Vec{}, v3.Vec{X: 1e12, Y: 1e12, Z: 1e12}, 0.01, 1, 2)
	require.ErrorIs(t, err, ErrGridTooLarge)
}

func TestTrilinearMatchesCornersAtLatticePoints(t *testing.T) {
	g := newTestGrid(t)
	g.AddSphere(v3.Vec{X: 2, Y: 2, Z: 2}, 1.0)
	p := g.WorldPos(3, 3, 3)
	require.InDelta(t, g.Sample(3, 3, 3), g.Trilinear(p), 1e-9)
}
